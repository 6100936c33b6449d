package repository

import (
	"time"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// LegalParameterRepository acceso a parámetros legales. Son configuración
// compartida de solo lectura para el motor; los cambios rigen en la próxima
// corrida, nunca a mitad de cálculo.
type LegalParameterRepository interface {
	Create(param *entity.LegalParameter) error
	Update(param *entity.LegalParameter) error
	GetByID(id string) (*entity.LegalParameter, error)
	// ListAsOf trae todos los parámetros con vigencia que contiene la fecha.
	ListAsOf(asOf time.Time) ([]*entity.LegalParameter, error)
	List(limit, offset int) ([]*entity.LegalParameter, error)
}

// LaborConceptRepository catálogo de conceptos laborales.
type LaborConceptRepository interface {
	Create(concept *entity.LaborConcept) error
	Update(concept *entity.LaborConcept) error
	GetByID(id string) (*entity.LaborConcept, error)
	// ListActiveByCompany devuelve los conceptos activos ordenados por Orden:
	// las fórmulas se evalúan en ese orden y pueden referenciar resultados
	// anteriores.
	ListActiveByCompany(companyID string) ([]*entity.LaborConcept, error)
}

// RetentionTableRepository versiones de la tabla de retención.
type RetentionTableRepository interface {
	Create(table *entity.RetentionTable) error
	// GetAsOf resuelve la versión vigente en la fecha, con el mismo desempate
	// determinista de los parámetros legales.
	GetAsOf(asOf time.Time) (*entity.RetentionTable, error)
}
