package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// EmployeeRepository acceso a empleados. Todas las consultas llevan el
// company_id explícito: el aislamiento multi-tenant se enhebra por parámetro,
// nunca por estado global.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	Update(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByDocument(companyID, documentType, documentNumber string) (*entity.Employee, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error)
	ListActiveByCompany(companyID string) ([]*entity.Employee, error)
}

// ContractRepository acceso a contratos. Activate garantiza el invariante de
// un solo contrato activo por empleado: desactiva los hermanos en la misma
// sentencia.
type ContractRepository interface {
	Create(contract *entity.Contract) error
	Update(contract *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	GetActiveByEmployee(companyID, employeeID string) (*entity.Contract, error)
	ListByEmployee(companyID, employeeID string) ([]*entity.Contract, error)
	Activate(companyID, employeeID, contractID string) error
	// SumActiveSalaries suma los salarios de los contratos activos de la
	// empresa: la nómina mensual agregada contra la que se verifica el umbral
	// de exoneración de parafiscales.
	SumActiveSalaries(companyID string) (decimal.Decimal, error)
}
