// Package dian implementa la generación del documento XML de Nómina
// Electrónica Individual DIAN (Colombia), su firma y envío.
package dian

import (
	"context"
	"time"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// Ambientes de operación del orquestador DIAN.
const (
	AppEnvDev  = "dev"  // genera y firma, no envía (simulado)
	AppEnvTest = "test" // ambiente de habilitación
	AppEnvProd = "prod" // producción
)

// SubmitResult respuesta del web service de recepción de la DIAN.
type SubmitResult struct {
	TrackID  string
	Accepted bool
	Errors   string
}

// DIANSubmitter envía el ZIP del documento al WS DIAN. nil en modo dev.
type DIANSubmitter interface {
	SubmitZip(ctx context.Context, zipBytes []byte, zipName, appEnv string) (*SubmitResult, error)
}

// PayrollLineForXML una línea del documento: concepto devengado o deducción.
type PayrollLineForXML struct {
	Code   string
	Name   string
	Type   string // DEVENGADO | DEDUCCION
	Amount string // monto formateado a 2 decimales
}

// PayrollBuildContext contexto completo para construir el XML NominaIndividual.
type PayrollBuildContext struct {
	Record   *entity.PayrollRecord
	Company  *entity.Company // empleador
	Employee *entity.Employee
	Contract *entity.Contract
	Period   *entity.PayrollPeriod
	Details  []PayrollLineForXML

	Number       string // consecutivo del documento (prefijo + número)
	GeneratedAt  time.Time
	SoftwareID   string
	TipoAmbiente string // "1" producción, "2" habilitación
}
