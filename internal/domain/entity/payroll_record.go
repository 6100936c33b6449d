package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una nómina individual.
// BORRADOR → CALCULADA → APROBADA → PAGADA; ANULADA desde cualquier estado no pagado.
const (
	RecordDraft      = "BORRADOR"
	RecordCalculated = "CALCULADA"
	RecordApproved   = "APROBADA"
	RecordPaid       = "PAGADA"
	RecordAnnulled   = "ANULADA"
)

// Estados de envío del documento de nómina electrónica a la DIAN.
const (
	DIANStatusDraft           = "DRAFT"            // XML aún no generado
	DIANStatusSigned          = "SIGNED"           // XML firmado, pendiente de envío al WS
	DIANStatusSent            = "Sent"             // Enviado al WS DIAN, respuesta pendiente
	DIANStatusExitoso         = "EXITOSO"          // Aceptado por la DIAN (o simulado en dev)
	DIANStatusRechazado       = "RECHAZADO"        // Rechazado por la DIAN con errores
	DIANStatusErrorGeneration = "ERROR_GENERATION" // Falló firma o generación XML
)

// PayrollRecord es la nómina calculada de un empleado en un período. Se crea
// en BORRADOR con totales en cero; el motor puebla todos los campos derivados
// y la pasa a CALCULADA. Después de CALCULADA los campos financieros solo
// cambian re-ejecutando el motor, nunca por edición directa.
type PayrollRecord struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ContractID string
	PeriodID   string

	DaysWorked  int
	SalarioBase decimal.Decimal
	IBC         decimal.Decimal

	// Devengados.
	TotalItems      decimal.Decimal // destajo: suma de WorkedItems (entrada, no calculado)
	BasicPay        decimal.Decimal
	AuxTransporte   decimal.Decimal
	HorasExtra      decimal.Decimal // suma de todos los recargos y extras
	OtrosDevengados decimal.Decimal // conceptos dinámicos del catálogo
	TotalDevengado  decimal.Decimal

	// Deducciones del trabajador.
	SaludEmpleado    decimal.Decimal
	PensionEmpleado  decimal.Decimal
	FSP              decimal.Decimal
	RetencionFuente  decimal.Decimal
	OtrasDeducciones decimal.Decimal
	TotalPrestamos   decimal.Decimal
	TotalEmbargos    decimal.Decimal
	TotalDeducciones decimal.Decimal

	// Aportes patronales (informativos, no se descuentan al trabajador).
	SaludEmpleador   decimal.Decimal
	PensionEmpleador decimal.Decimal
	ARL              decimal.Decimal
	SENA             decimal.Decimal
	ICBF             decimal.Decimal
	CajaCompensacion decimal.Decimal

	// Provisiones prestacionales.
	Cesantias          decimal.Decimal
	InteresesCesantias decimal.Decimal
	Prima              decimal.Decimal
	Vacaciones         decimal.Decimal

	NetoPagar           decimal.Decimal
	CostoTotalEmpleador decimal.Decimal

	Status       string
	CalculatedAt *time.Time

	// Documento de nómina electrónica DIAN.
	DIANStatus string
	CUNE       string // Código Único de Nómina Electrónica (SHA-384)
	XMLSigned  string
	QRData     string
	TrackID    string
	DIANErrors string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanCalculate indica si el motor puede operar sobre el registro: solo
// BORRADOR y CALCULADA (el recálculo es idempotente).
func (r *PayrollRecord) CanCalculate() bool {
	return r.Status == RecordDraft || r.Status == RecordCalculated
}

// CanTransition valida las transiciones del ciclo de vida.
func (r *PayrollRecord) CanTransition(to string) bool {
	switch to {
	case RecordCalculated:
		return r.CanCalculate()
	case RecordApproved:
		return r.Status == RecordCalculated
	case RecordPaid:
		return r.Status == RecordApproved
	case RecordAnnulled:
		return r.Status != RecordPaid && r.Status != RecordAnnulled
	default:
		return false
	}
}

// PayrollDetail es una línea de detalle de la nómina: un concepto aplicado
// (devengado o deducción). El registro es dueño exclusivo de sus detalles:
// se destruyen y recrean en cada recálculo.
type PayrollDetail struct {
	ID        string
	RecordID  string
	ConceptID string
	Code      string
	Name      string
	Type      string // DEVENGADO | DEDUCCION
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
}

// LoanInstallmentDetail es la cuota de préstamo aplicada en el período.
// Igual que los detalles de concepto, se reemplazan por completo en cada
// corrida para mantener consistencia con el estado actual del préstamo.
type LoanInstallmentDetail struct {
	ID       string
	RecordID string
	LoanID   string
	Amount   decimal.Decimal
}

// GarnishmentDeductionDetail es lo retenido a un embargo judicial en el
// período. Además de alimentar el desprendible, estas líneas son la memoria
// que permite reversar los saldos al recalcular la nómina.
type GarnishmentDeductionDetail struct {
	ID            string
	RecordID      string
	GarnishmentID string
	Amount        decimal.Decimal
}
