package entity

import "errors"

// Errores de validación de entidades, rechazados en el borde de escritura
// antes de que el dato llegue al motor de cálculo.
var (
	ErrContractInvalid       = errors.New("contrato inválido: fechas, salario o clase de riesgo incoherentes")
	ErrLegalParameterInvalid = errors.New("parámetro legal inválido: porcentaje empleado + empleador difiere del total")
	ErrConceptInvalid        = errors.New("concepto laboral inválido")
	ErrPeriodInvalid         = errors.New("período de nómina inválido: fechas incoherentes")
	ErrGarnishmentInvalid    = errors.New("embargo judicial inválido")
)
