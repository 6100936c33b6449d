// Package dian contiene catálogos y validaciones alineados al Anexo Técnico
// de Nómina Electrónica DIAN (Colombia) v1.0.
package dian

// =============================================================================
// Tabla 5.5.1 - Tipo de Documento del trabajador
// =============================================================================

const (
	DocTypeCedula            = "13" // Cédula de ciudadanía
	DocTypeCedulaExtranjeria = "22" // Cédula de extranjería
	DocTypeTarjetaIdentidad  = "12" // Tarjeta de identidad
	DocTypePasaporte         = "41" // Pasaporte
	DocTypePEP               = "47" // Permiso especial de permanencia
)

// DocTypeCode traduce el tipo de documento interno (CC, CE, TI, PA) al código
// del catálogo DIAN. Devuelve cédula si el tipo no está mapeado.
func DocTypeCode(internal string) string {
	switch internal {
	case "CC":
		return DocTypeCedula
	case "CE":
		return DocTypeCedulaExtranjeria
	case "TI":
		return DocTypeTarjetaIdentidad
	case "PA":
		return DocTypePasaporte
	default:
		return DocTypeCedula
	}
}

// =============================================================================
// Tabla 5.5.3 - Tipo de Trabajador
// =============================================================================

const (
	WorkerTypeDependiente = "01" // Dependiente
	WorkerTypeAprendiz    = "12" // Aprendices del SENA en etapa lectiva
	WorkerTypePensionado  = "18" // Funcionarios públicos sin tope: no aplica aquí
)

// =============================================================================
// Tabla 5.5.5 - Tipo de Contrato
// =============================================================================

const (
	ContractTermIndefinido = "1" // Término indefinido
	ContractTermFijo       = "2" // Término fijo
	ContractObraLabor      = "3" // Obra o labor
	ContractAprendizaje    = "4" // Aprendizaje
	ContractPracticas      = "5" // Prácticas o pasantías
)

// ContractTypeCode traduce el tipo de contrato interno al catálogo DIAN.
func ContractTypeCode(internal string) string {
	switch internal {
	case "INDEFINIDO":
		return ContractTermIndefinido
	case "FIJO":
		return ContractTermFijo
	case "OBRA_LABOR":
		return ContractObraLabor
	case "APRENDIZAJE":
		return ContractAprendizaje
	default:
		return ContractTermIndefinido
	}
}

// =============================================================================
// Tabla 5.5.2 - Subtipo de Trabajador y periodicidad de nómina
// =============================================================================

const (
	SubTypeNoAplica = "00"

	PeriodoSemanal    = "1"
	PeriodoDecenal    = "2"
	PeriodoCatorcenal = "3"
	PeriodoQuincenal  = "4"
	PeriodoMensual    = "5"
)

// PayrollPeriodCode clasifica el período por su cantidad de días.
func PayrollPeriodCode(days int) string {
	switch {
	case days <= 7:
		return PeriodoSemanal
	case days <= 10:
		return PeriodoDecenal
	case days <= 14:
		return PeriodoCatorcenal
	case days <= 15:
		return PeriodoQuincenal
	default:
		return PeriodoMensual
	}
}

// =============================================================================
// Tabla 6.1.1 - Departamentos y municipios: solo se declara el default del
// domicilio del empleador; el catálogo completo vive en la DIAN.
// =============================================================================

const (
	CountryCodeColombia = "CO"
	CurrencyCodePesos   = "COP"
)
