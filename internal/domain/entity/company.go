package entity

import "time"

// Company representa una empresa empleadora del sector construcción (tenant del sistema).
type Company struct {
	ID      string
	Name    string
	NIT     string // NIT colombiano (con o sin dígito de verificación)
	Address string
	Phone   string
	Email   string
	CIIU    string // código de actividad económica (construcción: 41xx/42xx/43xx)
	Status  string // active, suspended, inactive
	// ExentaParafiscales declara la exoneración de SENA e ICBF (art. 114-1
	// ET). El motor solo la honra mientras la nómina mensual agregada de la
	// empresa siga por debajo de 10 SMMLV: declararla no basta si los
	// contratos activos ya superan el umbral. Caja nunca se exonera.
	ExentaParafiscales bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
