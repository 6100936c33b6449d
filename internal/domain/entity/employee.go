package entity

import "time"

// Tipos de documento de identidad (catálogo DIAN).
const (
	DocTypeCC = "CC" // cédula de ciudadanía
	DocTypeCE = "CE" // cédula de extranjería
	DocTypeTI = "TI" // tarjeta de identidad
	DocTypePA = "PA" // pasaporte
)

// Employee representa un trabajador de la empresa. Tiene a lo sumo un
// contrato activo a la vez (ver Contract).
type Employee struct {
	ID             string
	CompanyID      string
	DocumentType   string
	DocumentNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	BirthDate      time.Time
	HireDate       time.Time
	// EPS, AFP y caja de compensación a las que el trabajador está afiliado.
	EPS             string
	PensionFund     string
	CompensationBox string
	BankAccount     string
	Status          string // active, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName devuelve el nombre completo para documentos y desprendibles.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
