package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para registrar un empleado.
type CreateEmployeeRequest struct {
	DocumentType    string    `json:"document_type" validate:"required,oneof=CC CE TI PA"`
	DocumentNumber  string    `json:"document_number" validate:"required,min=4,max=20"`
	FirstName       string    `json:"first_name" validate:"required,min=1,max=100"`
	LastName        string    `json:"last_name" validate:"required,min=1,max=100"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Phone           string    `json:"phone"`
	BirthDate       time.Time `json:"birth_date"`
	HireDate        time.Time `json:"hire_date"`
	EPS             string    `json:"eps"`
	PensionFund     string    `json:"pension_fund"`
	CompensationBox string    `json:"compensation_box"`
	BankAccount     string    `json:"bank_account"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado.
type UpdateEmployeeRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	EPS             *string `json:"eps"`
	PensionFund     *string `json:"pension_fund"`
	CompensationBox *string `json:"compensation_box"`
	BankAccount     *string `json:"bank_account"`
	Status          *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	DocumentType    string    `json:"document_type"`
	DocumentNumber  string    `json:"document_number"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	HireDate        time.Time `json:"hire_date"`
	EPS             string    `json:"eps"`
	PensionFund     string    `json:"pension_fund"`
	CompensationBox string    `json:"compensation_box"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateContractRequest entrada para crear un contrato. Crearlo activo
// desactiva cualquier contrato anterior del empleado.
type CreateContractRequest struct {
	EmployeeID   string          `json:"employee_id" validate:"required"`
	ContractType string          `json:"contract_type" validate:"required,oneof=INDEFINIDO FIJO OBRA_LABOR SERVICIOS APRENDIZAJE"`
	Salary       decimal.Decimal `json:"salary"`
	RiskClass    int             `json:"risk_class" validate:"min=1,max=5"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
}

// TerminateContractRequest cierra el contrato activo del empleado.
type TerminateContractRequest struct {
	EmployeeID string    `json:"employee_id" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
}

// ContractResponse salida de un contrato.
type ContractResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	EmployeeID   string          `json:"employee_id"`
	ContractType string          `json:"contract_type"`
	Salary       decimal.Decimal `json:"salary"`
	RiskClass    int             `json:"risk_class"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}
