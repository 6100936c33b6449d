package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// ContractUseCase casos de uso de contratos. Crear un contrato lo deja
// activo y desactiva el anterior del empleado en la misma operación.
type ContractUseCase struct {
	repo         repository.ContractRepository
	employeeRepo repository.EmployeeRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository, employeeRepo repository.EmployeeRepository) *ContractUseCase {
	return &ContractUseCase{repo: repo, employeeRepo: employeeRepo}
}

// Create crea y activa un contrato para el empleado.
func (uc *ContractUseCase) Create(companyID string, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	employee, err := uc.employeeRepo.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	contract := &entity.Contract{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		EmployeeID:   in.EmployeeID,
		ContractType: in.ContractType,
		Salary:       in.Salary,
		RiskClass:    in.RiskClass,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(contract); err != nil {
		return nil, err
	}
	// Un solo contrato activo por empleado: Activate desactiva los hermanos.
	if err := uc.repo.Activate(companyID, in.EmployeeID, contract.ID); err != nil {
		return nil, err
	}
	return toContractResponse(contract), nil
}

// GetActive devuelve el contrato activo del empleado, nil si no hay.
func (uc *ContractUseCase) GetActive(companyID, employeeID string) (*dto.ContractResponse, error) {
	contract, err := uc.repo.GetActiveByEmployee(companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, nil
	}
	return toContractResponse(contract), nil
}

// ListByEmployee devuelve el historial de contratos del empleado.
func (uc *ContractUseCase) ListByEmployee(companyID, employeeID string) ([]dto.ContractResponse, error) {
	contracts, err := uc.repo.ListByEmployee(companyID, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, *toContractResponse(c))
	}
	return out, nil
}

// Terminate cierra el contrato activo del empleado con la fecha dada.
func (uc *ContractUseCase) Terminate(companyID, employeeID string, endDate time.Time) error {
	contract, err := uc.repo.GetActiveByEmployee(companyID, employeeID)
	if err != nil {
		return err
	}
	if contract == nil {
		return domain.ErrNotFound
	}
	contract.EndDate = &endDate
	contract.Active = false
	contract.UpdatedAt = time.Now()
	return uc.repo.Update(contract)
}

func toContractResponse(c *entity.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		EmployeeID:   c.EmployeeID,
		ContractType: c.ContractType,
		Salary:       c.Salary,
		RiskClass:    c.RiskClass,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
	}
}
