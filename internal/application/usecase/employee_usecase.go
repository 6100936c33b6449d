package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados. El contrato se maneja
// aparte en ContractUseCase.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado. El par (tipo, número de documento) es único
// dentro de la empresa.
func (uc *EmployeeUseCase) Create(companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	existing, _ := uc.repo.GetByDocument(companyID, in.DocumentType, in.DocumentNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		DocumentType:    in.DocumentType,
		DocumentNumber:  in.DocumentNumber,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		BirthDate:       in.BirthDate,
		HireDate:        in.HireDate,
		EPS:             in.EPS,
		PensionFund:     in.PensionFund,
		CompensationBox: in.CompensationBox,
		BankAccount:     in.BankAccount,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado de la empresa.
func (uc *EmployeeUseCase) GetByID(companyID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, nil
	}
	return toEmployeeResponse(employee), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *EmployeeUseCase) Update(companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, nil
	}
	if in.FirstName != nil {
		employee.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		employee.LastName = *in.LastName
	}
	if in.Email != nil {
		employee.Email = *in.Email
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.EPS != nil {
		employee.EPS = *in.EPS
	}
	if in.PensionFund != nil {
		employee.PensionFund = *in.PensionFund
	}
	if in.CompensationBox != nil {
		employee.CompensationBox = *in.CompensationBox
	}
	if in.BankAccount != nil {
		employee.BankAccount = *in.BankAccount
	}
	if in.Status != nil {
		employee.Status = *in.Status
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List devuelve empleados de la empresa, paginados.
func (uc *EmployeeUseCase) List(companyID string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	page.DefaultPage()
	employees, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		DocumentType:    e.DocumentType,
		DocumentNumber:  e.DocumentNumber,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		FullName:        e.FullName(),
		Email:           e.Email,
		Phone:           e.Phone,
		HireDate:        e.HireDate,
		EPS:             e.EPS,
		PensionFund:     e.PensionFund,
		CompensationBox: e.CompensationBox,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}
}
