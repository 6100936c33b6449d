package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// PeriodUseCase administra los períodos de liquidación. Los períodos de una
// empresa no se solapan.
type PeriodUseCase struct {
	repo repository.PeriodRepository
}

// NewPeriodUseCase construye el caso de uso.
func NewPeriodUseCase(repo repository.PeriodRepository) *PeriodUseCase {
	return &PeriodUseCase{repo: repo}
}

// Create abre un período nuevo.
func (uc *PeriodUseCase) Create(companyID string, in dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	now := time.Now()
	period := &entity.PayrollPeriod{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    entity.PeriodOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	overlap, err := uc.repo.HasOverlap(period)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.Create(period); err != nil {
		return nil, err
	}
	return toPeriodResponse(period), nil
}

// GetByID obtiene un período de la empresa.
func (uc *PeriodUseCase) GetByID(companyID, id string) (*dto.PeriodResponse, error) {
	period, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if period == nil || period.CompanyID != companyID {
		return nil, nil
	}
	return toPeriodResponse(period), nil
}

// List devuelve los períodos de la empresa, paginados.
func (uc *PeriodUseCase) List(companyID string, page dto.PageRequest) ([]dto.PeriodResponse, error) {
	page.DefaultPage()
	periods, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, *toPeriodResponse(p))
	}
	return out, nil
}

func toPeriodResponse(p *entity.PayrollPeriod) *dto.PeriodResponse {
	return &dto.PeriodResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Days:      p.Days(),
		Status:    p.Status,
	}
}
