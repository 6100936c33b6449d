package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// NoveltyUseCase captura los hechos del período que alimentan al motor:
// novedades (ausencias, extras), destajo, préstamos y embargos.
type NoveltyUseCase struct {
	noveltyRepo     repository.NoveltyRepository
	workedItemRepo  repository.WorkedItemRepository
	loanRepo        repository.LoanRepository
	garnishmentRepo repository.GarnishmentRepository
	periodRepo      repository.PeriodRepository
}

// NewNoveltyUseCase construye el caso de uso.
func NewNoveltyUseCase(
	noveltyRepo repository.NoveltyRepository,
	workedItemRepo repository.WorkedItemRepository,
	loanRepo repository.LoanRepository,
	garnishmentRepo repository.GarnishmentRepository,
	periodRepo repository.PeriodRepository,
) *NoveltyUseCase {
	return &NoveltyUseCase{
		noveltyRepo:     noveltyRepo,
		workedItemRepo:  workedItemRepo,
		loanRepo:        loanRepo,
		garnishmentRepo: garnishmentRepo,
		periodRepo:      periodRepo,
	}
}

// openPeriod verifica que el período exista, sea de la empresa y esté
// ABIERTO: sobre períodos cerrados no se capturan novedades.
func (uc *NoveltyUseCase) openPeriod(companyID, periodID string) error {
	period, err := uc.periodRepo.GetByID(periodID)
	if err != nil || period == nil {
		return domain.ErrNotFound
	}
	if period.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if period.Status != entity.PeriodOpen {
		return domain.ErrPeriodoCerrado
	}
	return nil
}

// CreateNovelty registra una novedad del período.
func (uc *NoveltyUseCase) CreateNovelty(companyID string, in dto.CreateNoveltyRequest) error {
	if err := uc.openPeriod(companyID, in.PeriodID); err != nil {
		return err
	}
	return uc.noveltyRepo.Create(&entity.Novelty{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: in.EmployeeID,
		PeriodID:   in.PeriodID,
		Type:       in.Type,
		Days:       in.Days,
		Hours:      in.Hours,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	})
}

// CreateWorkedItem registra una línea de destajo.
func (uc *NoveltyUseCase) CreateWorkedItem(companyID string, in dto.CreateWorkedItemRequest) error {
	if err := uc.openPeriod(companyID, in.PeriodID); err != nil {
		return err
	}
	if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.workedItemRepo.Create(&entity.WorkedItem{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: in.EmployeeID,
		PeriodID:   in.PeriodID,
		TaskCode:   in.TaskCode,
		TaskName:   in.TaskName,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		CreatedAt:  time.Now(),
	})
}

// CreateLoan abre un préstamo con saldo igual al monto.
func (uc *NoveltyUseCase) CreateLoan(companyID string, in dto.CreateLoanRequest) error {
	if in.Amount.LessThanOrEqual(decimal.Zero) || in.Installment.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.loanRepo.Create(&entity.Loan{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		EmployeeID:  in.EmployeeID,
		Amount:      in.Amount,
		Installment: in.Installment,
		Balance:     in.Amount,
		StartDate:   in.StartDate,
		Status:      entity.LoanActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// CreateGarnishment registra un embargo judicial notificado.
func (uc *NoveltyUseCase) CreateGarnishment(companyID string, in dto.CreateGarnishmentRequest) error {
	now := time.Now()
	g := &entity.JudicialGarnishment{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		EmployeeID:       in.EmployeeID,
		Class:            in.Class,
		CourtOrder:       in.CourtOrder,
		NotificationDate: in.NotificationDate,
		Percentage:       in.Percentage,
		FixedAmount:      in.FixedAmount,
		TotalDebt:        in.TotalDebt,
		Balance:          in.TotalDebt,
		Status:           entity.GarnishmentActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := g.Validate(); err != nil {
		return err
	}
	return uc.garnishmentRepo.Create(g)
}
