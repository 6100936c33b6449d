package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// LifecycleUseCase maneja las transiciones de estado de la nómina
// individual: aprobar, pagar y anular. El cálculo vive en CalculateUseCase.
type LifecycleUseCase struct {
	recordRepo repository.PayrollRecordRepository
	periodRepo repository.PeriodRepository
}

func NewLifecycleUseCase(recordRepo repository.PayrollRecordRepository, periodRepo repository.PeriodRepository) *LifecycleUseCase {
	return &LifecycleUseCase{recordRepo: recordRepo, periodRepo: periodRepo}
}

func (uc *LifecycleUseCase) transition(ctx context.Context, companyID, recordID, to string) (*entity.PayrollRecord, error) {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil || record == nil {
		return nil, domain.ErrNotFound
	}
	if record.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !record.CanTransition(to) {
		return nil, fmt.Errorf("transición %s -> %s: %w", record.Status, to, domain.ErrEstadoInvalido)
	}
	record.Status = to
	record.UpdatedAt = time.Now()
	if err := uc.recordRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Approve pasa una nómina CALCULADA a APROBADA. Desde APROBADA ya no se
// recalcula: para corregir hay que anular.
func (uc *LifecycleUseCase) Approve(ctx context.Context, companyID, recordID string) (*entity.PayrollRecord, error) {
	return uc.transition(ctx, companyID, recordID, entity.RecordApproved)
}

// Pay marca una nómina APROBADA como PAGADA. Es el estado terminal del
// flujo feliz: desde ahí no hay anulación.
func (uc *LifecycleUseCase) Pay(ctx context.Context, companyID, recordID string) (*entity.PayrollRecord, error) {
	return uc.transition(ctx, companyID, recordID, entity.RecordPaid)
}

// Annul anula una nómina no pagada.
func (uc *LifecycleUseCase) Annul(ctx context.Context, companyID, recordID string) (*entity.PayrollRecord, error) {
	return uc.transition(ctx, companyID, recordID, entity.RecordAnnulled)
}

// ClosePeriod cierra un período ABIERTO. Un período cerrado no admite nuevas
// corridas de cálculo pero sí transiciones de aprobación y pago.
func (uc *LifecycleUseCase) ClosePeriod(ctx context.Context, companyID, periodID string) (*entity.PayrollPeriod, error) {
	period, err := uc.periodRepo.GetByID(periodID)
	if err != nil || period == nil {
		return nil, domain.ErrNotFound
	}
	if period.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if period.Status != entity.PeriodOpen {
		return nil, fmt.Errorf("período en estado %s: %w", period.Status, domain.ErrEstadoInvalido)
	}
	period.Status = entity.PeriodClosed
	period.UpdatedAt = time.Now()
	if err := uc.periodRepo.Update(period); err != nil {
		return nil, err
	}
	return period, nil
}
