package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/legal"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// FICUseCase consolida el aporte mensual al Fondo de la Industria de la
// Construcción: sobre las nóminas ya calculadas del mes, suma el fondo de
// solidaridad de los empleados cuyo IBC supera 4 SMMLV.
type FICUseCase struct {
	recordRepo repository.PayrollRecordRepository
	ficRepo    repository.FICRepository
	legalRepo  repository.LegalParameterRepository
}

func NewFICUseCase(
	recordRepo repository.PayrollRecordRepository,
	ficRepo repository.FICRepository,
	legalRepo repository.LegalParameterRepository,
) *FICUseCase {
	return &FICUseCase{recordRepo: recordRepo, ficRepo: ficRepo, legalRepo: legalRepo}
}

// Consolidate recalcula y guarda el agregado del mes. Es idempotente: la
// clave es (empresa, año, mes) y cada corrida reemplaza el valor anterior.
func (uc *FICUseCase) Consolidate(ctx context.Context, companyID string, year, month int) (*entity.FICContribution, error) {
	asOf := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	smmlv, err := uc.minimumWage(asOf)
	if err != nil {
		return nil, err
	}
	threshold := smmlv.Mul(decimal.NewFromInt(4))

	records, err := uc.recordRepo.ListCalculatedByMonth(companyID, year, month)
	if err != nil {
		return nil, err
	}

	agg := &entity.FICContribution{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		BaseTotal: decimal.Zero,
		Amount:    decimal.Zero,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, r := range records {
		if r.IBC.LessThanOrEqual(threshold) {
			continue
		}
		agg.EmployeeCount++
		agg.BaseTotal = agg.BaseTotal.Add(r.IBC)
		agg.Amount = agg.Amount.Add(r.FSP)
	}

	if err := uc.ficRepo.Upsert(agg); err != nil {
		return nil, err
	}
	return agg, nil
}

// GetMonth consulta el agregado ya consolidado; nil si el mes no se ha corrido.
func (uc *FICUseCase) GetMonth(ctx context.Context, companyID string, year, month int) (*entity.FICContribution, error) {
	return uc.ficRepo.GetByMonth(companyID, year, month)
}

func (uc *FICUseCase) minimumWage(asOf time.Time) (decimal.Decimal, error) {
	params, err := uc.legalRepo.ListAsOf(asOf)
	if err != nil {
		return decimal.Zero, err
	}
	res := legal.NewResolver(params)
	return res.Amount(entity.ParamSMMLV, asOf), nil
}
