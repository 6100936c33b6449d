package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// LegalParameterUseCase administra los parámetros legales con vigencia.
// Nunca se editan valores históricos: un cambio de ley es una fila nueva
// con EffectiveFrom posterior.
type LegalParameterUseCase struct {
	repo          repository.LegalParameterRepository
	retentionRepo repository.RetentionTableRepository
}

// NewLegalParameterUseCase construye el caso de uso.
func NewLegalParameterUseCase(repo repository.LegalParameterRepository, retentionRepo repository.RetentionTableRepository) *LegalParameterUseCase {
	return &LegalParameterUseCase{repo: repo, retentionRepo: retentionRepo}
}

// Create registra una versión de un parámetro legal.
func (uc *LegalParameterUseCase) Create(in dto.CreateLegalParameterRequest) (*dto.LegalParameterResponse, error) {
	now := time.Now()
	param := &entity.LegalParameter{
		ID:            uuid.New().String(),
		ConceptCode:   in.ConceptCode,
		Description:   in.Description,
		TotalPct:      in.TotalPct,
		EmployeePct:   in.EmployeePct,
		EmployerPct:   in.EmployerPct,
		FixedAmount:   in.FixedAmount,
		EffectiveFrom: in.EffectiveFrom,
		EffectiveTo:   in.EffectiveTo,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(param); err != nil {
		return nil, err
	}
	return toLegalParameterResponse(param), nil
}

// ListAsOf devuelve los parámetros vigentes en una fecha.
func (uc *LegalParameterUseCase) ListAsOf(asOf time.Time) ([]dto.LegalParameterResponse, error) {
	params, err := uc.repo.ListAsOf(asOf)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LegalParameterResponse, 0, len(params))
	for _, p := range params {
		out = append(out, *toLegalParameterResponse(p))
	}
	return out, nil
}

// CreateRetentionTable registra una versión completa de la tabla de
// retención en la fuente (los rangos van en UVT).
func (uc *LegalParameterUseCase) CreateRetentionTable(in dto.CreateRetentionTableRequest) error {
	brackets := make([]entity.RetentionBracket, 0, len(in.Brackets))
	for _, b := range in.Brackets {
		brackets = append(brackets, entity.RetentionBracket{
			FromUVT: b.FromUVT,
			ToUVT:   b.ToUVT,
			RatePct: b.RatePct,
		})
	}
	table := &entity.RetentionTable{
		ID:            uuid.New().String(),
		Description:   in.Description,
		Brackets:      brackets,
		EffectiveFrom: in.EffectiveFrom,
		EffectiveTo:   in.EffectiveTo,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	return uc.retentionRepo.Create(table)
}

func toLegalParameterResponse(p *entity.LegalParameter) *dto.LegalParameterResponse {
	return &dto.LegalParameterResponse{
		ID:            p.ID,
		ConceptCode:   p.ConceptCode,
		Description:   p.Description,
		TotalPct:      p.TotalPct,
		EmployeePct:   p.EmployeePct,
		EmployerPct:   p.EmployerPct,
		FixedAmount:   p.FixedAmount,
		EffectiveFrom: p.EffectiveFrom,
		EffectiveTo:   p.EffectiveTo,
		Active:        p.Active,
	}
}
