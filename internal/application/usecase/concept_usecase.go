package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/formula"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// ConceptUseCase catálogo de conceptos laborales de la empresa. Las fórmulas
// se validan sintácticamente al guardar: un concepto con fórmula rota no
// debe llegar nunca al motor.
type ConceptUseCase struct {
	repo repository.LaborConceptRepository
}

// NewConceptUseCase construye el caso de uso.
func NewConceptUseCase(repo repository.LaborConceptRepository) *ConceptUseCase {
	return &ConceptUseCase{repo: repo}
}

// Create crea un concepto. Si es de modo FORMULA, la fórmula debe parsear.
func (uc *ConceptUseCase) Create(companyID string, in dto.CreateConceptRequest) (*dto.ConceptResponse, error) {
	if in.CalcMode == entity.CalcModeFormula {
		if ok, msg := formula.Validate(in.Formula); !ok {
			return nil, &formula.Error{Msg: msg}
		}
	}
	now := time.Now()
	concept := &entity.LaborConcept{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Code:               in.Code,
		Name:               in.Name,
		Type:               in.Type,
		CalcMode:           in.CalcMode,
		Formula:            in.Formula,
		Amount:             in.Amount,
		Percentage:         in.Percentage,
		Base:               in.Base,
		AfectaIBC:          in.AfectaIBC,
		AfectaParafiscales: in.AfectaParafiscal,
		EsProvision:        in.EsProvision,
		Orden:              in.Orden,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := concept.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(concept); err != nil {
		return nil, err
	}
	return toConceptResponse(concept), nil
}

// ValidateFormula chequea la sintaxis de una fórmula sin guardarla. Tolera
// identificadores no resueltos: esos solo se conocen en tiempo de corrida.
func (uc *ConceptUseCase) ValidateFormula(in dto.ValidateFormulaRequest) *dto.ValidateFormulaResponse {
	ok, msg := formula.Validate(in.Formula)
	return &dto.ValidateFormulaResponse{Valid: ok, Error: msg}
}

// ListActive devuelve el catálogo activo en orden de evaluación.
func (uc *ConceptUseCase) ListActive(companyID string) ([]dto.ConceptResponse, error) {
	concepts, err := uc.repo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConceptResponse, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, *toConceptResponse(c))
	}
	return out, nil
}

// Deactivate retira un concepto del catálogo sin borrarlo: los detalles de
// nóminas históricas lo siguen referenciando.
func (uc *ConceptUseCase) Deactivate(companyID, id string) error {
	concept, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if concept == nil || concept.CompanyID != companyID {
		return domain.ErrNotFound
	}
	concept.Active = false
	concept.UpdatedAt = time.Now()
	return uc.repo.Update(concept)
}

func toConceptResponse(c *entity.LaborConcept) *dto.ConceptResponse {
	return &dto.ConceptResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Code:             c.Code,
		Name:             c.Name,
		Type:             c.Type,
		CalcMode:         c.CalcMode,
		Formula:          c.Formula,
		Amount:           c.Amount,
		Percentage:       c.Percentage,
		Base:             c.Base,
		AfectaIBC:        c.AfectaIBC,
		AfectaParafiscal: c.AfectaParafiscales,
		EsProvision:      c.EsProvision,
		Orden:            c.Orden,
		Active:           c.Active,
	}
}
