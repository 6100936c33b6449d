package legal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/legal"
)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func param(code string, from time.Time, to *time.Time, fixed string) *entity.LegalParameter {
	return &entity.LegalParameter{
		ConceptCode:   code,
		FixedAmount:   decimal.RequireFromString(fixed),
		EffectiveFrom: from,
		EffectiveTo:   to,
		Active:        true,
	}
}

func TestResolve_VigenciaContieneLaFecha(t *testing.T) {
	to2025 := fecha(2025, 12, 31)
	r := legal.NewResolver([]*entity.LegalParameter{
		param(entity.ParamSMMLV, fecha(2025, 1, 1), &to2025, "1300000"),
		param(entity.ParamSMMLV, fecha(2026, 1, 1), nil, "1423500"),
	})

	p := r.Resolve(entity.ParamSMMLV, fecha(2026, 6, 15))
	require.NotNil(t, p, "debe existir SMMLV vigente en 2026")
	assert.True(t, p.FixedAmount.Equal(decimal.RequireFromString("1423500")))

	p = r.Resolve(entity.ParamSMMLV, fecha(2025, 6, 15))
	require.NotNil(t, p)
	assert.True(t, p.FixedAmount.Equal(decimal.RequireFromString("1300000")),
		"la consulta en 2025 debe resolver la vigencia 2025")
}

func TestResolve_SinVigenciaRetornaNil(t *testing.T) {
	r := legal.NewResolver([]*entity.LegalParameter{
		param(entity.ParamSMMLV, fecha(2026, 1, 1), nil, "1423500"),
	})
	// Ausencia de configuración no es error: el caller trata el aporte como cero.
	assert.Nil(t, r.Resolve(entity.ParamSENA, fecha(2026, 6, 15)))
	assert.True(t, r.Amount(entity.ParamSENA, fecha(2026, 6, 15)).IsZero())
}

func TestResolve_DesempatePorEffectiveFromMasReciente(t *testing.T) {
	// Dos vigencias abiertas que se solapan (dato mal formado): gana la más reciente.
	r := legal.NewResolver([]*entity.LegalParameter{
		param(entity.ParamUVT, fecha(2025, 1, 1), nil, "49799"),
		param(entity.ParamUVT, fecha(2026, 1, 1), nil, "52374"),
	})
	p := r.Resolve(entity.ParamUVT, fecha(2026, 3, 1))
	require.NotNil(t, p)
	assert.True(t, p.FixedAmount.Equal(decimal.RequireFromString("52374")),
		"con vigencias solapadas gana EffectiveFrom más reciente")
}

func TestResolve_InactivoNoResuelve(t *testing.T) {
	p := param(entity.ParamSMMLV, fecha(2026, 1, 1), nil, "1423500")
	p.Active = false
	r := legal.NewResolver([]*entity.LegalParameter{p})
	assert.Nil(t, r.Resolve(entity.ParamSMMLV, fecha(2026, 6, 15)))
}

func TestPcts_FraccionYNoPorcentaje(t *testing.T) {
	salud := &entity.LegalParameter{
		ConceptCode:   entity.ParamSalud,
		TotalPct:      decimal.RequireFromString("12.5"),
		EmployeePct:   decimal.RequireFromString("4"),
		EmployerPct:   decimal.RequireFromString("8.5"),
		EffectiveFrom: fecha(2026, 1, 1),
		Active:        true,
	}
	require.NoError(t, salud.Validate())

	r := legal.NewResolver([]*entity.LegalParameter{salud})
	asOf := fecha(2026, 2, 28)
	assert.True(t, r.EmployeePct(entity.ParamSalud, asOf).Equal(decimal.RequireFromString("0.04")))
	assert.True(t, r.EmployerPct(entity.ParamSalud, asOf).Equal(decimal.RequireFromString("0.085")))
}

func TestLegalParameter_ValidateParticion(t *testing.T) {
	p := &entity.LegalParameter{
		ConceptCode:   entity.ParamPension,
		TotalPct:      decimal.RequireFromString("16"),
		EmployeePct:   decimal.RequireFromString("4"),
		EmployerPct:   decimal.RequireFromString("12"),
		EffectiveFrom: fecha(2026, 1, 1),
	}
	assert.NoError(t, p.Validate())

	// 4 + 11 != 16 por fuera de la tolerancia 0.001: rechazado en el borde de escritura.
	p.EmployerPct = decimal.RequireFromString("11")
	assert.ErrorIs(t, p.Validate(), entity.ErrLegalParameterInvalid)

	// Dentro de la tolerancia.
	p.EmployerPct = decimal.RequireFromString("12.0009")
	assert.NoError(t, p.Validate())
}
