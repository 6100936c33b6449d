package formula_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain/formula"
)

func ctxWith(pairs map[string]string) map[string]decimal.Decimal {
	ctx := make(map[string]decimal.Decimal, len(pairs))
	for k, v := range pairs {
		ctx[k] = decimal.RequireFromString(v)
	}
	return ctx
}

func evalOK(t *testing.T, src string, ctx map[string]decimal.Decimal) decimal.Decimal {
	t.Helper()
	d, err := formula.Evaluate(src, ctx)
	require.NoError(t, err, "la fórmula %q debe evaluar sin error", src)
	return d
}

func TestEvaluate_Aritmetica(t *testing.T) {
	ctx := ctxWith(map[string]string{"salario_base": "1000000"})

	casos := []struct {
		src      string
		esperado string
	}{
		{"salario_base * 1.25", "1250000.00"},
		{"salario_base / 30", "33333.33"},
		{"salario_base + 200000 - 50000", "1150000.00"},
		{"salario_base // 30", "33333.00"},
		{"salario_base % 7", "1.00"},
		{"2 ** 10", "1024.00"},
		{"-salario_base + 1000000", "0.00"},
		{"(salario_base + 200000) * 0.04", "48000.00"},
	}
	for _, c := range casos {
		got := evalOK(t, c.src, ctx)
		assert.Equal(t, c.esperado, got.StringFixed(2), "fórmula %q", c.src)
	}
}

func TestEvaluate_CondicionalYBooleanos(t *testing.T) {
	ctx := ctxWith(map[string]string{"salario_base": "1423500", "dias": "30"})

	// Auxilio condicionado al tope de 2 SMMLV, escrito como lo haría un operador.
	got := evalOK(t, "200000 if salario_base <= 2 * 1423500 else 0", ctx)
	assert.Equal(t, "200000.00", got.StringFixed(2))

	got = evalOK(t, "0 if salario_base > 2 * 1423500 or dias == 0 else 100", ctx)
	assert.Equal(t, "100.00", got.StringFixed(2))

	got = evalOK(t, "1 if not (dias < 15) else 0", ctx)
	assert.Equal(t, "1.00", got.StringFixed(2))

	got = evalOK(t, "50 if dias >= 15 and salario_base > 0 else 0", ctx)
	assert.Equal(t, "50.00", got.StringFixed(2))
}

func TestEvaluate_FuncionesPermitidas(t *testing.T) {
	ctx := ctxWith(map[string]string{"a": "10", "b": "-3"})

	assert.Equal(t, "10.00", evalOK(t, "max(a, b, 5)", ctx).StringFixed(2))
	assert.Equal(t, "-3.00", evalOK(t, "min(a, b)", ctx).StringFixed(2))
	assert.Equal(t, "3.00", evalOK(t, "abs(b)", ctx).StringFixed(2))
	assert.Equal(t, "10.00", evalOK(t, "decimal(a)", ctx).StringFixed(2))
	assert.Equal(t, "3.33", evalOK(t, "round(a / 3, 2)", ctx).StringFixed(2))
	assert.Equal(t, "3.00", evalOK(t, "round(a / 3)", ctx).StringFixed(2))
}

func TestEvaluate_ConstantesFijas(t *testing.T) {
	// Los recargos estatutarios están disponibles sin contexto.
	got := evalOK(t, "PCT_EXTRA_DIURNA * 100", nil)
	assert.Equal(t, "25.00", got.StringFixed(2))

	ctx := ctxWith(map[string]string{"salario_base": "1440000", "horas": "10"})
	got = evalOK(t, "salario_base / HORAS_MES * (1 + PCT_EXTRA_DIURNA) * horas", ctx)
	assert.Equal(t, "75000.00", got.StringFixed(2))
}

// TestEvaluate_Sandbox verifica la frontera de seguridad: las fórmulas son
// configuración de operadores, nunca código. Todo intento de salirse de la
// gramática debe morir con ErrFormula antes de evaluar.
func TestEvaluate_Sandbox(t *testing.T) {
	prohibidas := []string{
		"__import__('os')",
		"open('x')",
		"salario_base.__class__",
		"[1, 2, 3]",
		"x = 5",
		"lambda: 1",
		"exec(codigo)",
		"eval(otro)",
		"datos[0]",
		`"texto"`,
		"a; b",
	}
	for _, src := range prohibidas {
		_, err := formula.Evaluate(src, ctxWith(map[string]string{"salario_base": "1"}))
		require.Error(t, err, "la fórmula %q debe ser rechazada", src)
		assert.ErrorIs(t, err, formula.ErrFormula, "fórmula %q", src)
	}
}

func TestEvaluate_VariableNoDefinida(t *testing.T) {
	_, err := formula.Evaluate("bono_obra * 2", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, formula.ErrFormula)
	assert.Contains(t, err.Error(), "bono_obra")
}

func TestEvaluate_DivisionPorCero(t *testing.T) {
	_, err := formula.Evaluate("100 / (1 - 1)", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, formula.ErrFormula)
}

func TestEvaluate_ResultadoBooleanoNoEsValor(t *testing.T) {
	_, err := formula.Evaluate("1 < 2", nil)
	require.Error(t, err, "una fórmula que produce booleano no es un concepto monetario")
}

func TestValidate_TolerariablesSinResolver(t *testing.T) {
	// Validación estructural en el admin: la variable aún no existe pero la
	// sintaxis es correcta.
	ok, msg := formula.Validate("bono_productividad * 0.5 if dias_trabajados >= 15 else 0")
	assert.True(t, ok, "mensaje: %s", msg)

	ok, msg = formula.Validate("max(salario_base, SMMLV)")
	assert.True(t, ok, "mensaje: %s", msg)
}

func TestValidate_RechazaSintaxisInvalida(t *testing.T) {
	casos := []string{
		"salario_base *",
		"(a + b",
		"a ++* b",
		"import os",
		"f(x)",
		"100 if a > 0", // condicional sin else
	}
	for _, src := range casos {
		ok, msg := formula.Validate(src)
		assert.False(t, ok, "la fórmula %q debe ser inválida", src)
		assert.NotEmpty(t, msg)
	}
}

func TestEvaluate_RedondeoMedioArriba(t *testing.T) {
	// 0.005 debe subir a 0.01 (redondeo half-up de dinero).
	got := evalOK(t, "0.005", nil)
	assert.Equal(t, "0.01", got.StringFixed(2))

	got = evalOK(t, "2.675", nil)
	assert.Equal(t, "2.68", got.StringFixed(2), "sin deriva binaria de punto flotante")
}
