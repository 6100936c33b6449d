// Package formula implementa el evaluador restringido de fórmulas de
// conceptos laborales. Las fórmulas son configuración escrita por operadores
// y persistida en el catálogo, no código confiable: la gramática permitida es
// una frontera de seguridad dura. Solo se aceptan aritmética, comparaciones,
// booleanos, el condicional `x if cond else y` y las funciones max, min,
// round, abs y decimal. Cualquier otra construcción se rechaza antes de
// evaluar.
package formula

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrFormula es el error sentinela de toda falla del evaluador: sintaxis
// inválida, construcción no permitida o variable sin resolver.
var ErrFormula = errors.New("fórmula inválida")

// Error describe una falla de evaluación con posición en la fórmula.
type Error struct {
	Msg string
	Pos int
}

func (e *Error) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("fórmula inválida en posición %d: %s", e.Pos, e.Msg)
	}
	return "fórmula inválida: " + e.Msg
}

// Unwrap permite errors.Is(err, ErrFormula).
func (e *Error) Unwrap() error { return ErrFormula }

func errAt(pos int, format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Constants son las constantes nominadas disponibles en toda fórmula además
// del contexto: recargos estatutarios fijos. Los valores legislados por año
// (SMMLV, UVT, AUXILIO_TRANSPORTE, TOPE_IBC) los inyecta el motor en el
// contexto desde la tabla de parámetros legales.
var Constants = map[string]decimal.Decimal{
	"PCT_EXTRA_DIURNA":     decimal.RequireFromString("0.25"),
	"PCT_EXTRA_NOCTURNA":   decimal.RequireFromString("0.75"),
	"PCT_RECARGO_NOCTURNO": decimal.RequireFromString("0.35"),
	"PCT_DOMINICAL":        decimal.RequireFromString("0.75"),
	"HORAS_MES":            decimal.NewFromInt(240),
	"DIAS_MES":             decimal.NewFromInt(30),
}

// Evaluate evalúa la fórmula contra el contexto de variables y devuelve el
// resultado redondeado a 2 decimales. Falla con *Error (ErrFormula) si la
// sintaxis es inválida, un identificador no está ni en el contexto ni en las
// constantes, o la expresión usa construcciones fuera de la gramática.
func Evaluate(formulaText string, ctx map[string]decimal.Decimal) (decimal.Decimal, error) {
	node, err := Parse(formulaText)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := node.eval(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if v.isBool {
		return decimal.Zero, errAt(0, "la fórmula no produce un valor numérico")
	}
	return v.d.Round(2), nil
}

// Validate hace la verificación estructural sin exigir contexto completo:
// las variables sin resolver se toleran (se conocerán en tiempo de cálculo),
// cualquier otro error no. Devuelve (ok, mensaje).
func Validate(formulaText string) (bool, string) {
	node, err := Parse(formulaText)
	if err != nil {
		return false, err.Error()
	}
	if err := node.check(); err != nil {
		return false, err.Error()
	}
	return true, ""
}
