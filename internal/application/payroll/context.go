package payroll

import "github.com/shopspring/decimal"

// Nombres de variable que el motor publica en el contexto de fórmulas. Las
// fórmulas de conceptos dinámicos pueden leer cualquiera de ellos, y cada
// concepto evaluado agrega su propio código como variable para los que
// siguen (el orden del catálogo importa).
const (
	VarSalarioBase    = "salario_base"
	VarDiasTrabajados = "dias_trabajados"
	VarDiasPeriodo    = "dias_periodo"
	VarBasico         = "basico"
	VarAuxTransporte  = "auxilio_transporte"
	VarHorasExtra     = "horas_extra"
	VarTotalItems     = "total_items"
	VarTotalDevengado = "total_devengado"
	VarIBC            = "ibc"
	VarSMMLV          = "SMMLV"
	VarUVT            = "UVT"
	VarAuxLegal       = "AUXILIO_TRANSPORTE"
	VarTopeIBC        = "TOPE_IBC"
)

// Contexto es el estado corriente de la corrida: un mapa explícito de
// variables que cada paso lee y extiende. Pasa de paso en paso en lugar de
// vivir como atributos mutables del motor, así cada paso es verificable por
// separado.
type Contexto struct {
	vars map[string]decimal.Decimal
}

// NewContexto arranca el contexto vacío.
func NewContexto() *Contexto {
	return &Contexto{vars: make(map[string]decimal.Decimal)}
}

// Set publica una variable del contexto.
func (c *Contexto) Set(name string, v decimal.Decimal) {
	c.vars[name] = v
}

// SetInt publica una variable entera.
func (c *Contexto) SetInt(name string, v int) {
	c.vars[name] = decimal.NewFromInt(int64(v))
}

// Get devuelve la variable o cero.
func (c *Contexto) Get(name string) decimal.Decimal {
	return c.vars[name]
}

// Vars expone el mapa para el evaluador de fórmulas.
func (c *Contexto) Vars() map[string]decimal.Decimal {
	return c.vars
}
