package formula

import "github.com/shopspring/decimal"

// value es el resultado intermedio de evaluar un nodo: decimal o booleano.
type value struct {
	d      decimal.Decimal
	b      bool
	isBool bool
}

func numVal(d decimal.Decimal) value { return value{d: d} }
func boolVal(b bool) value           { return value{b: b, isBool: true} }

// truthy reproduce la verdad de la gramática: booleano directo, numérico
// distinto de cero.
func (v value) truthy() bool {
	if v.isBool {
		return v.b
	}
	return !v.d.IsZero()
}

func (v value) numeric(pos int) (decimal.Decimal, error) {
	if v.isBool {
		return decimal.Zero, errAt(pos, "se esperaba un valor numérico, no booleano")
	}
	return v.d, nil
}

// resolveIdent busca primero en el contexto de la corrida y luego en las
// constantes fijas.
func resolveIdent(name string, pos int, ctx map[string]decimal.Decimal) (decimal.Decimal, error) {
	if ctx != nil {
		if d, ok := ctx[name]; ok {
			return d, nil
		}
	}
	if d, ok := Constants[name]; ok {
		return d, nil
	}
	return decimal.Zero, errAt(pos, "variable no definida: %s", name)
}

func (n *numberNode) eval(map[string]decimal.Decimal) (value, error) {
	return numVal(n.d), nil
}
func (n *numberNode) check() error { return nil }

func (n *identNode) eval(ctx map[string]decimal.Decimal) (value, error) {
	d, err := resolveIdent(n.name, n.pos, ctx)
	if err != nil {
		return value{}, err
	}
	return numVal(d), nil
}

// check tolera identificadores sin resolver: en validación estructural el
// contexto completo aún no existe.
func (n *identNode) check() error { return nil }

func (n *unaryNode) eval(ctx map[string]decimal.Decimal) (value, error) {
	v, err := n.operand.eval(ctx)
	if err != nil {
		return value{}, err
	}
	switch n.op {
	case "not":
		return boolVal(!v.truthy()), nil
	case "-":
		d, err := v.numeric(n.pos)
		if err != nil {
			return value{}, err
		}
		return numVal(d.Neg()), nil
	default: // "+"
		d, err := v.numeric(n.pos)
		if err != nil {
			return value{}, err
		}
		return numVal(d), nil
	}
}
func (n *unaryNode) check() error { return n.operand.check() }

func (n *binaryNode) eval(ctx map[string]decimal.Decimal) (value, error) {
	// and/or con cortocircuito.
	if n.op == "and" || n.op == "or" {
		l, err := n.l.eval(ctx)
		if err != nil {
			return value{}, err
		}
		if n.op == "and" && !l.truthy() {
			return boolVal(false), nil
		}
		if n.op == "or" && l.truthy() {
			return boolVal(true), nil
		}
		r, err := n.r.eval(ctx)
		if err != nil {
			return value{}, err
		}
		return boolVal(r.truthy()), nil
	}

	lv, err := n.l.eval(ctx)
	if err != nil {
		return value{}, err
	}
	rv, err := n.r.eval(ctx)
	if err != nil {
		return value{}, err
	}
	l, err := lv.numeric(n.pos)
	if err != nil {
		return value{}, err
	}
	r, err := rv.numeric(n.pos)
	if err != nil {
		return value{}, err
	}

	switch n.op {
	case "+":
		return numVal(l.Add(r)), nil
	case "-":
		return numVal(l.Sub(r)), nil
	case "*":
		return numVal(l.Mul(r)), nil
	case "/":
		if r.IsZero() {
			return value{}, errAt(n.pos, "división por cero")
		}
		return numVal(l.Div(r)), nil
	case "//":
		if r.IsZero() {
			return value{}, errAt(n.pos, "división por cero")
		}
		return numVal(l.Div(r).Floor()), nil
	case "%":
		if r.IsZero() {
			return value{}, errAt(n.pos, "división por cero")
		}
		return numVal(l.Mod(r)), nil
	case "**":
		return numVal(l.Pow(r)), nil
	case "==":
		return boolVal(l.Equal(r)), nil
	case "!=":
		return boolVal(!l.Equal(r)), nil
	case "<":
		return boolVal(l.LessThan(r)), nil
	case "<=":
		return boolVal(l.LessThanOrEqual(r)), nil
	case ">":
		return boolVal(l.GreaterThan(r)), nil
	case ">=":
		return boolVal(l.GreaterThanOrEqual(r)), nil
	default:
		return value{}, errAt(n.pos, "operador %q no permitido", n.op)
	}
}
func (n *binaryNode) check() error {
	if err := n.l.check(); err != nil {
		return err
	}
	return n.r.check()
}

func (n *ternaryNode) eval(ctx map[string]decimal.Decimal) (value, error) {
	cond, err := n.cond.eval(ctx)
	if err != nil {
		return value{}, err
	}
	if cond.truthy() {
		return n.then.eval(ctx)
	}
	return n.els.eval(ctx)
}
func (n *ternaryNode) check() error {
	if err := n.cond.check(); err != nil {
		return err
	}
	if err := n.then.check(); err != nil {
		return err
	}
	return n.els.check()
}

func (n *callNode) eval(ctx map[string]decimal.Decimal) (value, error) {
	args := make([]decimal.Decimal, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(ctx)
		if err != nil {
			return value{}, err
		}
		d, err := v.numeric(n.pos)
		if err != nil {
			return value{}, err
		}
		args[i] = d
	}
	switch n.fn {
	case "max":
		return numVal(decimal.Max(args[0], args[1:]...)), nil
	case "min":
		return numVal(decimal.Min(args[0], args[1:]...)), nil
	case "abs":
		return numVal(args[0].Abs()), nil
	case "decimal":
		return numVal(args[0]), nil
	case "round":
		places := int32(0)
		if len(args) == 2 {
			places = int32(args[1].IntPart())
		}
		return numVal(args[0].Round(places)), nil
	default:
		return value{}, errAt(n.pos, "función no permitida: %s", n.fn)
	}
}
func (n *callNode) check() error {
	for _, a := range n.args {
		if err := a.check(); err != nil {
			return err
		}
	}
	return nil
}
