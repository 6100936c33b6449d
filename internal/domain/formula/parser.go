package formula

import "github.com/shopspring/decimal"

// node es un nodo del AST de la fórmula.
type node interface {
	eval(ctx map[string]decimal.Decimal) (value, error)
	check() error
}

type numberNode struct {
	d decimal.Decimal
}

type identNode struct {
	name string
	pos  int
}

type unaryNode struct {
	op      string // "-", "+", "not"
	operand node
	pos     int
}

type binaryNode struct {
	op   string
	l, r node
	pos  int
}

type ternaryNode struct {
	cond, then, els node
}

type callNode struct {
	fn   string
	args []node
	pos  int
}

// funcWhitelist funciones permitidas y su aridad (mín, máx; -1 = variádica).
var funcWhitelist = map[string][2]int{
	"max":     {1, -1},
	"min":     {1, -1},
	"round":   {1, 2},
	"abs":     {1, 1},
	"decimal": {1, 1},
}

type parser struct {
	toks []token
	i    int
}

// Parse tokeniza y parsea la fórmula completa, devolviendo la raíz del AST.
func Parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errAt(t.pos, "token inesperado %q", t.text)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) acceptOp(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.i++
		return true
	}
	return false
}

func (p *parser) acceptKw(kw string) bool {
	if t := p.peek(); t.kind == tokKeyword && t.text == kw {
		p.i++
		return true
	}
	return false
}

// ternary: or_expr [ "if" or_expr "else" ternary ]  (estilo `x if cond else y`)
func (p *parser) ternary() (node, error) {
	then, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if !p.acceptKw("if") {
		return then, nil
	}
	cond, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if !p.acceptKw("else") {
		return nil, errAt(p.peek().pos, "se esperaba 'else' en el condicional")
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &ternaryNode{cond: cond, then: then, els: els}, nil
}

func (p *parser) orExpr() (node, error) {
	l, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.peek().pos
		if !p.acceptKw("or") {
			return l, nil
		}
		r, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: "or", l: l, r: r, pos: pos}
	}
}

func (p *parser) andExpr() (node, error) {
	l, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.peek().pos
		if !p.acceptKw("and") {
			return l, nil
		}
		r, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: "and", l: l, r: r, pos: pos}
	}
}

func (p *parser) notExpr() (node, error) {
	pos := p.peek().pos
	if p.acceptKw("not") {
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "not", operand: operand, pos: pos}, nil
	}
	return p.comparison()
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) comparison() (node, error) {
	l, err := p.arith()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind == tokOp && comparisonOps[t.text] {
		p.next()
		r, err := p.arith()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: t.text, l: l, r: r, pos: t.pos}, nil
	}
	return l, nil
}

func (p *parser) arith() (node, error) {
	l, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return l, nil
		}
		p.next()
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: t.text, l: l, r: r, pos: t.pos}
	}
}

func (p *parser) term() (node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/" && t.text != "//" && t.text != "%") {
			return l, nil
		}
		p.next()
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: t.text, l: l, r: r, pos: t.pos}
	}
}

func (p *parser) unary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: t.text, operand: operand, pos: t.pos}, nil
	}
	return p.power()
}

// power: primary [ "**" unary ]  (asociativo a la derecha)
func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	pos := p.peek().pos
	if p.acceptOp("**") {
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: "**", l: base, r: exp, pos: pos}, nil
	}
	return base, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		d, err := decimal.NewFromString(t.text)
		if err != nil {
			return nil, errAt(t.pos, "número inválido %q", t.text)
		}
		return &numberNode{d: d}, nil
	case tokIdent:
		if p.peek().kind == tokOp && p.peek().text == "(" {
			// Llamada: solo funciones de la lista blanca, todo lo demás se
			// rechaza antes de evaluar.
			arity, ok := funcWhitelist[t.text]
			if !ok {
				return nil, errAt(t.pos, "función no permitida: %s", t.text)
			}
			p.next() // consume "("
			var args []node
			if !p.acceptOp(")") {
				for {
					arg, err := p.ternary()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.acceptOp(",") {
						continue
					}
					if p.acceptOp(")") {
						break
					}
					return nil, errAt(p.peek().pos, "se esperaba ',' o ')' en los argumentos de %s", t.text)
				}
			}
			if len(args) < arity[0] || (arity[1] >= 0 && len(args) > arity[1]) {
				return nil, errAt(t.pos, "número de argumentos inválido para %s", t.text)
			}
			return &callNode{fn: t.text, args: args, pos: t.pos}, nil
		}
		return &identNode{name: t.text, pos: t.pos}, nil
	case tokOp:
		if t.text == "(" {
			n, err := p.ternary()
			if err != nil {
				return nil, err
			}
			if !p.acceptOp(")") {
				return nil, errAt(p.peek().pos, "falta ')' de cierre")
			}
			return n, nil
		}
		return nil, errAt(t.pos, "token inesperado %q", t.text)
	case tokKeyword:
		return nil, errAt(t.pos, "palabra clave %q fuera de lugar", t.text)
	default:
		return nil, errAt(t.pos, "fórmula incompleta")
	}
}
