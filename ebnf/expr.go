package ebnf

import (
	"github.com/arr-ai/ebnfc/parse"
)

// Pos locates a node in the grammar source. It is diagnostic metadata only
// and never takes part in equality.
type Pos = parse.Position

// Expr is an EBNF expression. The set of implementations is closed: Literal,
// Regex, Reference, Concat, Or, Optional and Repeat.
//
// Expressions are immutable once built, so subtrees may be shared freely
// between productions and documents. Binary and unary operands may be nil,
// which stands for "nothing".
type Expr interface {
	Pos() Pos
	String() string
	isExpr()
}

// Literal matches its Value exactly.
type Literal struct {
	Value    string
	Position Pos
}

// Regex matches Value, a pattern handed to the automaton compiler.
type Regex struct {
	Value    string
	Position Pos
}

// Reference names a production. It is resolved lazily, by name.
type Reference struct {
	Symbol   string
	Position Pos
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Expr
	Position    Pos
}

// Or matches either Left or Right. A nil side matches the empty string.
type Or struct {
	Left, Right Expr
	Position    Pos
}

// Optional matches Expr zero or one times.
type Optional struct {
	Expr     Expr
	Position Pos
}

// Repeat matches Expr zero or more times.
type Repeat struct {
	Expr     Expr
	Position Pos
}

func (e *Literal) Pos() Pos   { return e.Position }
func (e *Regex) Pos() Pos     { return e.Position }
func (e *Reference) Pos() Pos { return e.Position }
func (e *Concat) Pos() Pos    { return e.Position }
func (e *Or) Pos() Pos        { return e.Position }
func (e *Optional) Pos() Pos  { return e.Position }
func (e *Repeat) Pos() Pos    { return e.Position }

func (*Literal) isExpr()   {}
func (*Regex) isExpr()     {}
func (*Reference) isExpr() {}
func (*Concat) isExpr()    {}
func (*Or) isExpr()        {}
func (*Optional) isExpr()  {}
func (*Repeat) isExpr()    {}

var (
	_ Expr = &Literal{}
	_ Expr = &Regex{}
	_ Expr = &Reference{}
	_ Expr = &Concat{}
	_ Expr = &Or{}
	_ Expr = &Optional{}
	_ Expr = &Repeat{}
)

// IsTerminal reports whether e is a Literal or a Regex. A Reference is never
// terminal, even when it names a terminal production.
func IsTerminal(e Expr) bool {
	switch e.(type) {
	case *Literal, *Regex:
		return true
	}
	return false
}

// Clone returns e. Expressions are immutable, so a handle copy is as good as
// a deep copy.
func Clone(e Expr) Expr {
	return e
}

func Lit(value string) *Literal          { return &Literal{Value: value} }
func RE(pattern string) *Regex           { return &Regex{Value: pattern} }
func Ref(symbol string) *Reference       { return &Reference{Symbol: symbol} }
func Opt(e Expr) *Optional               { return &Optional{Expr: e} }
func Rep(e Expr) *Repeat                 { return &Repeat{Expr: e} }
func NewOr(left, right Expr) *Or         { return &Or{Left: left, Right: right} }
func NewConcat(left, right Expr) *Concat { return &Concat{Left: left, Right: right} }

// Cat juxtaposes terms the way the parser does: Cat(a, b, c) is
// Concat(Concat(a, b), c).
func Cat(first Expr, rest ...Expr) Expr {
	result := first
	for _, e := range rest {
		result = &Concat{Left: result, Right: e}
	}
	return result
}

// Alt builds alternation the way the parser does: Alt(a, b, c) is
// Or(a, Or(b, c)).
func Alt(first Expr, rest ...Expr) Expr {
	if len(rest) == 0 {
		return first
	}
	return &Or{Left: first, Right: Alt(rest[0], rest[1:]...)}
}

// Walk visits e and its descendants in pre-order. Returning false from visit
// prunes the subtree. Nil operands are not visited.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch e := e.(type) {
	case *Concat:
		Walk(e.Left, visit)
		Walk(e.Right, visit)
	case *Or:
		Walk(e.Left, visit)
		Walk(e.Right, visit)
	case *Optional:
		Walk(e.Expr, visit)
	case *Repeat:
		Walk(e.Expr, visit)
	}
}
