package ebnf

import (
	"sort"
	"strconv"
	"strings"
)

// Well-known production attributes.
const (
	AttrStart  = "start"
	AttrHidden = "hidden"
)

// Attrs holds production attributes. Values are nil, bool, int or string.
type Attrs map[string]interface{}

// Bool reports whether key is present with the boolean value true.
func (a Attrs) Bool(key string) bool {
	b, ok := a[key].(bool)
	return ok && b
}

func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, has := b[k]
		if !has || v != w {
			return false
		}
	}
	return true
}

func (a Attrs) Clone() Attrs {
	clone := make(Attrs, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// Keys returns the attribute names sorted.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders `<a,b=false,c="x">`, or "" when there are no attributes.
// A true value is implied by a bare name.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('<')
	for i, k := range a.Keys() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		switch v := a[k].(type) {
		case nil:
			sb.WriteString("=null")
		case bool:
			if !v {
				sb.WriteString("=false")
			}
		case int:
			sb.WriteString("=" + strconv.Itoa(v))
		case string:
			sb.WriteString("=" + quoteJSON(v))
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// Production binds a body expression and attributes to a name held by the
// enclosing Document.
type Production struct {
	Expr     Expr
	Attrs    Attrs
	Position Pos
}

func NewProduction(expr Expr) *Production {
	return &Production{Expr: expr, Attrs: Attrs{}}
}

// IsTerminal reports whether the body is a Literal or Regex.
func (p *Production) IsTerminal() bool {
	return IsTerminal(p.Expr)
}

func (p *Production) IsStart() bool  { return p.Attrs.Bool(AttrStart) }
func (p *Production) IsHidden() bool { return p.Attrs.Bool(AttrHidden) }

func (p *Production) Equal(q *Production) bool {
	if p == q {
		return true
	}
	if p == nil || q == nil {
		return false
	}
	return p.Attrs.Equal(q.Attrs) && Equal(p.Expr, q.Expr)
}

// Clone copies the attributes. The body is shared since expressions are
// immutable.
func (p *Production) Clone() *Production {
	return &Production{
		Expr:     Clone(p.Expr),
		Attrs:    p.Attrs.Clone(),
		Position: p.Position,
	}
}

func (p *Production) String() string {
	return p.Attrs.String() + " = " + ExprString(p.Expr) + ";"
}
