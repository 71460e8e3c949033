package ebnf

import (
	"fmt"
	"strings"
)

// ExprString renders e, or "" for nil.
func ExprString(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func (e *Literal) String() string {
	return quoteJSON(e.Value)
}

func (e *Regex) String() string {
	return "'" + strings.ReplaceAll(e.Value, "'", `\'`) + "'"
}

func (e *Reference) String() string {
	return e.Symbol
}

// Alternation binds looser than juxtaposition, so an Or operand of a Concat
// is parenthesised. Nested operands that would re-associate differently when
// parsed back are parenthesised too.
func (e *Concat) String() string {
	if e.Left == nil {
		return ExprString(e.Right)
	}
	if e.Right == nil {
		return e.Left.String()
	}
	left := e.Left.String()
	if _, ok := e.Left.(*Or); ok {
		left = group(left)
	}
	right := e.Right.String()
	switch e.Right.(type) {
	case *Or, *Concat:
		right = group(right)
	}
	return left + " " + right
}

func (e *Or) String() string {
	left := ExprString(e.Left)
	if _, ok := e.Left.(*Or); ok {
		left = group(left)
	}
	return left + " | " + ExprString(e.Right)
}

func (e *Optional) String() string {
	return "[ " + ExprString(e.Expr) + " ]"
}

func (e *Repeat) String() string {
	return "{ " + ExprString(e.Expr) + " }"
}

func group(s string) string {
	return "( " + s + " )"
}

// quoteJSON quotes s as a JSON string without HTML escaping.
func quoteJSON(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
