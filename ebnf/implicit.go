package ebnf

import (
	"fmt"

	"github.com/arr-ai/frozen"
	"github.com/sirupsen/logrus"
)

const implicitPrefix = "implicit"

// ImplicitName returns the first of implicit, implicit2, implicit3, ... that
// is not in names.
func ImplicitName(names frozen.Set[string]) string {
	name := implicitPrefix
	for i := 2; names.Has(name); i++ {
		name = fmt.Sprintf("%s%d", implicitPrefix, i)
	}
	return name
}

// DeclareImplicitTerminals gives every inline Literal or Regex that is not
// already some production's body a production of its own, named by
// ImplicitName. It only adds productions and reports each one with an
// informational diagnostic. Running it again adds nothing.
func (d *Document) DeclareImplicitTerminals() Diagnostics {
	var terms []Expr
	visited := map[Expr]struct{}{}
	for _, name := range d.names {
		body := d.productions[name].Expr
		Walk(body, func(e Expr) bool {
			if _, seen := visited[e]; seen {
				return false
			}
			visited[e] = struct{}{}
			if IsTerminal(e) && e != body {
				terms = append(terms, e)
			}
			return true
		})
	}

	var diags Diagnostics
	names := d.nameSet()
	for _, term := range terms {
		if d.FindProductionByExpr(term) != "" {
			continue
		}
		name := ImplicitName(names)
		names = names.With(name)
		prod := NewProduction(Clone(term))
		prod.Position = term.Pos()
		if err := d.Add(name, prod); err != nil {
			panic(err)
		}
		logrus.Tracef("declared %s = %s", name, term)
		diags = append(diags, newDiagnostic(Message, CodeImplicitTerminal, term.Pos(),
			"Terminal was implicitly declared."))
	}
	return diags
}
