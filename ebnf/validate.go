package ebnf

import (
	"github.com/sirupsen/logrus"

	"github.com/arr-ai/ebnfc/fa"
)

type validator struct {
	doc       *Document
	compiler  fa.Compiler
	refCounts map[string]int
	diags     Diagnostics
}

// Validate checks the document with the default pattern compiler. See
// ValidateWith.
func (d *Document) Validate(throwIfErrors bool) (Diagnostics, error) {
	return d.ValidateWith(fa.Default, throwIfErrors)
}

// ValidateWith walks every production and reports undefined references,
// malformed patterns, empty operators and unreferenced productions. The walk
// always covers the whole document. The returned error is non-nil only when
// throwIfErrors is set and an Error diagnostic was found; it carries every
// diagnostic.
func (d *Document) ValidateWith(compiler fa.Compiler, throwIfErrors bool) (Diagnostics, error) {
	v := validator{
		doc:       d,
		compiler:  compiler,
		refCounts: make(map[string]int, d.Len()),
	}
	for _, name := range d.names {
		v.refCounts[name] = 0
	}
	for _, name := range d.names {
		prod := d.productions[name]
		v.validateExpr(name, prod.Expr, true)
	}

	start := d.StartProduction()
	for _, name := range d.names {
		prod := d.productions[name]
		if v.refCounts[name] == 0 && name != start && !prod.IsHidden() {
			v.add(newDiagnostic(Warning, CodeUnreferencedProduction, prod.Position,
				"Unreferenced production %q", name))
		}
	}

	logrus.Debugf("validated %d productions: %d diagnostic(s)", d.Len(), len(v.diags))
	if throwIfErrors {
		return v.diags, v.diags.Err()
	}
	return v.diags, nil
}

func (v *validator) add(d Diagnostic) {
	v.diags = append(v.diags, d)
}

// validateExpr visits e, which belongs to the production owner. root is set
// for the production's own body.
func (v *validator) validateExpr(owner string, e Expr, root bool) {
	switch e := e.(type) {
	case nil:
	case *Literal:
		v.countTerminal(owner, e, root)
	case *Regex:
		if _, err := v.compiler.Pattern(e.Value, 0); err != nil {
			v.add(newDiagnostic(Error, CodeInvalidRegex, e.Position, "Invalid regular expression"))
		}
		v.countTerminal(owner, e, root)
	case *Reference:
		if e.Symbol == "" {
			v.add(newDiagnostic(Error, CodeNullReference, e.Position, "Null reference expression"))
			return
		}
		if _, has := v.refCounts[e.Symbol]; !has {
			v.add(newDiagnostic(Error, CodeUndefinedSymbol, e.Position,
				"Reference to undefined symbol %q", e.Symbol))
			return
		}
		v.refCounts[e.Symbol]++
	case *Concat:
		v.validateBinary(owner, e, e.Left, e.Right)
	case *Or:
		v.validateBinary(owner, e, e.Left, e.Right)
	case *Optional:
		v.validateUnary(owner, e, e.Expr)
	case *Repeat:
		v.validateUnary(owner, e, e.Expr)
	}
}

// countTerminal credits the production declaring t, unless t is that
// production's own body.
func (v *validator) countTerminal(owner string, t Expr, root bool) {
	name := v.doc.FindProductionByExpr(t)
	if name == "" || root && name == owner {
		return
	}
	v.refCounts[name]++
}

func (v *validator) validateBinary(owner string, e, left, right Expr) {
	if left == nil && right == nil {
		v.add(newDiagnostic(Warning, CodeNilExpression, e.Pos(), "Nil expression"))
		return
	}
	v.validateExpr(owner, left, false)
	v.validateExpr(owner, right, false)
}

func (v *validator) validateUnary(owner string, e, inner Expr) {
	if inner == nil {
		v.add(newDiagnostic(Warning, CodeNilExpression, e.Pos(), "Nil expression"))
		return
	}
	v.validateExpr(owner, inner, false)
}

// Prepare validates the document and, if no errors were found, declares
// implicit terminals. The returned error is non-nil only when throwIfErrors is
// set and an Error diagnostic was found.
func (d *Document) Prepare(throwIfErrors bool) (Diagnostics, error) {
	return d.PrepareWith(fa.Default, throwIfErrors)
}

func (d *Document) PrepareWith(compiler fa.Compiler, throwIfErrors bool) (Diagnostics, error) {
	diags, _ := d.ValidateWith(compiler, false)
	if !diags.HasErrors() {
		diags = append(diags, d.DeclareImplicitTerminals()...)
	} else {
		logrus.Debug("skipping implicit terminals: grammar has errors")
	}
	if throwIfErrors {
		return diags, diags.Err()
	}
	return diags, nil
}
