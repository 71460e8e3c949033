package ebnf

import (
	"fmt"

	"github.com/arr-ai/ebnfc/gotree"
	"github.com/arr-ai/ebnfc/parse"
)

// SyntaxError is the single, fatal error reported by the parser.
type SyntaxError = parse.Error

type Severity int

const (
	Message Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Message:
		return "message"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic codes.
const (
	CodeImplicitTerminal       = -1
	CodeUndefinedSymbol        = 1
	CodeUnreferencedProduction = 2
	CodeNilExpression          = 3
	CodeNullReference          = 4
	CodeInvalidRegex           = 12
)

type Diagnostic struct {
	Severity Severity
	Code     int
	Message  string
	Pos      Pos
}

func newDiagnostic(severity Severity, code int, pos Pos, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s[%d]: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Code, d.Message)
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of the given severity.
func (ds Diagnostics) Filter(severity Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// Err returns a *DiagnosticsError carrying every diagnostic if any of them is
// an error, and nil otherwise.
func (ds Diagnostics) Err() error {
	if !ds.HasErrors() {
		return nil
	}
	return &DiagnosticsError{Diagnostics: ds}
}

// DiagnosticsError aggregates all diagnostics of a failed phase.
type DiagnosticsError struct {
	Diagnostics Diagnostics
}

func (e *DiagnosticsError) Error() string {
	n := len(e.Diagnostics.Filter(Error))
	tree := gotree.New(fmt.Sprintf("grammar has %d error(s)", n))
	for _, d := range e.Diagnostics {
		tree.Add(d.String())
	}
	return "\n" + tree.Print()
}
