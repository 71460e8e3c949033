package codegen

import (
	"fmt"
	"io"
	"text/template"

	"github.com/arr-ai/ebnfc/ebnf"
)

type Symbol struct {
	ID    int
	Name  string
	Const string
}

type TemplateData struct {
	CommandLine string
	PackageName string
	StartConst  string
	Symbols     []Symbol
	Terminals   fmt.Stringer
	Rules       fmt.Stringer
}

// MakeTemplateData numbers the symbols of a prepared document and renders
// its terminals and canonical rules.
func MakeTemplateData(doc *ebnf.Document, packageName, commandLine string) TemplateData {
	g := doc.ToCfg()
	table := ebnf.NewSymbolTable(doc, g)
	names := table.Names()
	consts := ConstNames(names)

	symbols := make([]Symbol, 0, len(names))
	for i, name := range names {
		symbols = append(symbols, Symbol{ID: i, Name: name, Const: consts[name]})
	}
	terminals := terminalsNode(doc, consts)
	rules := rulesNode(g, consts)
	return TemplateData{
		CommandLine: commandLine,
		PackageName: packageName,
		StartConst:  consts[doc.StartProduction()],
		Symbols:     symbols,
		Terminals:   &terminals,
		Rules:       &rules,
	}
}

var goTemplate = template.Must(template.New("symbols").Parse(`// Code generated by "ebnfc {{.CommandLine}}". DO NOT EDIT.

package {{.PackageName}}

// Symbol ids. Rule heads come first, then literal terminals, then patterns.
const (
{{- range .Symbols}}
	{{.Const}} = {{.ID}}
{{- end}}
)

{{if .StartConst}}const StartSymbol = {{.StartConst}}

{{end -}}
var SymbolNames = [...]string{
{{- range .Symbols}}
	{{.Const}}: {{printf "%q" .Name}},
{{- end}}
}

// Terminal is a lexer token definition. Pattern is plain text when Literal
// is set and a regular expression otherwise.
type Terminal struct {
	Symbol  int
	Pattern string
	Literal bool
}

// Rule is a canonical production; an empty Body derives the empty string.
type Rule struct {
	Head int
	Body []int
}

var Terminals = {{.Terminals.String}}

var Rules = {{.Rules.String}}
`))

// Write renders data as unformatted Go source.
func Write(w io.Writer, data TemplateData) error {
	return goTemplate.Execute(w, data)
}
