package ebnf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/ebnfc/cfg"
	"github.com/arr-ai/ebnfc/fa"
)

// ToCfg projects the document onto a canonical context-free grammar. Each
// non-terminal production contributes one rule per disjunction, followed by
// the rules of any Repeat helpers it needed. Productions with attributes get
// an entry in AttributeSets.
//
// The document must have been prepared.
func (d *Document) ToCfg() *cfg.Grammar {
	g := cfg.New()
	for _, name := range d.names {
		prod := d.productions[name]
		if !prod.IsTerminal() {
			x := d.newExpander(g, name)
			for _, body := range x.expand(prod.Expr) {
				g.Append(name, body)
			}
			x.flush()
		}
		if len(prod.Attrs) > 0 {
			g.AttributeSets[name] = prod.Attrs.Clone()
		}
	}
	logrus.Debugf("projected %d productions onto %d rules", d.Len(), len(g.Rules))
	return g
}

// SymbolResolver maps a symbol name to the id a lexer reports for it.
type SymbolResolver interface {
	SymbolID(name string) (int, bool)
}

// SymbolTable assigns dense ids to symbols.
type SymbolTable struct {
	names []string
	ids   map[string]int
}

// NewSymbolTable numbers the rule heads of g first, then the terminal
// productions of d: literals before patterns, each group in declaration
// order. Lexers break ties between equal-length matches by lower id, so
// keywords win over identifier patterns.
func NewSymbolTable(d *Document, g *cfg.Grammar) *SymbolTable {
	t := &SymbolTable{ids: map[string]int{}}
	if g != nil {
		for _, head := range g.Heads() {
			t.add(head)
		}
	}
	for _, name := range d.names {
		if _, ok := d.productions[name].Expr.(*Literal); ok {
			t.add(name)
		}
	}
	for _, name := range d.names {
		if _, ok := d.productions[name].Expr.(*Regex); ok {
			t.add(name)
		}
	}
	for _, name := range d.names {
		t.add(name)
	}
	return t
}

func (t *SymbolTable) add(name string) {
	if _, has := t.ids[name]; !has {
		t.ids[name] = len(t.names)
		t.names = append(t.names, name)
	}
}

func (t *SymbolTable) SymbolID(name string) (int, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the symbol with the given id, or "".
func (t *SymbolTable) Name(id int) string {
	if id < 0 || id >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Names returns the symbols in id order.
func (t *SymbolTable) Names() []string {
	return append([]string{}, t.names...)
}

// ToLexer compiles every terminal production and merges the automata into a
// single lexer.
func (d *Document) ToLexer(resolver SymbolResolver, compiler fa.Compiler) (*fa.Lexer, error) {
	if compiler == nil {
		compiler = fa.Default
	}
	var automata []*fa.Automaton
	for _, name := range d.names {
		prod := d.productions[name]
		if !prod.IsTerminal() {
			continue
		}
		id, ok := resolver.SymbolID(name)
		if !ok {
			return nil, fmt.Errorf("no symbol id for terminal %q", name)
		}
		var a *fa.Automaton
		var err error
		switch e := prod.Expr.(type) {
		case *Literal:
			a, err = compiler.Literal(e.Value, id)
		case *Regex:
			a, err = compiler.Pattern(e.Value, id)
		}
		if err != nil {
			return nil, fmt.Errorf("terminal %q: %w", name, err)
		}
		automata = append(automata, a)
	}
	return fa.Merge(automata), nil
}
