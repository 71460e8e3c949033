// Package cfg holds the canonical context-free grammar produced from an EBNF
// document: an ordered list of rules plus per-symbol attribute sets.
package cfg

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Epsilon is how an empty rule body is rendered.
const Epsilon = "ε"

// Rule is a single production head -> body. An empty body derives epsilon.
type Rule struct {
	Head string   `yaml:"head"`
	Body []string `yaml:"body,flow"`
}

func (r Rule) IsEpsilon() bool {
	return len(r.Body) == 0
}

func (r Rule) String() string {
	if r.IsEpsilon() {
		return r.Head + " -> " + Epsilon
	}
	return r.Head + " -> " + strings.Join(r.Body, " ")
}

// Grammar accumulates rules in order.
type Grammar struct {
	Rules         []Rule
	AttributeSets map[string]map[string]interface{}
}

func New() *Grammar {
	return &Grammar{AttributeSets: map[string]map[string]interface{}{}}
}

func (g *Grammar) Append(head string, body []string) {
	g.Rules = append(g.Rules, Rule{Head: head, Body: append([]string{}, body...)})
}

func (g *Grammar) HasHead(head string) bool {
	for _, r := range g.Rules {
		if r.Head == head {
			return true
		}
	}
	return false
}

// Heads returns the distinct rule heads in first-seen order.
func (g *Grammar) Heads() []string {
	seen := map[string]bool{}
	var heads []string
	for _, r := range g.Rules {
		if !seen[r.Head] {
			seen[r.Head] = true
			heads = append(heads, r.Head)
		}
	}
	return heads
}

// RulesFor returns the rules whose head is head, in order.
func (g *Grammar) RulesFor(head string) []Rule {
	var rules []Rule
	for _, r := range g.Rules {
		if r.Head == head {
			rules = append(rules, r)
		}
	}
	return rules
}

// Symbols lists every symbol: non-terminals (heads) first, then symbols that
// only occur in bodies (terminals), each in first-seen order.
func (g *Grammar) Symbols() []string {
	heads := g.Heads()
	seen := map[string]bool{}
	for _, h := range heads {
		seen[h] = true
	}
	symbols := append([]string{}, heads...)
	for _, r := range g.Rules {
		for _, s := range r.Body {
			if !seen[s] {
				seen[s] = true
				symbols = append(symbols, s)
			}
		}
	}
	return symbols
}

// Terminals lists the symbols that never head a rule.
func (g *Grammar) Terminals() []string {
	return g.Symbols()[len(g.Heads()):]
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for _, r := range g.Rules {
		sb.WriteString(r.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

type yamlGrammar struct {
	Rules      []Rule                            `yaml:"rules"`
	Attributes map[string]map[string]interface{} `yaml:"attributes,omitempty"`
}

func (g *Grammar) MarshalYAML() (interface{}, error) {
	return yamlGrammar{Rules: g.Rules, Attributes: g.AttributeSets}, nil
}

func (g *Grammar) UnmarshalYAML(node *yaml.Node) error {
	var y yamlGrammar
	if err := node.Decode(&y); err != nil {
		return err
	}
	g.Rules = y.Rules
	g.AttributeSets = y.Attributes
	if g.AttributeSets == nil {
		g.AttributeSets = map[string]map[string]interface{}{}
	}
	return nil
}
