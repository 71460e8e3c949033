package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arr-ai/ebnfc/cfg"
	"github.com/arr-ai/ebnfc/ebnf"
)

const (
	noScope int = iota
	squigglyScope
)

// goNode is a Go expression under construction: a name followed by its
// children, joined one per line inside the scope's delimiters.
type goNode struct {
	name     string
	children []goNode
	scope    int
}

func (g *goNode) String() string {
	open, closer := "", ""
	if g.scope == squigglyScope {
		open, closer = "{\n", "}"
	}
	children := make([]string, 0, len(g.children))
	for _, c := range g.children {
		children = append(children, c.String())
	}
	return strings.Join([]string{g.name, open, strings.Join(children, ",\n"), closer}, "")
}

func (g *goNode) Add(n goNode) {
	g.children = append(g.children, n)
}

// safeString escapes src for use inside a raw string literal.
func safeString(src string) string {
	r := strings.NewReplacer("`", "`+\"`\"+`")
	return r.Replace(src)
}

func stringNode(fmtString string, args ...interface{}) goNode {
	return goNode{name: fmt.Sprintf(fmtString, args...)}
}

func symbolList(symbols []string, consts map[string]string) string {
	names := make([]string, 0, len(symbols))
	for _, s := range symbols {
		names = append(names, consts[s])
	}
	return "[]int{" + strings.Join(names, ", ") + "}"
}

// terminalsNode lists every terminal production with its pattern. Literal
// text is quoted; regular expressions use raw strings.
func terminalsNode(doc *ebnf.Document, consts map[string]string) goNode {
	node := goNode{name: "[]Terminal", scope: squigglyScope}
	doc.Each(func(name string, prod *ebnf.Production) {
		switch e := prod.Expr.(type) {
		case *ebnf.Literal:
			node.Add(stringNode("{Symbol: %s, Pattern: %s, Literal: true}", consts[name], strconv.Quote(e.Value)))
		case *ebnf.Regex:
			node.Add(stringNode("{Symbol: %s, Pattern: `%s`}", consts[name], safeString(e.Value)))
		}
	})
	return node
}

func rulesNode(g *cfg.Grammar, consts map[string]string) goNode {
	node := goNode{name: "[]Rule", scope: squigglyScope}
	for _, r := range g.Rules {
		node.Add(stringNode("{Head: %s, Body: %s}", consts[r.Head], symbolList(r.Body, consts)))
	}
	return node
}
