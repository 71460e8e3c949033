package ebnf

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/arr-ai/ebnfc/cfg"
	"github.com/arr-ai/ebnfc/errors"
)

// Disjunctions is the canonical form of an expression: the distinct symbol
// sequences it derives, in first-seen order. An empty sequence is epsilon.
type Disjunctions [][]string

func epsilon() Disjunctions {
	return Disjunctions{{}}
}

// disjunctionSet accumulates distinct sequences in insertion order.
type disjunctionSet struct {
	out     Disjunctions
	buckets map[uint64][]int
}

func newDisjunctionSet() *disjunctionSet {
	return &disjunctionSet{out: Disjunctions{}, buckets: map[uint64][]int{}}
}

func (s *disjunctionSet) add(seq []string) {
	h := HashSequence(seq)
	for _, i := range s.buckets[h] {
		if slices.Equal(s.out[i], seq) {
			return
		}
	}
	s.buckets[h] = append(s.buckets[h], len(s.out))
	s.out = append(s.out, seq)
}

func (s *disjunctionSet) addAll(d Disjunctions) {
	for _, seq := range d {
		s.add(seq)
	}
}

type repeatHelper struct {
	expr Expr
	name string
}

// expander turns the expressions of one production into disjunctions. Repeat
// nodes introduce helper non-terminals whose rules are held in pending until
// flushed.
type expander struct {
	doc     *Document
	g       *cfg.Grammar
	owner   string
	helpers []repeatHelper
	pending []cfg.Rule
}

func (d *Document) newExpander(g *cfg.Grammar, owner string) *expander {
	if g == nil {
		g = cfg.New()
	}
	return &expander{doc: d, g: g, owner: owner}
}

// Expand computes the disjunctions of e as part of production owner.
// Helper rules created for Repeat nodes are appended to g, which may be nil to
// discard them.
//
// Every terminal reachable from e must already be the body of some
// production (see Prepare); otherwise Expand panics.
func (d *Document) Expand(e Expr, g *cfg.Grammar, owner string) Disjunctions {
	x := d.newExpander(g, owner)
	result := x.expand(e)
	x.flush()
	return result
}

// Disjunctions expands the body of the named production.
func (d *Document) Disjunctions(name string) Disjunctions {
	prod := d.Get(name)
	if prod == nil {
		return nil
	}
	return d.Expand(prod.Expr, nil, name)
}

func (x *expander) flush() {
	for _, r := range x.pending {
		x.g.Append(r.Head, r.Body)
	}
	x.pending = nil
}

func (x *expander) expand(e Expr) Disjunctions {
	switch e := e.(type) {
	case nil:
		return epsilon()
	case *Literal, *Regex:
		name := x.doc.FindProductionByExpr(e)
		if name == "" {
			panic(fmt.Errorf("%w: terminal %s was not declared", errors.Inconceivable, e))
		}
		return Disjunctions{{name}}
	case *Reference:
		return Disjunctions{{e.Symbol}}
	case *Concat:
		return x.expandConcat(e)
	case *Or:
		return x.expandOr(e)
	case *Optional:
		set := newDisjunctionSet()
		set.addAll(x.expand(e.Expr))
		set.add([]string{})
		return set.out
	case *Repeat:
		return Disjunctions{{x.repeatHelper(e)}}
	}
	panic(errors.Inconceivable)
}

func (x *expander) expandConcat(e *Concat) Disjunctions {
	switch {
	case e.Left == nil:
		return x.expand(e.Right)
	case e.Right == nil:
		return x.expand(e.Left)
	}
	left := x.expand(e.Left)
	right := x.expand(e.Right)
	set := newDisjunctionSet()
	for _, l := range left {
		for _, r := range right {
			seq := make([]string, 0, len(l)+len(r))
			seq = append(seq, l...)
			seq = append(seq, r...)
			set.add(seq)
		}
	}
	return set.out
}

func (x *expander) expandOr(e *Or) Disjunctions {
	set := newDisjunctionSet()
	set.addAll(x.expand(e.Left))
	set.addAll(x.expand(e.Right))
	return set.out
}

// repeatHelper returns the helper non-terminal H standing for e, creating
//
//	H -> ε
//	H -> d H   for each non-empty disjunction d of e.Expr
//
// on first use. Equal Repeat nodes in one expansion share a helper.
func (x *expander) repeatHelper(e *Repeat) string {
	for _, h := range x.helpers {
		if Equal(h.expr, e) {
			return h.name
		}
	}
	name := x.helperName()
	x.helpers = append(x.helpers, repeatHelper{expr: e, name: name})
	inner := x.expand(e.Expr)
	x.pending = append(x.pending, cfg.Rule{Head: name, Body: []string{}})
	for _, d := range inner {
		if len(d) == 0 {
			continue
		}
		body := make([]string, 0, len(d)+1)
		body = append(body, d...)
		body = append(body, name)
		x.pending = append(x.pending, cfg.Rule{Head: name, Body: body})
	}
	return name
}

func (x *expander) helperName() string {
	base := "rep"
	if x.owner != "" {
		base = x.owner + "-rep"
	}
	name := base
	for i := 2; x.nameTaken(name); i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	return name
}

func (x *expander) nameTaken(name string) bool {
	if x.doc.Has(name) || x.g.HasHead(name) {
		return true
	}
	for _, h := range x.helpers {
		if h.name == name {
			return true
		}
	}
	return false
}
