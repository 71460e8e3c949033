package ebnf

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/scanner"

	goebnf "golang.org/x/exp/ebnf"
)

// FromGoEBNF reads a grammar in the notation of golang.org/x/exp/ebnf (the Go
// specification's EBNF) and converts it. Productions keep their source order,
// so the first one is the start production. Ranges "a" … "z" become character
// class patterns.
func FromGoEBNF(filename string, r io.Reader) (*Document, error) {
	grammar, err := goebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	prods := make([]*goebnf.Production, 0, len(grammar))
	for _, p := range grammar {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})

	doc := NewDocument()
	for _, p := range prods {
		expr, err := fromGoExpr(p.Expr)
		if err != nil {
			return nil, err
		}
		prod := NewProduction(expr)
		prod.Position = fromScannerPos(p.Pos())
		if err := doc.Add(p.Name.String, prod); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func fromScannerPos(p scanner.Position) Pos {
	return Pos{Line: p.Line, Column: p.Column, Offset: int64(p.Offset)}
}

func fromGoExprs(list []goebnf.Expression) ([]Expr, error) {
	out := make([]Expr, 0, len(list))
	for _, e := range list {
		x, err := fromGoExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func fromGoExpr(e goebnf.Expression) (Expr, error) {
	switch e := e.(type) {
	case nil:
		return nil, nil
	case goebnf.Alternative:
		alts, err := fromGoExprs(e)
		if err != nil || len(alts) == 0 {
			return nil, err
		}
		result := alts[len(alts)-1]
		for i := len(alts) - 2; i >= 0; i-- {
			result = &Or{Left: alts[i], Right: result, Position: fromScannerPos(e[i].Pos())}
		}
		return result, nil
	case goebnf.Sequence:
		items, err := fromGoExprs(e)
		if err != nil {
			return nil, err
		}
		var result Expr
		for _, item := range items {
			result = juxtapose(result, item)
		}
		return result, nil
	case *goebnf.Name:
		return &Reference{Symbol: e.String, Position: fromScannerPos(e.Pos())}, nil
	case *goebnf.Token:
		return &Literal{Value: e.String, Position: fromScannerPos(e.Pos())}, nil
	case *goebnf.Range:
		pattern := "[" + classEscape(e.Begin.String) + "-" + classEscape(e.End.String) + "]"
		return &Regex{Value: pattern, Position: fromScannerPos(e.Pos())}, nil
	case *goebnf.Group:
		return fromGoExpr(e.Body)
	case *goebnf.Option:
		body, err := fromGoExpr(e.Body)
		return &Optional{Expr: body, Position: fromScannerPos(e.Pos())}, err
	case *goebnf.Repetition:
		body, err := fromGoExpr(e.Body)
		return &Repeat{Expr: body, Position: fromScannerPos(e.Pos())}, err
	case *goebnf.Bad:
		return nil, fmt.Errorf("%s: %s", e.Pos(), e.Error)
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

var classEscaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`, `[`, `\[`, `^`, `\^`, `-`, `\-`)

func classEscape(s string) string {
	return classEscaper.Replace(s)
}
