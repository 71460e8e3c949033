package ebnf

import (
	"io"
	"os"

	"github.com/arr-ai/ebnfc/parse"
)

// MaxDepth bounds the nesting of (), [] and {} groups accepted by the parser.
var MaxDepth = 256

type parser struct {
	s     *parse.Scanner
	doc   *Document
	depth int
}

// ParseString parses grammar source held in memory.
func ParseString(src string) (*Document, error) {
	return parseScanner(parse.NewScanner(src))
}

// Parse reads grammar source from r. filename is only used in errors.
func Parse(r io.Reader, filename string) (*Document, error) {
	return parseScanner(parse.NewScannerFromReader(r, filename))
}

func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// MustParseString is ParseString for grammars known to be valid.
func MustParseString(src string) *Document {
	doc, err := ParseString(src)
	if err != nil {
		panic(err)
	}
	return doc
}

func parseScanner(s *parse.Scanner) (*Document, error) {
	p := &parser{s: s, doc: NewDocument()}
	s.SkipCommentsAndWhitespace()
	for s.Current() != parse.EOF {
		if err := p.parseProduction(); err != nil {
			return nil, err
		}
		s.SkipCommentsAndWhitespace()
	}
	if err := s.Expecting(parse.EOF); err != nil {
		return nil, err
	}
	p.doc.comments = s.Comments()
	return p.doc, nil
}

// production := identifier attrs? '=' expr ';'
//
// A name declared again has its new body folded into the old one as an Or and
// takes the position of the latest declaration.
func (p *parser) parseProduction() error {
	s := p.s
	s.SkipCommentsAndWhitespace()
	pos := s.Position()
	name, err := s.ReadIdentifier()
	if err != nil {
		return err
	}
	prod := p.doc.Get(name)
	redeclared := prod != nil
	if !redeclared {
		prod = NewProduction(nil)
		if err := p.doc.Add(name, prod); err != nil {
			return err
		}
	}
	prod.Position = pos

	s.SkipCommentsAndWhitespace()
	if s.Current() == '<' {
		if err := p.parseAttributes(prod); err != nil {
			return err
		}
		s.SkipCommentsAndWhitespace()
	}
	if err := s.Expecting('='); err != nil {
		return err
	}
	s.Advance()

	eqPos := s.Position()
	expr, err := p.parseExpression()
	if err != nil {
		return err
	}
	s.SkipCommentsAndWhitespace()
	if err := s.Expecting(';'); err != nil {
		return err
	}
	s.Advance()

	if redeclared {
		prod.Expr = &Or{Left: prod.Expr, Right: expr, Position: eqPos}
	} else {
		prod.Expr = expr
	}
	return nil
}

// attrs := '<' attr (',' attr)* '>'
// attr  := identifier ('=' value)?
func (p *parser) parseAttributes(prod *Production) error {
	s := p.s
	s.Advance()
	s.SkipCommentsAndWhitespace()
	for s.Current() != '>' {
		name, err := s.ReadIdentifier()
		if err != nil {
			return err
		}
		s.SkipCommentsAndWhitespace()
		var value interface{} = true
		if s.Current() == '=' {
			s.Advance()
			if value, err = s.ParseJSONValue(); err != nil {
				return err
			}
			s.SkipCommentsAndWhitespace()
		}
		if err := s.Expecting(',', '>'); err != nil {
			return err
		}
		prod.Attrs[name] = value
		if s.Current() == ',' {
			s.Advance()
			s.SkipCommentsAndWhitespace()
		}
	}
	s.Advance()
	return nil
}

// expr := term ('|' expr)?
// term := atom+
//
// Alternatives fold to the right: a | b | c is Or(a, Or(b, c)). An empty
// alternative is nil. Parsing stops, without consuming, at ';', any closing
// bracket or EOF; the caller checks which one it expected.
func (p *parser) parseExpression() (Expr, error) {
	s := p.s
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, s.Errorf("expression nested deeper than %d levels", MaxDepth)
	}

	var alts []Expr
	var bars []Pos
	var current Expr
	for {
		s.SkipCommentsAndWhitespace()
		pos := s.Position()
		var e Expr
		switch s.Current() {
		case parse.EOF, ';', ')', ']', '}':
			for i := len(bars) - 1; i >= 0; i-- {
				current = &Or{Left: alts[i], Right: current, Position: bars[i]}
			}
			return current, nil
		case '|':
			s.Advance()
			alts = append(alts, current)
			bars = append(bars, pos)
			current = nil
			continue
		case '(':
			inner, err := p.parseGroup(')')
			if err != nil {
				return nil, err
			}
			e = inner
		case '[':
			inner, err := p.parseGroup(']')
			if err != nil {
				return nil, err
			}
			e = &Optional{Expr: inner, Position: pos}
		case '{':
			inner, err := p.parseGroup('}')
			if err != nil {
				return nil, err
			}
			e = &Repeat{Expr: inner, Position: pos}
		case '"':
			value, err := s.ParseJSONString()
			if err != nil {
				return nil, err
			}
			e = &Literal{Value: value, Position: pos}
		case '\'':
			s.Advance()
			value, err := s.ReadUntil('\'', '\\')
			if err != nil {
				return nil, err
			}
			e = &Regex{Value: value, Position: pos}
		default:
			symbol, err := s.ReadIdentifier()
			if err != nil {
				return nil, err
			}
			e = &Reference{Symbol: symbol, Position: pos}
		}
		current = juxtapose(current, e)
	}
}

func (p *parser) parseGroup(closer rune) (Expr, error) {
	s := p.s
	s.Advance()
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	s.SkipCommentsAndWhitespace()
	if err := s.Expecting(closer); err != nil {
		return nil, err
	}
	s.Advance()
	return inner, nil
}

// juxtapose appends e to the concatenation chain in current. An empty group
// contributes nothing.
func juxtapose(current, e Expr) Expr {
	switch {
	case e == nil:
		return current
	case current == nil:
		return e
	}
	return &Concat{Left: current, Right: e, Position: current.Pos()}
}
