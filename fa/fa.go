// Package fa compiles terminal definitions into matching automata and merges
// them into a single scanning lexer. Patterns use Go regexp (Perl) syntax.
package fa

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"
)

// Automaton matches one terminal and reports Accept on success.
type Automaton struct {
	Accept  int
	Pattern string
	re      *regexp.Regexp
}

func (a *Automaton) String() string {
	return fmt.Sprintf("%d: /%s/", a.Accept, a.Pattern)
}

// Match returns the length of the longest prefix of s accepted by a, or -1.
func (a *Automaton) Match(s string) int {
	if loc := a.re.FindStringIndex(s); loc != nil {
		return loc[1]
	}
	return -1
}

// Compiler turns terminal definitions into automata.
type Compiler interface {
	Literal(text string, accept int) (*Automaton, error)
	Pattern(pattern string, accept int) (*Automaton, error)
}

// PatternError reports a malformed pattern.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern '%s': %s", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Default compiles through regexp/syntax.
var Default Compiler = regexpCompiler{}

type regexpCompiler struct{}

// Literal matches text exactly. The empty literal matches only the empty
// prefix, which a Lexer never reports as a token.
func (regexpCompiler) Literal(text string, accept int) (*Automaton, error) {
	return build(regexp.QuoteMeta(text), accept)
}

func (regexpCompiler) Pattern(pattern string, accept int) (*Automaton, error) {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return build(pattern, accept)
}

func build(pattern string, accept int) (*Automaton, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	re.Longest()
	return &Automaton{Accept: accept, Pattern: pattern, re: re}, nil
}

// Token is one lexeme recognised by a Lexer.
type Token struct {
	Symbol int
	Value  string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%d‣%d%q", t.Offset, t.Symbol, t.Value)
}

// Lexer is a set of automata run in parallel; the longest match wins and ties
// go to the lowest accept symbol.
type Lexer struct {
	automata []*Automaton
}

// Merge combines automata into a lexer.
func Merge(automata []*Automaton) *Lexer {
	sorted := make([]*Automaton, 0, len(automata))
	for _, a := range automata {
		if a != nil {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Accept < sorted[j].Accept
	})
	return &Lexer{automata: sorted}
}

func (l *Lexer) Automata() []*Automaton {
	return l.automata
}

func (l *Lexer) String() string {
	parts := make([]string, 0, len(l.automata))
	for _, a := range l.automata {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "\n")
}

// Next returns the token at the start of s. ok is false when nothing matches a
// non-empty prefix.
func (l *Lexer) Next(s string) (tok Token, ok bool) {
	best := 0
	for _, a := range l.automata {
		if n := a.Match(s); n > best {
			best = n
			tok = Token{Symbol: a.Accept, Value: s[:n]}
			ok = true
		}
	}
	return tok, ok
}

// Tokenize splits input entirely into tokens. Symbols listed in skip are
// matched but left out of the result.
func (l *Lexer) Tokenize(input string, skip ...int) ([]Token, error) {
	skipped := map[int]bool{}
	for _, s := range skip {
		skipped[s] = true
	}
	var tokens []Token
	for offset := 0; offset < len(input); {
		tok, ok := l.Next(input[offset:])
		if !ok {
			return tokens, fmt.Errorf("no token matches input at offset %d: %q", offset, excerpt(input[offset:]))
		}
		tok.Offset = offset
		if !skipped[tok.Symbol] {
			tokens = append(tokens, tok)
		}
		offset += len(tok.Value)
	}
	return tokens, nil
}

func excerpt(s string) string {
	const limit = 16
	if len(s) > limit {
		return s[:limit] + "…"
	}
	return s
}
