package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// EOF is the value of Current once the input is exhausted.
const EOF rune = -1

// Position locates a rune within the source. Line and Column are 1-indexed,
// Offset is the 0-indexed byte offset.
type Position struct {
	Line   int
	Column int
	Offset int64
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is a fatal syntax error at a position in the source.
type Error struct {
	Position
	Filename string
	Msg      string
}

func (e *Error) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Position, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Msg)
}

// Scanner is a forward-only character stream with one rune of lookahead
// (plus one rune of peek used to recognise comment openers).
type Scanner struct {
	r        io.RuneReader
	filename string // the name of the file from which the source is derived (or empty if none)
	current  rune
	size     int // encoded width of current in bytes
	pos      Position
	next     rune
	nextSize int
	hasNext  bool
	err      error // first non-EOF read error
	comments int
}

func NewScanner(str string) *Scanner {
	return NewScannerFromReader(strings.NewReader(str), "")
}

func NewScannerWithFilename(str, filename string) *Scanner {
	return NewScannerFromReader(strings.NewReader(str), filename)
}

func NewScannerFromReader(r io.Reader, filename string) *Scanner {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	s := &Scanner{r: rr, filename: filename, pos: Position{Line: 1, Column: 1}}
	s.current, s.size = s.read()
	return s
}

// The name of the file from which the source is derived (or empty if none).
func (s *Scanner) Filename() string {
	return s.filename
}

// Current returns the rune under the cursor, or EOF.
func (s *Scanner) Current() rune {
	return s.current
}

// Position of the rune under the cursor.
func (s *Scanner) Position() Position {
	return s.pos
}

func (s *Scanner) Line() int     { return s.pos.Line }
func (s *Scanner) Column() int   { return s.pos.Column }
func (s *Scanner) Offset() int64 { return s.pos.Offset }

// Comments reports how many comments SkipCommentsAndWhitespace has consumed.
func (s *Scanner) Comments() int { return s.comments }

// read returns the next rune and the number of bytes it occupied in the
// input. An invalid byte reads as utf8.RuneError of width 1.
func (s *Scanner) read() (rune, int) {
	if s.hasNext {
		s.hasNext = false
		return s.next, s.nextSize
	}
	if s.err != nil {
		return EOF, 0
	}
	r, size, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return EOF, 0
	}
	return r, size
}

func (s *Scanner) peek() rune {
	if !s.hasNext {
		s.next, s.nextSize = s.read()
		s.hasNext = true
	}
	return s.next
}

// Advance moves past the current rune and returns the new current rune.
func (s *Scanner) Advance() rune {
	if s.current == EOF {
		return EOF
	}
	if s.current == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	s.pos.Offset += int64(s.size)
	s.current, s.size = s.read()
	return s.current
}

// Errorf builds an *Error at the current position.
func (s *Scanner) Errorf(format string, args ...interface{}) error {
	return s.ErrorAt(s.pos, format, args...)
}

func (s *Scanner) ErrorAt(pos Position, format string, args ...interface{}) error {
	return &Error{Position: pos, Filename: s.filename, Msg: fmt.Sprintf(format, args...)}
}

// Expecting checks the current rune against expected. With no arguments any
// rune other than EOF is accepted.
func (s *Scanner) Expecting(expected ...rune) error {
	if s.err != nil {
		return s.Errorf("read error: %s", s.err)
	}
	if s.current == EOF {
		for _, r := range expected {
			if r == EOF {
				return nil
			}
		}
		return s.Errorf("unexpected end of input%s", describeExpected(expected))
	}
	if len(expected) == 0 {
		return nil
	}
	for _, r := range expected {
		if r == s.current {
			return nil
		}
	}
	return s.Errorf("unexpected character %q%s", s.current, describeExpected(expected))
}

func describeExpected(expected []rune) string {
	if len(expected) == 0 {
		return ""
	}
	parts := make([]string, 0, len(expected))
	for _, r := range expected {
		if r == EOF {
			parts = append(parts, "end of input")
		} else {
			parts = append(parts, strconv.QuoteRune(r))
		}
	}
	if len(parts) == 1 {
		return ", expecting " + parts[0]
	}
	return ", expecting one of " + strings.Join(parts, ", ")
}

// SkipCommentsAndWhitespace skips any run of whitespace, // line comments and
// /* block */ comments. An unterminated block comment runs to EOF.
func (s *Scanner) SkipCommentsAndWhitespace() {
	for {
		switch {
		case s.current != EOF && unicode.IsSpace(s.current):
			s.Advance()
		case s.current == '/' && s.peek() == '/':
			s.comments++
			for s.current != EOF && s.current != '\n' {
				s.Advance()
			}
		case s.current == '/' && s.peek() == '*':
			s.comments++
			s.Advance()
			s.Advance()
			for s.current != EOF && !(s.current == '*' && s.peek() == '/') {
				s.Advance()
			}
			if s.current != EOF {
				s.Advance()
				s.Advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || r == '-' || ('0' <= r && r <= '9')
}

// ReadIdentifier reads [A-Za-z_][A-Za-z0-9_-]*.
func (s *Scanner) ReadIdentifier() (string, error) {
	if err := s.Expecting(); err != nil {
		return "", err
	}
	if !isIdentStart(s.current) {
		return "", s.Errorf("unexpected character %q, expecting identifier", s.current)
	}
	var sb strings.Builder
	for isIdentPart(s.current) {
		sb.WriteRune(s.current)
		s.Advance()
	}
	return sb.String(), nil
}

// ReadUntil captures raw text up to the next unescaped delim, which is
// consumed. escape followed by delim yields delim; escape followed by anything
// else is captured verbatim along with the following rune.
func (s *Scanner) ReadUntil(delim, escape rune) (string, error) {
	var sb strings.Builder
	for {
		switch s.current {
		case EOF:
			return "", s.Errorf("unterminated text, expecting %q", delim)
		case delim:
			s.Advance()
			return sb.String(), nil
		case escape:
			s.Advance()
			switch s.current {
			case EOF:
				return "", s.Errorf("unterminated text, expecting %q", delim)
			case delim:
			default:
				sb.WriteRune(escape)
			}
			sb.WriteRune(s.current)
			s.Advance()
		default:
			sb.WriteRune(s.current)
			s.Advance()
		}
	}
}

// ParseJSONString reads a double-quoted JSON string literal.
func (s *Scanner) ParseJSONString() (string, error) {
	if err := s.Expecting('"'); err != nil {
		return "", err
	}
	start := s.pos
	s.Advance()
	var sb strings.Builder
	for {
		switch s.current {
		case EOF:
			return "", s.ErrorAt(start, "unterminated string literal")
		case '"':
			s.Advance()
			return sb.String(), nil
		case '\\':
			s.Advance()
			r, err := s.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(s.current)
			s.Advance()
		}
	}
}

func (s *Scanner) readEscape() (rune, error) {
	c := s.current
	s.Advance()
	switch c {
	case '"', '\\', '/':
		return c, nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		r, err := s.readHex4()
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(r) && s.current == '\\' && s.peek() == 'u' {
			s.Advance()
			s.Advance()
			r2, err := s.readHex4()
			if err != nil {
				return 0, err
			}
			return utf16.DecodeRune(r, r2), nil
		}
		return r, nil
	case EOF:
		return 0, s.Errorf("unterminated string literal")
	}
	return 0, s.Errorf("invalid escape sequence \\%c", c)
}

func (s *Scanner) readHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c := s.current
		var d rune
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, s.Errorf("invalid unicode escape")
		}
		r = r<<4 | d
		s.Advance()
	}
	return r, nil
}

// ParseJSONValue reads null, true, false, an integer or a JSON string. The
// result is nil, bool, int or string respectively.
func (s *Scanner) ParseJSONValue() (interface{}, error) {
	s.SkipCommentsAndWhitespace()
	if err := s.Expecting(); err != nil {
		return nil, err
	}
	start := s.pos
	switch c := s.current; {
	case c == '"':
		return s.ParseJSONString()
	case c == '-' || ('0' <= c && c <= '9'):
		var sb strings.Builder
		sb.WriteRune(c)
		s.Advance()
		for '0' <= s.current && s.current <= '9' {
			sb.WriteRune(s.current)
			s.Advance()
		}
		switch s.current {
		case '.', 'e', 'E':
			return nil, s.Errorf("only integer values are supported")
		}
		i, err := strconv.Atoi(sb.String())
		if err != nil {
			return nil, s.ErrorAt(start, "invalid integer %q", sb.String())
		}
		return i, nil
	case 'a' <= c && c <= 'z':
		var sb strings.Builder
		for 'a' <= s.current && s.current <= 'z' {
			sb.WriteRune(s.current)
			s.Advance()
		}
		switch word := sb.String(); word {
		case "null":
			return nil, nil
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, s.ErrorAt(start, "unexpected %q, expecting true, false or null", word)
		}
	default:
		return nil, s.Errorf("unexpected character %q, expecting a value", c)
	}
}
