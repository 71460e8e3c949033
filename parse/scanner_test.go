package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerLineColumn(t *testing.T) {
	scanner := NewScanner("one\ntwo\nthree\nfour")

	// test the scanner starts at position 1,1
	assertLineColumn(t, scanner, 1, 1)

	// advance within the same line
	scanner.Advance()
	assertLineColumn(t, scanner, 1, 2)

	// advance past the newline
	for i := 0; i < 3; i++ {
		scanner.Advance()
	}
	assertLineColumn(t, scanner, 2, 1)
	assert.Equal(t, 't', scanner.Current())
	assert.Equal(t, int64(4), scanner.Offset())

	// advance over multiple lines and into a column
	for i := 0; i < 12; i++ {
		scanner.Advance()
	}
	assertLineColumn(t, scanner, 4, 3)
	assert.Equal(t, 'u', scanner.Current())
}

func TestScannerOffsetCountsInputBytes(t *testing.T) {
	scanner := NewScanner("\u00e9\xffx /\xffy")
	assert.Equal(t, int64(0), scanner.Offset())
	scanner.Advance()
	assert.Equal(t, int64(2), scanner.Offset())
	assert.Equal(t, '\uFFFD', scanner.Current())
	scanner.Advance()
	assert.Equal(t, int64(3), scanner.Offset())
	assert.Equal(t, 'x', scanner.Current())

	// the byte after '/' is read ahead while looking for a comment
	scanner.Advance()
	scanner.SkipCommentsAndWhitespace()
	assert.Equal(t, '/', scanner.Current())
	assert.Equal(t, int64(5), scanner.Offset())
	scanner.Advance()
	assert.Equal(t, '\uFFFD', scanner.Current())
	assert.Equal(t, int64(6), scanner.Offset())
	scanner.Advance()
	assert.Equal(t, 'y', scanner.Current())
	assert.Equal(t, int64(7), scanner.Offset())
	assertLineColumn(t, scanner, 1, 8)
}

func TestScannerAdvancePastEOF(t *testing.T) {
	scanner := NewScanner("a")
	assert.Equal(t, EOF, scanner.Advance())
	assert.Equal(t, EOF, scanner.Advance())
	assertLineColumn(t, scanner, 1, 2)
}

func TestSkipCommentsAndWhitespace(t *testing.T) {
	for _, test := range []struct {
		name, src string
		expected  rune
		comments  int
	}{
		{"spaces", "  \t\n x", 'x', 0},
		{"line comment", "// hello\nx", 'x', 1},
		{"block comment", "/* a\n * b */x", 'x', 1},
		{"mixed", " /* a */ // b\n\t/**/ x", 'x', 3},
		{"lone slash", "/x", '/', 0},
		{"unterminated block", "/* never", EOF, 1},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			scanner := NewScanner(test.src)
			scanner.SkipCommentsAndWhitespace()
			assert.Equal(t, test.expected, scanner.Current())
			assert.Equal(t, test.comments, scanner.Comments())
		})
	}
}

func TestExpecting(t *testing.T) {
	scanner := NewScanner("=")
	assert.NoError(t, scanner.Expecting('=', ';'))
	assert.NoError(t, scanner.Expecting())
	err := scanner.Expecting(';')
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected character '='`)
	assert.Contains(t, err.Error(), `';'`)

	scanner.Advance()
	err = scanner.Expecting()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of input")
	assert.NoError(t, scanner.Expecting(EOF))
}

func TestErrorIncludesFilename(t *testing.T) {
	scanner := NewScannerWithFilename("\n  x", "g.ebnf")
	scanner.SkipCommentsAndWhitespace()
	err := scanner.Expecting('y')
	require.Error(t, err)
	assert.Equal(t, `g.ebnf:2:3: unexpected character 'x', expecting 'y'`, err.Error())
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 3}, perr.Position)
}

func TestReadIdentifier(t *testing.T) {
	scanner := NewScanner("foo_bar-9 baz")
	id, err := scanner.ReadIdentifier()
	require.NoError(t, err)
	assert.Equal(t, "foo_bar-9", id)
	assert.Equal(t, ' ', scanner.Current())

	_, err = NewScanner("9abc").ReadIdentifier()
	assert.Error(t, err)
	_, err = NewScanner("").ReadIdentifier()
	assert.Error(t, err)
}

func TestReadUntil(t *testing.T) {
	for _, test := range []struct {
		name, src, expected string
	}{
		{"plain", `abc' rest`, `abc`},
		{"escaped quote", `a\'b'`, `a'b`},
		{"other escapes kept", `\d+\.\d'`, `\d+\.\d`},
		{"escaped backslash", `a\\'`, `a\\`},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			scanner := NewScanner(test.src)
			s, err := scanner.ReadUntil('\'', '\\')
			require.NoError(t, err)
			assert.Equal(t, test.expected, s)
		})
	}
	_, err := NewScanner(`abc`).ReadUntil('\'', '\\')
	assert.Error(t, err)
}

func TestParseJSONString(t *testing.T) {
	for _, test := range []struct {
		name, src, expected string
	}{
		{"plain", `"abc"`, "abc"},
		{"escapes", `"a\"b\\c\/\n\t"`, "a\"b\\c/\n\t"},
		{"unicode escape", `"\u00e9"`, "\u00e9"},
		{"surrogate pair", `"\ud83d\ude00"`, "\U0001F600"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			s, err := NewScanner(test.src).ParseJSONString()
			require.NoError(t, err)
			assert.Equal(t, test.expected, s)
		})
	}

	for _, src := range []string{`"abc`, `"\q"`, `"\u12"`, `abc`} {
		_, err := NewScanner(src).ParseJSONString()
		assert.Error(t, err, src)
	}
}

func TestParseJSONValue(t *testing.T) {
	for _, test := range []struct {
		src      string
		expected interface{}
	}{
		{"null", nil},
		{"true", true},
		{"false", false},
		{"42", 42},
		{"-7", -7},
		{` "x"`, "x"},
	} {
		v, err := NewScanner(test.src).ParseJSONValue()
		require.NoError(t, err, test.src)
		assert.Equal(t, test.expected, v, test.src)
	}

	for _, src := range []string{"nope", "1.5", "[", ""} {
		_, err := NewScanner(src).ParseJSONValue()
		assert.Error(t, err, src)
	}
}

func assertLineColumn(t *testing.T, scanner *Scanner, line, column int) {
	assert.Equal(t, line, scanner.Line())
	assert.Equal(t, column, scanner.Column())
}
