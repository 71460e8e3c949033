package ebnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpressions(t *testing.T) {
	a, b, c, d, e := Ref("a"), Ref("b"), Ref("c"), Ref("d"), Ref("e")
	for _, test := range []struct {
		src      string
		expected Expr
	}{
		{`x = "lit";`, Lit("lit")},
		{`x = "a\"bé";`, Lit("a\"bé")},
		{`x = '[a-z]+';`, RE("[a-z]+")},
		{`x = 'it\'s';`, RE("it's")},
		{`x = 'a\d';`, RE(`a\d`)},
		{`x = a;`, a},
		{`x = a b c;`, NewConcat(NewConcat(a, b), c)},
		{`x = a b | c;`, NewOr(NewConcat(a, b), c)},
		{`x = a | b | c;`, NewOr(a, NewOr(b, c))},
		{`x = a (b c);`, NewConcat(a, NewConcat(b, c))},
		{`x = (a | b) c;`, NewConcat(NewOr(a, b), c)},
		{`x = [ a ] { b } ( c | d );`, Cat(Opt(a), Rep(b), Alt(c, d))},
		{`x = [ a [ b ] ];`, Opt(Cat(a, Opt(b)))},
		{`x = { a | b c } e;`, Cat(Rep(Alt(a, Cat(b, c))), e)},
		{`x = | a;`, NewOr(nil, a)},
		{`x = a | ;`, NewOr(a, nil)},
		{`x = a | | b;`, NewOr(a, NewOr(nil, b))},
		{`x = ;`, nil},
		{`x = ();`, nil},
		{`x = a () b;`, Cat(a, b)},
		{`x = [];`, Opt(nil)},
		{`x = {};`, Rep(nil)},
		{"/* c */ x /* c */ = // line\n a;", a},
		{"x=a\n\t|\n\tb;", NewOr(a, b)},
	} {
		test := test
		t.Run(test.src, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseString(test.src)
			require.NoError(t, err)
			require.Equal(t, []string{"x"}, doc.Names())
			assertExprEqual(t, test.expected, doc.Get("x").Expr)
		})
	}
}

func TestParseRedeclaration(t *testing.T) {
	t.Parallel()
	doc, err := ParseString(`a<start> = b; c = "x"; a = c;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, doc.Names())
	prod := doc.Get("a")
	assertExprEqual(t, NewOr(Ref("b"), Ref("c")), prod.Expr)
	assert.True(t, prod.IsStart())
	assert.Equal(t, Pos{Line: 1, Column: 24, Offset: 23}, prod.Position)
}

func TestParseCountsComments(t *testing.T) {
	t.Parallel()
	doc := MustParseString("// keep me\na = \"x\"; /* and me */\n")
	assert.Equal(t, 2, doc.Comments())
	assert.Equal(t, `a = "x";`+"\n", doc.String())
	assert.Zero(t, MustParseString(`a = "//";`).Comments())
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()
	doc, err := ParseString(`a<start, hidden=false, n=3, neg=-2, s="x", z=null> = b; b<> = "y";`)
	require.NoError(t, err)
	assert.Equal(t,
		Attrs{"start": true, "hidden": false, "n": 3, "neg": -2, "s": "x", "z": nil},
		doc.Get("a").Attrs)
	assert.True(t, doc.Get("a").IsStart())
	assert.False(t, doc.Get("a").IsHidden())
	assert.Empty(t, doc.Get("b").Attrs)
}

func TestParsePositions(t *testing.T) {
	t.Parallel()
	doc, err := ParseString("\n  foo = bar;")
	require.NoError(t, err)
	prod := doc.Get("foo")
	assert.Equal(t, Pos{Line: 2, Column: 3, Offset: 3}, prod.Position)
	assert.Equal(t, Pos{Line: 2, Column: 9, Offset: 9}, prod.Expr.Pos())
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`a = b`,
		`a b;`,
		`= b;`,
		`a = (b;`,
		`a = (b];`,
		`a = [b;`,
		`a = {b;`,
		`a = b);`,
		`a = "x;`,
		`a = 'x;`,
		`a = "\q";`,
		`a<start b> = c;`,
		`a<x=maybe> = b;`,
		`a<x=1.5> = b;`,
		`a<x=> = b;`,
		`a = b; 9`,
		`a = b /* never closed`,
	} {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseString(src)
			assert.Nil(t, doc)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "%T: %v", err, err)
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	t.Parallel()
	nest := func(n int) string {
		return "a = " + strings.Repeat("(", n) + "b" + strings.Repeat(")", n) + ";"
	}
	doc, err := ParseString(nest(MaxDepth / 2))
	require.NoError(t, err)
	assertExprEqual(t, Ref("b"), doc.Get("a").Expr)

	_, err = ParseString(nest(MaxDepth + 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested deeper")
}

func TestParseManyAlternatives(t *testing.T) {
	t.Parallel()
	alts := make([]string, 5*MaxDepth)
	for i := range alts {
		alts[i] = `"x"`
	}
	_, err := ParseString("a = " + strings.Join(alts, " | ") + ";")
	assert.NoError(t, err)
}

func TestParseRoundTrip(t *testing.T) {
	src := `
		expr<start> = term { ("+" | "-") term };
		term = factor [ "*" term ];
		factor = number | "(" expr ")" | 'it\'s';
		factor = "q" "r" | ;
		number<hidden, base=10, label="num\n", none=null, skip=false> = '[0-9]+';
		nested = a (b c) (d | e) | f;
		a = ; b = ""; c = "\t"; d = [ ]; e = { }; f = ();
	`
	doc, err := ParseString(src)
	require.NoError(t, err)
	text := doc.String()
	doc2, err := ParseString(text)
	require.NoError(t, err, text)
	assert.True(t, doc.Equal(doc2), "\n%s\n%s", text, doc2)
	assert.Equal(t, text, doc2.String())
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ParseFile("testdata/does-not-exist.ebnf")
	assert.Error(t, err)
}

func TestMustParseStringPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParseString("a = (") })
}
