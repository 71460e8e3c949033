package ebnf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arr-ai/ebnfc/fa"
)

type rejectingCompiler struct{}

func (rejectingCompiler) Literal(string, int) (*fa.Automaton, error) {
	return nil, errors.New("rejected")
}

func (rejectingCompiler) Pattern(string, int) (*fa.Automaton, error) {
	return nil, errors.New("rejected")
}

func TestValidateUndefinedSymbol(t *testing.T) {
	t.Parallel()
	doc := MustParseString(`a = b;`)
	diags, err := doc.Validate(false)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Error, diags[0].Severity)
	assert.Equal(t, CodeUndefinedSymbol, diags[0].Code)
	assert.Contains(t, diags[0].Message, `"b"`)
	assert.Equal(t, Pos{Line: 1, Column: 5, Offset: 4}, diags[0].Pos)
	assert.True(t, diags.HasErrors())
}

func TestValidatePositionAfterInvalidUTF8(t *testing.T) {
	t.Parallel()
	doc := MustParseString("a = \"\xff\"; b = c;")
	diags, err := doc.Validate(false)
	require.NoError(t, err)
	var undefined []Diagnostic
	for _, d := range diags {
		if d.Code == CodeUndefinedSymbol {
			undefined = append(undefined, d)
		}
	}
	require.Len(t, undefined, 1)
	assert.Equal(t, Pos{Line: 1, Column: 14, Offset: 13}, undefined[0].Pos)
}

func TestValidateUnreferencedProduction(t *testing.T) {
	t.Parallel()
	doc := MustParseString(`a = "x"; b = "y";`)
	diags, err := doc.Validate(true)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, CodeUnreferencedProduction, diags[0].Code)
	assert.Contains(t, diags[0].Message, `"b"`)
	assert.Equal(t, Pos{Line: 1, Column: 10, Offset: 9}, diags[0].Pos)
	assert.False(t, diags.HasErrors())
}

func TestValidateDiagnostics(t *testing.T) {
	type expected struct {
		severity Severity
		code     int
	}
	for _, test := range []struct {
		name  string
		src   string
		diags []expected
	}{
		{"clean", `a = b c; b = "x"; c = '[0-9]';`, nil},
		{"hidden", `a = b; b<hidden> = "x"; c<hidden> = "y";`, nil},
		{"start", `a = "x"; b<start> = a;`, nil},
		{"inline terminal counts", `a = b "x"; b = "y"; c = "x";`, nil},
		{"self reference counts", `a = "x" a | ;`, nil},
		{"invalid regex", `a = '[';`, []expected{{Error, CodeInvalidRegex}}},
		{"invalid inline regex", `a = b '(' ; b = "x";`, []expected{{Error, CodeInvalidRegex}}},
		{"empty optional", `a = [];`, []expected{{Warning, CodeNilExpression}}},
		{"empty repeat", `a = { };`, []expected{{Warning, CodeNilExpression}}},
		{"empty or", `a = | ;`, []expected{{Warning, CodeNilExpression}}},
		{"half empty or", `a = b | ; b = "x";`, nil},
		{"undefined and unreferenced", `a = "x"; b = c;`, []expected{
			{Error, CodeUndefinedSymbol},
			{Warning, CodeUnreferencedProduction},
		}},
		{"every error is reported", `a = x y; b = a;`, []expected{
			{Error, CodeUndefinedSymbol},
			{Error, CodeUndefinedSymbol},
			{Warning, CodeUnreferencedProduction},
		}},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			diags, err := MustParseString(test.src).Validate(false)
			require.NoError(t, err)
			actual := make([]expected, 0, len(diags))
			for _, d := range diags {
				actual = append(actual, expected{d.Severity, d.Code})
			}
			if test.diags == nil {
				test.diags = []expected{}
			}
			assert.Equal(t, test.diags, actual, "%v", diags)
		})
	}
}

func TestValidateNullReference(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	require.NoError(t, doc.Add("a", NewProduction(Cat(Lit("x"), Ref("")))))
	diags, err := doc.Validate(false)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Error, diags[0].Severity)
	assert.Equal(t, CodeNullReference, diags[0].Code)
}

func TestValidateThrows(t *testing.T) {
	t.Parallel()
	doc := MustParseString(`a = b;`)
	diags, err := doc.Validate(true)
	require.Error(t, err)
	var diagErr *DiagnosticsError
	require.True(t, errors.As(err, &diagErr))
	assert.Equal(t, diags, diagErr.Diagnostics)
	assert.Contains(t, err.Error(), "grammar has 1 error(s)")
	assert.Contains(t, err.Error(), `1:5: error[1]: Reference to undefined symbol "b"`)
}

func TestValidateWithCompiler(t *testing.T) {
	t.Parallel()
	doc := MustParseString(`a = b 'x' | "y"; b = 'z';`)
	diags, err := doc.ValidateWith(rejectingCompiler{}, false)
	require.NoError(t, err)
	assert.Len(t, diags.Filter(Error), 2)
	for _, d := range diags {
		assert.Equal(t, CodeInvalidRegex, d.Code)
	}
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()
	d := newDiagnostic(Warning, CodeNilExpression, Pos{Line: 3, Column: 4}, "Nil expression")
	assert.Equal(t, "3:4: warning[3]: Nil expression", d.String())
	assert.Equal(t, "message", Message.String())
	assert.Equal(t, "severity(7)", Severity(7).String())
	assert.Nil(t, Diagnostics{d}.Err())
}
