package codegen

import (
	"fmt"
	"strings"

	"github.com/arr-ai/frozen"
	"github.com/iancoleman/strcase"
)

// GoName converts a grammar symbol to an exported Go identifier.
func GoName(symbol string) string {
	return strcase.ToCamel(DropCaps(symbol))
}

// DropCaps lowers every capital that follows another capital, so that ID
// becomes Id rather than I_D.
func DropCaps(symbol string) string {
	isCaps := func(r uint8) bool { return r >= 'A' && r <= 'Z' }
	out := make([]string, 0, len(symbol))
	for i := 0; i < len(symbol); i++ {
		out = append(out, string(symbol[i]))
		if isCaps(symbol[i]) {
			for i+1 < len(symbol) && isCaps(symbol[i+1]) {
				i++
				out = append(out, strings.ToLower(string(symbol[i])))
			}
		}
	}

	return strings.Join(out, "")
}

// ConstNames gives every symbol a distinct constant name. Symbols that
// camel-case to the same name get a numeric suffix in order of appearance.
func ConstNames(symbols []string) map[string]string {
	taken := frozen.NewSet[string]()
	names := make(map[string]string, len(symbols))
	for _, s := range symbols {
		base := "Symbol" + GoName(s)
		name := base
		for i := 2; taken.Has(name); i++ {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		taken = taken.With(name)
		names[s] = name
	}
	return names
}
