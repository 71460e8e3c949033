package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/ebnf"
)

var fmtDiff bool
var fmtWrite bool
var fmtCommand = cli.Command{
	Name:      "fmt",
	Aliases:   []string{"f"},
	Usage:     "Print a grammar in canonical layout",
	ArgsUsage: "[file]",
	Action:    formatGrammar,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "d",
			Usage:       "print a unified diff instead of the formatted grammar",
			Destination: &fmtDiff,
		},
		cli.BoolFlag{
			Name:        "w",
			Usage:       "write the result back to the file",
			Destination: &fmtWrite,
		},
	},
}

func formatGrammar(c *cli.Context) error {
	path := c.Args().First()
	src, err := readSource(path)
	if err != nil {
		return err
	}
	doc, err := ebnf.Parse(strings.NewReader(src), displayName(path))
	if err != nil {
		return err
	}
	out := doc.String()

	switch {
	case fmtDiff:
		diff, err := formatDiff(displayName(path), src, out)
		if err != nil {
			return err
		}
		fmt.Print(diff)
	case fmtWrite && !isStdin(path):
		return rewriteGrammar(path, src, doc)
	default:
		fmt.Print(out)
	}
	return nil
}

// rewriteGrammar replaces the file at path with the canonical layout of doc.
// Canonical layout has no comments, so a source that has any is left alone.
func rewriteGrammar(path, src string, doc *ebnf.Document) error {
	if n := doc.Comments(); n > 0 {
		return fmt.Errorf("%s: not rewritten, formatting would drop %d comment(s)", path, n)
	}
	out := doc.String()
	if src == out {
		return nil
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func formatDiff(name, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  2,
	})
}
