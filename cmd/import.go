package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/ebnf"
)

var importCommand = cli.Command{
	Name:      "import",
	Usage:     "Convert a Go-style EBNF grammar (golang.org/x/exp/ebnf) to this notation",
	ArgsUsage: "[file]",
	Action:    importGrammar,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "output",
			Usage:       "filename to write the output to",
			TakesFile:   true,
			Destination: &outFile,
		},
	},
}

func importGrammar(c *cli.Context) error {
	path := c.Args().First()
	src, err := readSource(path)
	if err != nil {
		return err
	}
	doc, err := ebnf.FromGoEBNF(displayName(path), strings.NewReader(src))
	if err != nil {
		return err
	}
	if start := doc.StartProduction(); start != "" {
		if err := doc.SetStartProduction(start); err != nil {
			return err
		}
	}

	if isStdin(outFile) {
		fmt.Print(doc)
		return nil
	}
	return os.WriteFile(outFile, []byte(doc.String()), 0o644)
}
