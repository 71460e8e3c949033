package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/ebnf"
)

var dumpPrepared bool
var dumpCommand = cli.Command{
	Name:   "dump",
	Usage:  "Dump the syntax tree of each production",
	Action: dump,
	Flags: []cli.Flag{
		grammarFlag,
		cli.BoolFlag{
			Name:        "prepare",
			Usage:       "validate and declare implicit terminals first",
			Destination: &dumpPrepared,
		},
	},
}

func dump(c *cli.Context) error {
	load := loadGrammar
	if dumpPrepared {
		load = loadPrepared
	}
	doc, err := load(inGrammarFile)
	if err != nil {
		return err
	}
	doc.Each(func(name string, prod *ebnf.Production) {
		fmt.Printf("%s = %s\n", name, repr.String(prod, repr.Indent("  "), repr.OmitEmpty(true)))
	})
	return nil
}
