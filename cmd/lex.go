package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/ebnf"
)

var inFile string
var lexCommand = cli.Command{
	Name:    "lex",
	Aliases: []string{"l"},
	Usage:   "Tokenize input with the terminals of a grammar",
	Action:  lex,
	Flags: []cli.Flag{
		grammarFlag,
		cli.StringFlag{
			Name:        "input",
			Usage:       "input text file, - for stdin",
			Required:    true,
			TakesFile:   true,
			Destination: &inFile,
		},
	},
}

// lex prints one token per line. Hidden terminals are matched but not
// printed.
func lex(c *cli.Context) error {
	if isStdin(inGrammarFile) && isStdin(inFile) {
		return fmt.Errorf("grammar and input cannot both come from stdin")
	}
	doc, err := loadPrepared(inGrammarFile)
	if err != nil {
		return err
	}
	table := ebnf.NewSymbolTable(doc, doc.ToCfg())
	lexer, err := doc.ToLexer(table, nil)
	if err != nil {
		return err
	}

	var skip []int
	doc.Each(func(name string, prod *ebnf.Production) {
		if prod.IsTerminal() && prod.IsHidden() {
			id, _ := table.SymbolID(name)
			skip = append(skip, id)
		}
	})

	input, err := readSource(inFile)
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(input, skip...)
	for _, tok := range tokens {
		fmt.Printf("%d\t%s\t%q\n", tok.Offset, table.Name(tok.Symbol), tok.Value)
	}
	return err
}
