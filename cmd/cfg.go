package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

var cfgFormat string
var cfgCommand = cli.Command{
	Name:   "cfg",
	Usage:  "Print the canonical context-free rules of a grammar",
	Action: printCfg,
	Flags: []cli.Flag{
		grammarFlag,
		cli.StringFlag{
			Name:        "format",
			Usage:       "output format: text or yaml",
			Value:       "text",
			Destination: &cfgFormat,
		},
	},
}

func printCfg(c *cli.Context) error {
	doc, err := loadPrepared(inGrammarFile)
	if err != nil {
		return err
	}
	g := doc.ToCfg()
	switch cfgFormat {
	case "text":
		fmt.Print(g)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", cfgFormat)
	}
	return nil
}
