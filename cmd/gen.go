package cmd

import (
	"bytes"
	"go/format"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/cmd/codegen"
)

var pkgName string
var outFile string
var genCommand = cli.Command{
	Name:    "gen",
	Aliases: []string{"g"},
	Usage:   "Generate Go symbol, terminal and rule tables for a grammar",
	Action:  gen,
	Flags: []cli.Flag{
		grammarFlag,
		cli.StringFlag{
			Name:        "pkg",
			Usage:       "name of the generated package",
			Required:    true,
			Destination: &pkgName,
		},
		cli.StringFlag{
			Name:        "output",
			Usage:       "filename to write the output to",
			TakesFile:   true,
			Destination: &outFile,
		},
	},
}

func gen(c *cli.Context) error {
	doc, err := loadPrepared(inGrammarFile)
	if err != nil {
		return err
	}

	tmpldata := codegen.MakeTemplateData(doc, pkgName, strings.Join(os.Args[1:], " "))
	var buf bytes.Buffer
	if err := codegen.Write(&buf, tmpldata); err != nil {
		return err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return err
	}

	switch outFile {
	case "", "-":
		_, err = os.Stdout.Write(out)
		return err
	default:
		return os.WriteFile(outFile, out, 0o644)
	}
}
