package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/ebnfc/ebnf"
)

var inGrammarFile string

var grammarFlag = cli.StringFlag{
	Name:        "grammar",
	Usage:       "input grammar file, - for stdin",
	TakesFile:   true,
	Destination: &inGrammarFile,
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

// readSource reads a file, or stdin for "" and "-".
func readSource(path string) (string, error) {
	switch {
	case isStdin(path):
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	default:
		buf, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	}
}

func displayName(path string) string {
	if isStdin(path) {
		return "<stdin>"
	}
	return path
}

func loadGrammar(path string) (*ebnf.Document, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return ebnf.Parse(strings.NewReader(src), displayName(path))
}

// loadPrepared parses and prepares a grammar, logging its diagnostics. Only
// error diagnostics fail the load.
func loadPrepared(path string) (*ebnf.Document, error) {
	doc, err := loadGrammar(path)
	if err != nil {
		return nil, err
	}
	diags, err := doc.Prepare(true)
	for _, d := range diags {
		switch d.Severity {
		case ebnf.Warning:
			logrus.Warnf("%s:%s", displayName(path), d)
		case ebnf.Message:
			logrus.Debugf("%s:%s", displayName(path), d)
		}
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
