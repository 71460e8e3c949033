package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type VersionTags struct {
	Version   string
	GitCommit string
	BuildDate string
	BuildOS   string
}

var verboseMode bool

func Main(info VersionTags) {
	app := cli.NewApp()

	app.EnableBashCompletion = true

	app.Name = "ebnfc"
	app.Usage = "compile EBNF grammars into canonical context-free grammars"
	app.Version = info.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "v",
			Usage:       "verbose logging",
			EnvVar:      "EBNFC_VERBOSE",
			Destination: &verboseMode,
		},
	}
	app.Before = func(*cli.Context) error {
		if verboseMode {
			logrus.SetLevel(logrus.TraceLevel)
		}
		logrus.Debugf("ebnfc %s (%s) built %s on %s", info.Version, info.GitCommit, info.BuildDate, info.BuildOS)
		return nil
	}

	app.Commands = []cli.Command{
		checkCommand,
		fmtCommand,
		cfgCommand,
		lexCommand,
		genCommand,
		importCommand,
		dumpCommand,
	}

	err := app.Run(os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}
