package cmd

import (
	"fmt"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/arr-ai/ebnfc/ebnf"
)

var checkJobs int
var strictMode bool
var checkCommand = cli.Command{
	Name:      "check",
	Aliases:   []string{"c"},
	Usage:     "Validate grammar files",
	ArgsUsage: "<file or glob>...",
	Action:    check,
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:        "jobs, j",
			Usage:       "number of grammars to check concurrently",
			Value:       runtime.NumCPU(),
			Destination: &checkJobs,
		},
		cli.BoolFlag{
			Name:        "strict",
			Usage:       "treat warnings as errors",
			Destination: &strictMode,
		},
	},
}

type checkResult struct {
	path  string
	diags ebnf.Diagnostics
	err   error
}

func (r checkResult) failed(strict bool) bool {
	if r.err != nil || r.diags.HasErrors() {
		return true
	}
	return strict && len(r.diags.Filter(ebnf.Warning)) > 0
}

// expandPaths resolves doublestar globs. An argument matching nothing is
// kept as is so that the failure to open it gets reported.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !doublestar.ValidatePattern(arg) {
			return nil, fmt.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			matches = []string{arg}
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func checkFile(path string) checkResult {
	doc, err := loadGrammar(path)
	if err != nil {
		return checkResult{path: path, err: err}
	}
	diags, _ := doc.Prepare(false)
	return checkResult{path: path, diags: diags}
}

func check(c *cli.Context) error {
	args := []string(c.Args())
	if len(args) == 0 {
		args = []string{"-"}
	}
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	jobs := checkJobs
	if jobs < 1 {
		jobs = 1
	}
	results := make([]checkResult, len(paths))
	var grp errgroup.Group
	grp.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			logrus.Debugf("checking %s", path)
			results[i] = checkFile(path)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("%s\n", r.err)
		}
		for _, d := range r.diags {
			if d.Severity != ebnf.Message || verboseMode {
				fmt.Printf("%s:%s\n", displayName(r.path), d)
			}
		}
		if r.failed(strictMode) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d grammar(s) failed", failed, len(paths))
	}
	logrus.Infof("%d grammar(s) ok", len(paths))
	return nil
}
