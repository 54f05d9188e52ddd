package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/envfind/internal/pattern"
)

// errMissing is returned by check --fail-on-missing when code reads a
// variable the env file does not define.
var errMissing = errors.New("variables missing from env file")

func exitCode(err error) int {
	if errors.Is(err, errMissing) {
		return 3
	}
	return 1
}

func execute(args []string) error {
	a := newApp(os.Stdout, os.Stderr, os.Getenv)
	defer a.close()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "envfind",
		Short: "Find the environment variables a Python code base reads",
		Long: `envfind scans Python sources for os.getenv / os.environ.get calls and
reports the variable names they read.

Settings are layered: built-in defaults, then the config file
(.envfind.yaml/.yml/.toml/.json found upwards from the working directory,
$XDG_CONFIG_HOME/envfind/config.* or ~/.envfind.*, or ENVFIND_CONFIG),
then ENVFIND_* environment variables, then flags.

Exit Codes:
  0  - Success (unreadable files are listed on stderr but do not fail a scan)
  1  - Error
  3  - check --fail-on-missing found missing variables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file path (overrides discovery)")
	pf.StringVar(&a.flags.flavor, "flavor", "", "pattern flavor: "+strings.Join(pattern.Flavors(), "|"))
	pf.StringSliceVar(&a.flags.exts, "ext", nil, "source extensions (repeatable or comma separated)")
	pf.StringVar(&a.flags.marker, "marker", "", "package marker file name")
	pf.BoolVar(&a.flags.packageOnly, "package-only", true, "descend only into directories holding the marker")
	pf.BoolVar(&a.flags.strict, "strict", true, "reject arguments that are neither a directory nor a source file")
	pf.StringArrayVar(&a.flags.patterns, "pattern", nil, "extra regular expression; group 1 is the name (repeatable)")
	pf.StringSliceVar(&a.flags.excludes, "exclude", nil, "glob of paths to skip (repeatable or comma separated)")
	pf.BoolVar(&a.flags.excludeTypical, "exclude-typical", false, "skip VCS, virtualenv, cache and build directories")
	pf.StringVar(&a.flags.color, "color", "", "auto|always|never")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug|info|warn|error")
	pf.StringVar(&a.flags.logFile, "log-file", "", "also write logs to this rotating file")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "abort the scan after N seconds (0 = no limit)")
	pf.BoolVar(&a.flags.text, "text", false, "treat the argument as source text instead of a path")

	root.AddCommand(
		newFindCmd(a),
		newDetailCmd(a),
		newDumpCmd(a),
		newCheckCmd(a),
	)
	return root
}

// scanContext applies the configured timeout to the command context.
func (a *app) scanContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.scan.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, secondsToDuration(a.scan.TimeoutSeconds))
	}
	return context.WithCancel(ctx)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
