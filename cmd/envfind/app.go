package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/envfind/internal/config"
	"github.com/phyten/envfind/internal/engine"
	engineopts "github.com/phyten/envfind/internal/engine/opts"
	"github.com/phyten/envfind/internal/logging"
	"github.com/phyten/envfind/internal/pattern"
	"github.com/phyten/envfind/internal/termcolor"
)

type rootFlags struct {
	config         string
	flavor         string
	exts           []string
	marker         string
	packageOnly    bool
	strict         bool
	patterns       []string
	excludes       []string
	excludeTypical bool
	color          string
	logLevel       string
	logFile        string
	timeout        int
	text           bool
}

// app carries the streams and the settings resolved for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	flags rootFlags

	scan     config.ScanSettings
	report   config.ReportSettings
	opts     engine.Options
	set      *pattern.Set
	log      logging.Logger
	colorOut bool
	colorErr bool
	closers  []io.Closer
}

func newApp(stdout, stderr io.Writer, getenv func(string) string) *app {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &app{
		stdout: writerOrDiscard(stdout),
		stderr: writerOrDiscard(stderr),
		getenv: getenv,
		log:    logging.NullLogger{},
	}
}

// setup resolves defaults < config file < environment < flags and builds
// the logger, the pattern set and the engine options.
func (a *app) setup(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	explicit := a.flags.config
	if explicit == "" {
		explicit = a.getenv("ENVFIND_CONFIG")
	}
	path, source, err := config.Find(cwd, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	flagCfg := a.flagLayer(cmd)

	scan := config.MergeScan(config.ScanSettingsFromOptions(engineopts.Defaults()), fileCfg.Scan, envCfg.Scan, flagCfg.Scan)
	if a.scan, err = config.NormalizeScan(scan); err != nil {
		return err
	}
	report := config.MergeReport(config.DefaultReportSettings(), fileCfg.Report, envCfg.Report, flagCfg.Report)
	if a.report, err = config.NormalizeReport(report); err != nil {
		return err
	}

	opts := engineopts.Defaults()
	a.scan.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return err
	}

	base, err := pattern.Lookup(a.scan.Flavor)
	if err != nil {
		return err
	}
	a.set = base
	if len(a.scan.ExtraPatterns) > 0 {
		if a.set, err = base.With(a.scan.ExtraPatterns...); err != nil {
			return err
		}
	}

	if err := a.setupLogging(); err != nil {
		return err
	}
	opts.Logger = a.log
	a.opts = opts
	if path != "" {
		a.log.Debug("config loaded from %s (%s)", path, source)
	}
	a.log.Debug("flavor %s with %d rules, extensions %s", a.set.Name(), len(a.set.Rules()), strings.Join(opts.Extensions, ","))
	return nil
}

func (a *app) setupLogging() error {
	mode, err := termcolor.ParseMode(a.report.Color)
	if err != nil {
		return err
	}
	env := colorEnv(a.getenv)
	a.colorOut = termcolor.Enabled(mode, asFile(a.stdout), env)
	a.colorErr = termcolor.Enabled(mode, asFile(a.stderr), env)

	level, err := logging.ParseLevel(a.report.LogLevel)
	if err != nil {
		return err
	}
	console := logging.NewConsoleLogger(a.stderr, level, a.colorErr)
	if a.report.LogFile == "" {
		a.log = console
		return nil
	}
	sink, err := logging.OpenFileSink(logging.DefaultFileSinkConfig(a.report.LogFile))
	if err != nil {
		return err
	}
	a.closers = append(a.closers, sink)
	a.log = logging.Tee(console, logging.NewConsoleLogger(sink, logging.LevelDebug, false))
	return nil
}

// flagLayer turns the flags the user set into a config layer. Untouched
// flags leave lower layers alone.
func (a *app) flagLayer(cmd *cobra.Command) config.Config {
	var cfg config.Config
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("flavor") {
		cfg.Scan.Flavor = &a.flags.flavor
	}
	if changed("ext") {
		cfg.Scan.Extensions = &a.flags.exts
	}
	if changed("marker") {
		cfg.Scan.Marker = &a.flags.marker
	}
	if changed("package-only") {
		cfg.Scan.PackageOnly = &a.flags.packageOnly
	}
	if changed("strict") {
		cfg.Scan.Strict = &a.flags.strict
	}
	if changed("pattern") {
		cfg.Scan.ExtraPatterns = &a.flags.patterns
	}
	if changed("exclude") {
		cfg.Scan.Excludes = &a.flags.excludes
	}
	if changed("exclude-typical") {
		cfg.Scan.ExcludeTypical = &a.flags.excludeTypical
	}
	if changed("timeout") {
		cfg.Scan.TimeoutSeconds = &a.flags.timeout
	}
	if changed("color") {
		cfg.Report.Color = &a.flags.color
	}
	if changed("log-level") {
		cfg.Report.LogLevel = &a.flags.logLevel
	}
	if changed("log-file") {
		cfg.Report.LogFile = &a.flags.logFile
	}
	return cfg
}

// outputFormat picks the command's format: the --output flag when set,
// otherwise the configured output if this command supports it, otherwise
// the command default.
func (a *app) outputFormat(cmd *cobra.Command, flagValue string, normalize func(string) (string, error)) (string, error) {
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		return normalize(flagValue)
	}
	if a.report.Output != "" {
		if format, err := normalize(a.report.Output); err == nil {
			return format, nil
		}
		a.log.Debug("configured output %q does not apply to %s", a.report.Output, cmd.Name())
	}
	return normalize("")
}

// scanner binds a scanner to the command argument, "." when absent.
func (a *app) scanner(args []string) (*engine.Scanner, error) {
	arg := "."
	if len(args) > 0 {
		arg = args[0]
	}
	if a.flags.text {
		return engine.NewTextScanner(arg, a.set), nil
	}
	return engine.NewScanner(arg, a.set, a.opts)
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

// colorEnv collects the variables termcolor consults.
func colorEnv(getenv func(string) string) map[string]string {
	env := make(map[string]string)
	for _, key := range []string{"TERM", "NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE", "FORCE_COLOR"} {
		if v := getenv(key); v != "" {
			env[key] = v
		}
	}
	return env
}

func secondsToDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
