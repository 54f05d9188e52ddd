package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phyten/envfind/internal/dump"
	"github.com/phyten/envfind/internal/engine"
	"github.com/phyten/envfind/internal/output"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		outDir string
		which  string
	)
	cmd := &cobra.Command{
		Use:   "dump [PATH]",
		Short: "Write .env.example and .env.example.json for the names read under PATH",
		Long: `dump scans PATH like find and writes the env templates into --out, which
must be an existing directory. It defaults to the configured out_dir, then to
PATH itself for a directory or its parent for a file, then to the working
directory for --text input. Existing templates are replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := dump.ParseWhich(which)
			if err != nil {
				return err
			}
			s, err := a.scanner(args)
			if err != nil {
				return err
			}
			ctx, cancel := a.scanContext(cmd)
			defer cancel()
			names, err := s.FindMatches(ctx)
			if err != nil {
				return err
			}
			if err := output.WriteSkips(a.stderr, s.Skipped(), a.colorErr); err != nil {
				return err
			}
			dir := outDir
			if !cmd.Flags().Changed("out") {
				dir = defaultOutDir(a.report.OutDir, s.Target())
			}
			_, err = dump.Dump(ctx, names, dir, kind, a.log)
			return err
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory receiving the templates")
	cmd.Flags().StringVar(&which, "template", "all", "all|env|json")
	return cmd
}

func defaultOutDir(configured string, target engine.Target) string {
	if configured != "" {
		return configured
	}
	switch target.Kind {
	case engine.KindDirectory:
		return target.Value
	case engine.KindFile:
		return filepath.Dir(target.Value)
	default:
		return "."
	}
}
