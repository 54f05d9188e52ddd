package main

import (
	"github.com/spf13/cobra"

	"github.com/phyten/envfind/internal/engine"
	engineopts "github.com/phyten/envfind/internal/engine/opts"
	"github.com/phyten/envfind/internal/output"
)

func newDetailCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "detail [DIR]",
		Short: "Show the variable names read by each file under DIR (default .)",
		Long: `detail walks DIR like find but keeps each file's names apart. Files are
keyed by their path relative to DIR; files without matches are omitted.

Output formats: json, yaml, table, csv and markdown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(cmd, format, engineopts.NormalizeDetailOutput)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if target, err := engine.Classify(dir, a.opts); err != nil || target.Kind != engine.KindDirectory {
				a.log.Warn("%s is not a directory; nothing to detail", dir)
			}
			ctx, cancel := a.scanContext(cmd)
			defer cancel()
			res, err := engine.Detail(ctx, a.set, dir, a.opts)
			if err != nil {
				return err
			}
			if err := output.WriteDetail(a.stdout, f, res, a.colorOut); err != nil {
				return err
			}
			a.log.Debug("%d files with variables under %s", len(res.Files), dir)
			return output.WriteSkips(a.stderr, res.Skipped, a.colorErr)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "", "json|yaml|table|csv|markdown")
	return cmd
}
