package main

import (
	"github.com/spf13/cobra"

	engineopts "github.com/phyten/envfind/internal/engine/opts"
	"github.com/phyten/envfind/internal/output"
)

func newFindCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "find [PATH]",
		Short: "List the variable names read under PATH (default .)",
		Long: `find scans a directory, a single source file, or with --text a piece of
source text, and prints the sorted, deduplicated variable names.

Output formats: list (one name per line), json (array of names),
env (NAME= lines) and template (the .env.example.json entries).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(cmd, format, engineopts.NormalizeFindOutput)
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
			if err := output.WriteFind(a.stdout, f, names); err != nil {
				return err
			}
			a.log.Debug("%d %s names found in %s", len(names), s.Patterns().Name(), s.Target().Kind)
			return output.WriteSkips(a.stderr, s.Skipped(), a.colorErr)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "", "list|json|env|template")
	return cmd
}
