package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phyten/envfind/internal/envfile"
	"github.com/phyten/envfind/internal/output"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		envFile       string
		format        string
		failOnMissing bool
	)
	cmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Compare the names read under PATH with an existing .env file",
		Long: `check scans PATH like find and compares the result with the env file
(--env-file, the configured env_file, or .env). It lists the names code reads
that the file does not define and the names the file defines that code never
reads.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid --output: %s (want one of text|json)", format)
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
			path := envFile
			if !cmd.Flags().Changed("env-file") {
				path = a.report.EnvFile
			}
			report, err := envfile.Check(names, path)
			if err != nil {
				return err
			}
			if err := output.WriteCheck(a.stdout, format, report, a.colorOut); err != nil {
				return err
			}
			if failOnMissing && !report.OK() {
				return fmt.Errorf("%w: %d", errMissing, len(report.Missing))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "env file to compare against")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "text|json")
	cmd.Flags().BoolVar(&failOnMissing, "fail-on-missing", false, "exit with status 3 when names are missing")
	return cmd
}
