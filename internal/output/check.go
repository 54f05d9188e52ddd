package output

import (
	"fmt"
	"io"

	"github.com/phyten/envfind/internal/envfile"
	"github.com/phyten/envfind/internal/termcolor"
)

// WriteCheck renders an env file comparison as text or json.
func WriteCheck(w io.Writer, format string, r envfile.Report, colorize bool) error {
	switch format {
	case "", "text":
		return writeCheckText(w, r, colorize)
	case "json":
		return writeJSON(w, r, "  ")
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeCheckText(w io.Writer, r envfile.Report, colorize bool) error {
	if _, err := fmt.Fprintf(w, "%s: %d defined, %d missing, %d unused\n", r.Path, r.Defined, len(r.Missing), len(r.Unused)); err != nil {
		return err
	}
	for _, name := range r.Missing {
		if _, err := fmt.Fprintf(w, "%s %s\n", termcolor.Apply(termcolor.MissingStyle, "missing", colorize), name); err != nil {
			return err
		}
	}
	for _, name := range r.Unused {
		if _, err := fmt.Fprintf(w, "%s  %s\n", termcolor.Apply(termcolor.SkipStyle, "unused", colorize), name); err != nil {
			return err
		}
	}
	return nil
}
