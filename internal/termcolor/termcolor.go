// Package termcolor decides whether output is colored and wraps text in SGR
// sequences when it is.
package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

// DetectMode resolves auto. First match wins:
//  1. TERM=dumb or a non-empty NO_COLOR disables colors.
//  2. CLICOLOR=0 disables colors.
//  3. A non-zero CLICOLOR_FORCE or FORCE_COLOR enables them.
//  4. Otherwise colors follow whether f is a terminal.
func DetectMode(f *os.File, env map[string]string) ColorMode {
	if f == nil {
		return ModeNever
	}
	if strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb") {
		return ModeNever
	}
	if strings.TrimSpace(env["NO_COLOR"]) != "" {
		return ModeNever
	}
	if strings.TrimSpace(env["CLICOLOR"]) == "0" {
		return ModeNever
	}
	if forced(env["CLICOLOR_FORCE"]) || forced(env["FORCE_COLOR"]) {
		return ModeAlways
	}
	if isTerminal(f) {
		return ModeAlways
	}
	return ModeNever
}

// Enabled reports whether text written to f is colored under mode.
func Enabled(mode ColorMode, f *os.File, env map[string]string) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return DetectMode(f, env) == ModeAlways
	}
}

// Style is a small set of SGR attributes. FG is a basic 8-color index; nil
// keeps the terminal default.
type Style struct {
	Bold      bool
	Underline bool
	FG        *int
}

var (
	HeaderStyle  = Style{Bold: true, Underline: true}
	PathStyle    = Style{FG: colorIndex(6)}
	NameStyle    = Style{FG: colorIndex(2)}
	SkipStyle    = Style{FG: colorIndex(3)}
	MissingStyle = Style{Bold: true, FG: colorIndex(1)}
)

// Apply wraps text in the escape sequence for s. Disabled styling and empty
// text are returned unchanged.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := make([]string, 0, 3)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.FG != nil {
		codes = append(codes, fmt.Sprintf("3%d", *s.FG))
	}
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func colorIndex(n int) *int { return &n }

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forced(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
