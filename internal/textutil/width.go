// Package textutil measures and fits text by terminal display width.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI and OSC escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal columns s occupies once escape
// sequences are removed. Wide graphemes count as two.
func VisibleWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// TruncateByWidth cuts s to at most w columns without splitting a grapheme.
// When s is cut and ellipsis fits, ellipsis replaces the tail. Escape
// sequences are dropped from truncated output.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if w <= 0 || s == "" {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	limit := w
	ellW := runewidth.StringWidth(ellipsis)
	if ellipsis != "" && ellW <= w {
		limit = w - ellW
	} else {
		ellipsis = ""
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		segW := runewidth.StringWidth(g.Str())
		if used+segW > limit {
			break
		}
		b.WriteString(g.Str())
		used += segW
	}
	return b.String() + ellipsis
}

// PadRight appends spaces until s is w columns wide.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// Fit truncates s to w columns with an ellipsis and pads it back to w.
func Fit(s string, w int) string {
	return PadRight(TruncateByWidth(s, w, "…"), w)
}
