package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phyten/envfind/internal/engine"
	"github.com/phyten/envfind/internal/termcolor"
	"github.com/phyten/envfind/internal/textutil"
)

// maxPathWidth caps the FILE column of the terminal table.
const maxPathWidth = 60

// WriteDetail renders per-file results in format: json, yaml, table, csv or
// markdown. Only the table honors colorize.
func WriteDetail(w io.Writer, format string, res engine.DetailResult, colorize bool) error {
	switch format {
	case "", "json":
		return WriteDetailJSON(w, res)
	case "yaml":
		return WriteDetailYAML(w, res)
	case "table":
		return WriteDetailTable(w, res, colorize)
	case "csv":
		return WriteDetailCSV(w, res)
	case "markdown":
		return WriteDetailMarkdown(w, res)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteDetailJSON prints the path to names object, keys sorted.
func WriteDetailJSON(w io.Writer, res engine.DetailResult) error {
	return writeJSON(w, files(res), "  ")
}

// WriteDetailYAML prints the same mapping as YAML.
func WriteDetailYAML(w io.Writer, res engine.DetailResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(files(res)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteDetailCSV prints one path,name row per match (CRLF line endings).
func WriteDetailCSV(w io.Writer, res engine.DetailResult) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write([]string{"path", "name"}); err != nil {
		return err
	}
	for _, p := range res.Paths() {
		for _, name := range res.Files[p] {
			if err := writer.Write([]string{p, name}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDetailMarkdown prints a GitHub Flavored Markdown table.
func WriteDetailMarkdown(w io.Writer, res engine.DetailResult) error {
	if _, err := io.WriteString(w, "| path | variables |\n| --- | --- |\n"); err != nil {
		return err
	}
	for _, p := range res.Paths() {
		row := fmt.Sprintf("| %s | %s |\n", escapeMarkdownCell(p), escapeMarkdownCell(strings.Join(res.Files[p], ", ")))
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetailTable prints an aligned FILE / COUNT / VARIABLES table sized by
// display width.
func WriteDetailTable(w io.Writer, res engine.DetailResult, colorize bool) error {
	paths := res.Paths()
	headers := []string{"FILE", "COUNT", "VARIABLES"}
	pathW := textutil.VisibleWidth(headers[0])
	countW := textutil.VisibleWidth(headers[1])
	for _, p := range paths {
		pathW = max(pathW, min(textutil.VisibleWidth(p), maxPathWidth))
		countW = max(countW, len(strconv.Itoa(len(res.Files[p]))))
	}

	line := func(file, count, names string, fileStyle, nameStyle termcolor.Style) error {
		// pad before styling so escapes do not disturb alignment
		file = termcolor.Apply(fileStyle, textutil.Fit(file, pathW), colorize)
		count = textutil.PadRight(count, countW)
		names = termcolor.Apply(nameStyle, names, colorize)
		_, err := fmt.Fprintf(w, "%s  %s  %s\n", file, count, names)
		return err
	}
	if err := line(headers[0], termcolor.Apply(termcolor.HeaderStyle, headers[1], colorize), headers[2], termcolor.HeaderStyle, termcolor.HeaderStyle); err != nil {
		return err
	}
	for _, p := range paths {
		names := res.Files[p]
		if err := line(p, strconv.Itoa(len(names)), strings.Join(names, " "), termcolor.PathStyle, termcolor.NameStyle); err != nil {
			return err
		}
	}
	return nil
}

// WriteSkips lists files a directory scan could not read, one per line.
func WriteSkips(w io.Writer, skips []engine.Skip, colorize bool) error {
	for _, s := range skips {
		label := termcolor.Apply(termcolor.SkipStyle, "skipped", colorize)
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", label, s.Path, s.Reason); err != nil {
			return err
		}
	}
	return nil
}

func files(res engine.DetailResult) map[string][]string {
	if res.Files == nil {
		return map[string][]string{}
	}
	return res.Files
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", "\\|")
}
