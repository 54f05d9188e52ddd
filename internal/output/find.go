package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TemplateEntry is one variable in the JSON env template.
type TemplateEntry struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// TemplateEntries builds the JSON template entries for names, keeping their
// order. The result is never nil so it encodes as [].
func TemplateEntries(names []string) []TemplateEntry {
	entries := make([]TemplateEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, TemplateEntry{Key: n})
	}
	return entries
}

// EnvTemplate renders names as NAME= lines joined by newlines, without a
// trailing newline.
func EnvTemplate(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = n + "="
	}
	return strings.Join(lines, "\n")
}

// MarshalTemplate returns the compact JSON template for names.
func MarshalTemplate(names []string) ([]byte, error) {
	return json.Marshal(TemplateEntries(names))
}

// WriteFind renders flat results in format: list, json, env or template.
func WriteFind(w io.Writer, format string, names []string) error {
	switch format {
	case "", "list":
		return WriteList(w, names)
	case "json":
		return WriteJSONList(w, names)
	case "env":
		return writeEnvTemplate(w, names)
	case "template":
		return writeJSON(w, TemplateEntries(names), "")
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteList prints one name per line.
func WriteList(w io.Writer, names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSONList prints names as a JSON array of strings.
func WriteJSONList(w io.Writer, names []string) error {
	if names == nil {
		names = []string{}
	}
	return writeJSON(w, names, "")
}

func writeEnvTemplate(w io.Writer, names []string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := io.WriteString(w, EnvTemplate(names)+"\n")
	return err
}

func writeJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}
