package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/envfind/internal/engine/opts"
)

var scanKeyMap = map[string]string{
	"flavor":          "flavor",
	"extensions":      "extensions",
	"ext":             "extensions",
	"exts":            "extensions",
	"marker":          "marker",
	"package_marker":  "marker",
	"package_only":    "package_only",
	"strict":          "strict",
	"extra_patterns":  "extra_patterns",
	"patterns":        "extra_patterns",
	"exclude":         "exclude",
	"excludes":        "exclude",
	"exclude_typical": "exclude_typical",
	"timeout_seconds": "timeout_seconds",
	"timeout":         "timeout_seconds",
}

var reportKeyMap = map[string]string{
	"output":    "output",
	"color":     "color",
	"log_level": "log_level",
	"log_file":  "log_file",
	"out_dir":   "out_dir",
	"env_file":  "env_file",
}

// Load reads a config file. The format follows the file extension; an empty
// path yields an empty Config.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	scanSection := make(map[string]any)
	reportSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "scan":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("scan: %w", err)
			}
			if err := fillSection(scanSection, sub, scanKeyMap, "scan"); err != nil {
				return cfg, err
			}
		case "report":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("report: %w", err)
			}
			if err := fillSection(reportSection, sub, reportKeyMap, "report"); err != nil {
				return cfg, err
			}
		default:
			if canonical, ok := scanKeyMap[norm]; ok {
				scanSection[canonical] = value
				continue
			}
			if canonical, ok := reportKeyMap[norm]; ok {
				reportSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignScan(scanSection, &cfg.Scan); err != nil {
		return cfg, fmt.Errorf("scan: %w", err)
	}
	if err := assignReport(reportSection, &cfg.Report); err != nil {
		return cfg, fmt.Errorf("report: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	for key, value := range section {
		switch key {
		case "flavor", "marker":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			if key == "flavor" {
				dst.Flavor = &trimmed
			} else {
				dst.Marker = &trimmed
			}
		case "extensions":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Extensions = &list
		case "extra_patterns":
			// a bare string is one pattern; commas are legal regexp syntax
			if str, ok := value.(string); ok {
				list := normalizeList([]string{str})
				dst.ExtraPatterns = &list
				continue
			}
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.ExtraPatterns = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "package_only", "strict", "exclude_typical":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "package_only":
				dst.PackageOnly = &b
			case "strict":
				dst.Strict = &b
			default:
				dst.ExcludeTypical = &b
			}
		case "timeout_seconds":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			if err := ValidateTimeout(n); err != nil {
				return err
			}
			dst.TimeoutSeconds = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignReport(section map[string]any, dst *ReportConfig) error {
	for key, value := range section {
		str, err := expectString(value, key)
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(str)
		switch key {
		case "output":
			dst.Output = &trimmed
		case "color":
			dst.Color = &trimmed
		case "log_level":
			dst.LogLevel = &trimmed
		case "log_file":
			dst.LogFile = &trimmed
		case "out_dir":
			dst.OutDir = &trimmed
		case "env_file":
			dst.EnvFile = &trimmed
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return normalizeList(engineopts.SplitMulti([]string{v})), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
