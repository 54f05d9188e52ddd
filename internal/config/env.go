package config

import (
	"errors"
	"strings"

	engineopts "github.com/phyten/envfind/internal/engine/opts"
)

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Scan.Flavor, "ENVFIND_FLAVOR")
	setList(&cfg.Scan.Extensions, "ENVFIND_EXTENSIONS")
	setString(&cfg.Scan.Marker, "ENVFIND_MARKER")
	setBool(&cfg.Scan.PackageOnly, "ENVFIND_PACKAGE_ONLY")
	setBool(&cfg.Scan.Strict, "ENVFIND_STRICT")
	// patterns may contain commas, so the list is newline separated
	if raw := strings.TrimSpace(getenv("ENVFIND_EXTRA_PATTERNS")); raw != "" {
		var pats []string
		for _, line := range strings.Split(raw, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				pats = append(pats, trimmed)
			}
		}
		cfg.Scan.ExtraPatterns = &pats
	}
	setList(&cfg.Scan.Excludes, "ENVFIND_EXCLUDE")
	setBool(&cfg.Scan.ExcludeTypical, "ENVFIND_EXCLUDE_TYPICAL")
	setInt(&cfg.Scan.TimeoutSeconds, "ENVFIND_TIMEOUT_SECONDS", 0, maxTimeoutSeconds)

	setString(&cfg.Report.Output, "ENVFIND_OUTPUT")
	setString(&cfg.Report.Color, "ENVFIND_COLOR")
	setString(&cfg.Report.LogLevel, "ENVFIND_LOG_LEVEL")
	setString(&cfg.Report.LogFile, "ENVFIND_LOG_FILE")
	setString(&cfg.Report.OutDir, "ENVFIND_OUT_DIR")
	setString(&cfg.Report.EnvFile, "ENVFIND_ENV_FILE")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
