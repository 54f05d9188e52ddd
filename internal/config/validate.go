package config

import (
	"fmt"
	"strings"

	"github.com/phyten/envfind/internal/logging"
	"github.com/phyten/envfind/internal/pattern"
	"github.com/phyten/envfind/internal/termcolor"
)

const maxTimeoutSeconds = 24 * 60 * 60

func CanonicalizeFlavor(raw string) (string, error) {
	flavor := strings.ToLower(strings.TrimSpace(raw))
	if flavor == "" {
		return "env", nil
	}
	if _, err := pattern.Lookup(flavor); err != nil {
		return "", fmt.Errorf("invalid flavor: %s", raw)
	}
	return flavor, nil
}

func CanonicalizeColor(raw string) (string, error) {
	mode, err := termcolor.ParseMode(raw)
	if err != nil {
		return "", fmt.Errorf("invalid color: %s", raw)
	}
	return mode.String(), nil
}

func CanonicalizeLogLevel(raw string) (string, error) {
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(level.String()), nil
}

func ValidateTimeout(seconds int) error {
	if seconds < 0 || seconds > maxTimeoutSeconds {
		return fmt.Errorf("timeout_seconds must be between 0 and %d", maxTimeoutSeconds)
	}
	return nil
}

func NormalizeScan(values ScanSettings) (ScanSettings, error) {
	var err error
	values.Flavor, err = CanonicalizeFlavor(values.Flavor)
	if err != nil {
		return values, err
	}
	if err := ValidateTimeout(values.TimeoutSeconds); err != nil {
		return values, err
	}
	if _, err := pattern.EnvVars.With(values.ExtraPatterns...); err != nil {
		return values, err
	}
	return values, nil
}

func NormalizeReport(values ReportSettings) (ReportSettings, error) {
	var err error
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.LogLevel, err = CanonicalizeLogLevel(values.LogLevel)
	if err != nil {
		return values, err
	}
	return values, nil
}
