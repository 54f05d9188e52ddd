package config

import (
	"github.com/phyten/envfind/internal/engine"
)

type ScanConfig struct {
	Flavor         *string   `yaml:"flavor" toml:"flavor" json:"flavor"`
	Extensions     *[]string `yaml:"extensions" toml:"extensions" json:"extensions"`
	Marker         *string   `yaml:"marker" toml:"marker" json:"marker"`
	PackageOnly    *bool     `yaml:"package_only" toml:"package_only" json:"package_only"`
	Strict         *bool     `yaml:"strict" toml:"strict" json:"strict"`
	ExtraPatterns  *[]string `yaml:"extra_patterns" toml:"extra_patterns" json:"extra_patterns"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	TimeoutSeconds *int      `yaml:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds"`
}

type ReportConfig struct {
	Output   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	LogLevel *string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFile  *string `yaml:"log_file" toml:"log_file" json:"log_file"`
	OutDir   *string `yaml:"out_dir" toml:"out_dir" json:"out_dir"`
	EnvFile  *string `yaml:"env_file" toml:"env_file" json:"env_file"`
}

type Config struct {
	Scan   ScanConfig   `yaml:"scan" toml:"scan" json:"scan"`
	Report ReportConfig `yaml:"report" toml:"report" json:"report"`
}

type ScanSettings struct {
	Flavor         string
	Extensions     []string
	Marker         string
	PackageOnly    bool
	Strict         bool
	ExtraPatterns  []string
	Excludes       []string
	ExcludeTypical bool
	TimeoutSeconds int
}

type ReportSettings struct {
	Output   string
	Color    string
	LogLevel string
	LogFile  string
	OutDir   string
	EnvFile  string
}

func ScanSettingsFromOptions(opts engine.Options) ScanSettings {
	return ScanSettings{
		Flavor:         "env",
		Extensions:     cloneStrings(opts.Extensions),
		Marker:         opts.Marker,
		PackageOnly:    opts.PackageOnly,
		Strict:         !opts.Permissive,
		ExtraPatterns:  nil,
		Excludes:       cloneStrings(opts.Excludes),
		ExcludeTypical: opts.ExcludeTypical,
		TimeoutSeconds: 0,
	}
}

func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Extensions = cloneStrings(s.Extensions)
	opts.Marker = s.Marker
	opts.PackageOnly = s.PackageOnly
	opts.Permissive = !s.Strict
	opts.Excludes = cloneStrings(s.Excludes)
	opts.ExcludeTypical = s.ExcludeTypical
}

func DefaultReportSettings() ReportSettings {
	return ReportSettings{
		Output:   "",
		Color:    "auto",
		LogLevel: "info",
		LogFile:  "",
		OutDir:   "",
		EnvFile:  ".env",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
