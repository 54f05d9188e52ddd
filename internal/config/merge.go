package config

import "strings"

func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Flavor = ResolveAndTrim(out.Flavor, layer.Flavor)
		out.Extensions = ResolveStrings(out.Extensions, layer.Extensions)
		out.Marker = ResolveAndTrim(out.Marker, layer.Marker)
		out.PackageOnly = ResolveBool(out.PackageOnly, layer.PackageOnly)
		out.Strict = ResolveBool(out.Strict, layer.Strict)
		out.ExtraPatterns = ResolveStrings(out.ExtraPatterns, layer.ExtraPatterns)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.ExcludeTypical = ResolveBool(out.ExcludeTypical, layer.ExcludeTypical)
		out.TimeoutSeconds = ResolveInt(out.TimeoutSeconds, layer.TimeoutSeconds)
	}
	if strings.TrimSpace(out.Flavor) == "" {
		out.Flavor = "env"
	}
	return out
}

func MergeReport(base ReportSettings, layers ...ReportConfig) ReportSettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.LogLevel = ResolveAndTrim(out.LogLevel, layer.LogLevel)
		out.LogFile = ResolveAndTrim(out.LogFile, layer.LogFile)
		out.OutDir = ResolveAndTrim(out.OutDir, layer.OutDir)
		out.EnvFile = ResolveAndTrim(out.EnvFile, layer.EnvFile)
	}
	if out.Color == "" {
		out.Color = "auto"
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	return out
}
