package config

import m "distill.dev/pkg/distill/internal/model"

// Document formats supported by the report store.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// CurrentVersion is the configuration schema version written by `distill init`.
const CurrentVersion = 1

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Root:    ".",
		Map: MapConfig{
			HeadLines: 50,
			Extensions: []string{
				".py", ".go", ".js", ".ts", ".jsx", ".tsx", ".sh",
				".yaml", ".yml", ".toml", ".md",
			},
			ExcludeDirs: []string{
				".git", "__pycache__", ".venv", "venv", "node_modules",
				".mypy_cache", ".pytest_cache", ".idea", ".vscode",
			},
			Exclude:      []string{},
			MaxFileBytes: 2 << 20,
			Workers:      0,
		},
		Scoring: ScoringConfig{
			Anchors: []string{
				"main.py", "**/main.go", "**/__init__.py", "**/config.*", "README.md",
			},
			ExternalPatterns: []string{
				"vendor/**", "third_party/**", "external/**", "**/site-packages/**",
			},
			Weights: WeightsConfig{
				Anchor:         50,
				Import:         2,
				ImportCap:      20,
				Density:        3,
				DensityCap:     15,
				Class:          1,
				ClassCap:       5,
				SizePenalty:    10,
				LargeFileBytes: 100 << 10,
				Test:           5,
			},
			Thresholds: m.Thresholds{Keep: 30, Thin: 10},
		},
		Overrides: OverridesConfig{
			Keep:      []string{},
			Legacy:    []string{},
			Protected: []string{},
		},
		Plan: PlanConfig{
			ThinRatio:        0.6,
			FanInWarning:     8,
			MinRetainedRatio: 0.2,
			MarkdownLimit:    50,
		},
		Cut: CutConfig{Workers: 0},
		Output: OutputConfig{
			Dir:         "distilled",
			ReportsDir:  ".distill-reports",
			ArchiveName: "legacy.tar.zst",
			Format:      FormatJSON,
		},
	}
}
