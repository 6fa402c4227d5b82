// Package config holds the typed distill configuration.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "distill.dev/pkg/distill/internal/model"
)

// Config is the root configuration structure. It is populated by viper from
// distill.yaml, DISTILL_* environment variables and command flags.
type Config struct {
	Version   int             `mapstructure:"version" yaml:"version"`
	Root      string          `mapstructure:"root" yaml:"root"`
	Map       MapConfig       `mapstructure:"map" yaml:"map"`
	Scoring   ScoringConfig   `mapstructure:"scoring" yaml:"scoring"`
	Overrides OverridesConfig `mapstructure:"overrides" yaml:"overrides"`
	Plan      PlanConfig      `mapstructure:"plan" yaml:"plan"`
	Cut       CutConfig       `mapstructure:"cut" yaml:"cut"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
}

// MapConfig controls which files the map phase scans and how.
type MapConfig struct {
	HeadLines    int      `mapstructure:"head_lines" yaml:"head_lines"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	Exclude      []string `mapstructure:"exclude" yaml:"exclude"`
	MaxFileBytes int64    `mapstructure:"max_file_bytes" yaml:"max_file_bytes"`
	Workers      int      `mapstructure:"workers" yaml:"workers"`
}

// ScoringConfig holds anchor patterns, weights and thresholds.
type ScoringConfig struct {
	Anchors          []string      `mapstructure:"anchors" yaml:"anchors"`
	ExternalPatterns []string      `mapstructure:"external_patterns" yaml:"external_patterns"`
	Weights          WeightsConfig `mapstructure:"weights" yaml:"weights"`
	Thresholds       m.Thresholds  `mapstructure:"thresholds" yaml:"thresholds"`
}

// WeightsConfig contains the per-signal scoring weights.
type WeightsConfig struct {
	Anchor         float64 `mapstructure:"anchor" yaml:"anchor"`
	Import         float64 `mapstructure:"import" yaml:"import"`
	ImportCap      float64 `mapstructure:"import_cap" yaml:"import_cap"`
	Density        float64 `mapstructure:"density" yaml:"density"`
	DensityCap     float64 `mapstructure:"density_cap" yaml:"density_cap"`
	Class          float64 `mapstructure:"class" yaml:"class"`
	ClassCap       float64 `mapstructure:"class_cap" yaml:"class_cap"`
	SizePenalty    float64 `mapstructure:"size_penalty" yaml:"size_penalty"`
	LargeFileBytes int64   `mapstructure:"large_file_bytes" yaml:"large_file_bytes"`
	Test           float64 `mapstructure:"test" yaml:"test"`
}

// OverridesConfig pins files to categories regardless of score.
type OverridesConfig struct {
	Keep      []string `mapstructure:"keep" yaml:"keep"`
	Legacy    []string `mapstructure:"legacy" yaml:"legacy"`
	Protected []string `mapstructure:"protected" yaml:"protected"`
}

// PlanConfig tunes plan statistics and safety checks.
type PlanConfig struct {
	ThinRatio        float64 `mapstructure:"thin_ratio" yaml:"thin_ratio"`
	FanInWarning     int     `mapstructure:"fan_in_warning" yaml:"fan_in_warning"`
	MinRetainedRatio float64 `mapstructure:"min_retained_ratio" yaml:"min_retained_ratio"`
	MarkdownLimit    int     `mapstructure:"markdown_limit" yaml:"markdown_limit"`
}

// CutConfig tunes the cut phase.
type CutConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig controls where documents and the distilled tree go.
type OutputConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	ReportsDir  string `mapstructure:"reports_dir" yaml:"reports_dir"`
	ArchiveName string `mapstructure:"archive_name" yaml:"archive_name"`
	Format      string `mapstructure:"format" yaml:"format"`
}

// Validate checks invariants the phases rely on.
func (c *Config) Validate() error {
	var problems []string

	if c.Scoring.Thresholds.Keep <= c.Scoring.Thresholds.Thin {
		problems = append(problems, fmt.Sprintf("thresholds.keep (%g) must be greater than thresholds.thin (%g)",
			c.Scoring.Thresholds.Keep, c.Scoring.Thresholds.Thin))
	}

	if c.Map.HeadLines <= 0 {
		problems = append(problems, "map.head_lines must be positive")
	}

	if len(c.Map.Extensions) == 0 {
		problems = append(problems, "map.extensions must not be empty")
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		problems = append(problems, "output.dir must be set")
	}

	if strings.TrimSpace(c.Output.ReportsDir) == "" {
		problems = append(problems, "output.reports_dir must be set")
	}

	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		problems = append(problems, fmt.Sprintf("output.format %q must be %q or %q", c.Output.Format, FormatJSON, FormatYAML))
	}

	if c.Plan.ThinRatio < 0 || c.Plan.ThinRatio > 1 {
		problems = append(problems, "plan.thin_ratio must be within [0, 1]")
	}

	problems = append(problems, c.invalidPatterns()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", m.ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

func (c *Config) invalidPatterns() []string {
	var problems []string

	for key, patterns := range map[string][]string{
		"map.exclude":               c.Map.Exclude,
		"scoring.anchors":           c.Scoring.Anchors,
		"scoring.external_patterns": c.Scoring.ExternalPatterns,
		"overrides.keep":            c.Overrides.Keep,
		"overrides.legacy":          c.Overrides.Legacy,
		"overrides.protected":       c.Overrides.Protected,
	} {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				problems = append(problems, fmt.Sprintf("%s: invalid glob %q", key, p))
			}
		}
	}

	sort.Strings(problems)

	return problems
}
