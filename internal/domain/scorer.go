package domain

import (
	"fmt"
	"math"
	"time"

	"distill.dev/pkg/distill/internal/config"
	m "distill.dev/pkg/distill/internal/model"
)

// Reason tags attached to score records.
const (
	ReasonLargeFile       = "large_file"
	ReasonTestFile        = "test_file"
	ReasonProtected       = "protected"
	ReasonOverrideKeep    = "override:keep"
	ReasonOverrideLegacy  = "override:legacy"
	reasonAnchorPrefix    = "anchor:"
	reasonExternalPrefix  = "external:"
	reasonImportsFormat   = "imports:%d"
	reasonDensityFormat   = "density:%.2f"
	reasonClassesFormat   = "classes:%d"
	bytesPerKiB           = 1024.0
	scoreDecimalPrecision = 100.0
)

// Scorer assigns scores and categories to file records. It holds compiled
// matchers only and has no side effects, so Score is deterministic.
type Scorer struct {
	weights    config.WeightsConfig
	thresholds m.Thresholds
	anchors    *Matcher
	external   *Matcher
	keep       *Matcher
	legacy     *Matcher
	protected  *Matcher
}

// NewScorer compiles the scoring and override patterns.
func NewScorer(scoring config.ScoringConfig, overrides config.OverridesConfig) (*Scorer, error) {
	s := &Scorer{weights: scoring.Weights, thresholds: scoring.Thresholds}

	for _, target := range []struct {
		key      string
		patterns []string
		dst      **Matcher
	}{
		{"scoring.anchors", scoring.Anchors, &s.anchors},
		{"scoring.external_patterns", scoring.ExternalPatterns, &s.external},
		{"overrides.keep", overrides.Keep, &s.keep},
		{"overrides.legacy", overrides.Legacy, &s.legacy},
		{"overrides.protected", overrides.Protected, &s.protected},
	} {
		matcher, err := NewMatcher(target.patterns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target.key, err)
		}

		*target.dst = matcher
	}

	return s, nil
}

// Score evaluates a single file record.
func (s *Scorer) Score(rec m.FileRecord) m.ScoreRecord {
	out := m.ScoreRecord{
		Path:    rec.Path,
		Size:    rec.Size,
		Imports: len(rec.Imports),
		IsTest:  rec.IsTest,
		Reasons: []string{},
	}

	if pattern, ok := s.external.FirstMatch(rec.Path); ok {
		out.Category = m.CategoryExternal
		out.Reasons = append(out.Reasons, reasonExternalPrefix+pattern)

		return out
	}

	var score float64

	if pattern, ok := s.anchors.FirstMatch(rec.Path); ok {
		score += s.weights.Anchor
		out.Reasons = append(out.Reasons, reasonAnchorPrefix+pattern)
	}

	if n := len(rec.Imports); n > 0 {
		score += math.Min(float64(n)*s.weights.Import, s.weights.ImportCap)
		out.Reasons = append(out.Reasons, fmt.Sprintf(reasonImportsFormat, n))
	}

	if density := functionDensity(rec); density > 0 {
		score += math.Min(density*s.weights.Density, s.weights.DensityCap)
		out.Reasons = append(out.Reasons, fmt.Sprintf(reasonDensityFormat, density))
	}

	if rec.ClassCount > 0 {
		score += math.Min(float64(rec.ClassCount)*s.weights.Class, s.weights.ClassCap)
		out.Reasons = append(out.Reasons, fmt.Sprintf(reasonClassesFormat, rec.ClassCount))
	}

	if s.weights.LargeFileBytes > 0 && rec.Size > s.weights.LargeFileBytes {
		score -= s.weights.SizePenalty
		out.Reasons = append(out.Reasons, ReasonLargeFile)
	}

	if rec.IsTest {
		score += s.weights.Test
		out.Reasons = append(out.Reasons, ReasonTestFile)
	}

	out.Score = math.Round(score*scoreDecimalPrecision) / scoreDecimalPrecision
	out.Category = Bucket(out.Score, s.thresholds)

	switch {
	case s.keep.Match(rec.Path):
		out.Category = m.CategoryKeep
		out.Reasons = append(out.Reasons, ReasonOverrideKeep)
	case s.legacy.Match(rec.Path):
		out.Category = m.CategoryLegacy
		out.Reasons = append(out.Reasons, ReasonOverrideLegacy)
	case out.Category == m.CategoryLegacy && s.protected.Match(rec.Path):
		out.Category = m.CategoryThin
		out.Reasons = append(out.Reasons, ReasonProtected)
	}

	return out
}

// ScoreAll scores every record of the file map into a sorted score sheet.
func (s *Scorer) ScoreAll(fileMap *m.FileMap) *m.ScoreSheet {
	sheet := &m.ScoreSheet{
		Root:        fileMap.Root,
		GeneratedAt: time.Now().UTC(),
		Thresholds:  s.thresholds,
		Scores:      make([]m.ScoreRecord, 0, len(fileMap.Files)),
	}

	for _, rec := range fileMap.Files {
		sheet.Scores = append(sheet.Scores, s.Score(rec))
	}

	m.SortScores(sheet.Scores)

	return sheet
}

// Bucket maps a score onto keep, thin or legacy using the two thresholds.
func Bucket(score float64, t m.Thresholds) m.Category {
	switch {
	case score >= t.Keep:
		return m.CategoryKeep
	case score >= t.Thin:
		return m.CategoryThin
	default:
		return m.CategoryLegacy
	}
}

// functionDensity is functions per KiB; zero-size files have density 0.
func functionDensity(rec m.FileRecord) float64 {
	if rec.Size <= 0 || rec.FunctionCount == 0 {
		return 0
	}

	return float64(rec.FunctionCount) / (float64(rec.Size) / bytesPerKiB)
}
