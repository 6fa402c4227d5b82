package model

import (
	"sort"
	"time"
)

// Category is the distillation tier a file is assigned to.
type Category string

const (
	// CategoryKeep files are copied verbatim.
	CategoryKeep Category = "keep"
	// CategoryThin files are kept in compressed form.
	CategoryThin Category = "thin"
	// CategoryLegacy files are archived out of the tree.
	CategoryLegacy Category = "legacy"
	// CategoryExternal files are third-party code left untouched.
	CategoryExternal Category = "external"
)

// Categories lists every category in presentation order.
var Categories = []Category{CategoryKeep, CategoryThin, CategoryLegacy, CategoryExternal}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryKeep, CategoryThin, CategoryLegacy, CategoryExternal:
		return true
	}

	return false
}

// ScoreRecord is the outcome of scoring a single file.
type ScoreRecord struct {
	Path     Path     `json:"path" yaml:"path"`
	Score    float64  `json:"score" yaml:"score"`
	Category Category `json:"category" yaml:"category"`
	Reasons  []string `json:"reasons" yaml:"reasons"`
	Size     int64    `json:"size" yaml:"size"`
	Imports  int      `json:"imports" yaml:"imports"`
	IsTest   bool     `json:"is_test" yaml:"is_test"`
}

// ScoreSheet is the document written by the score phase (distill_scores.json).
type ScoreSheet struct {
	Root        Path          `json:"root" yaml:"root"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Thresholds  Thresholds    `json:"thresholds" yaml:"thresholds"`
	Scores      []ScoreRecord `json:"scores" yaml:"scores"`
}

// Thresholds are the two score cut-offs separating keep, thin and legacy.
type Thresholds struct {
	Keep float64 `json:"keep" yaml:"keep" mapstructure:"keep"`
	Thin float64 `json:"thin" yaml:"thin" mapstructure:"thin"`
}

// SortScores orders records by score descending, breaking ties by path.
func SortScores(records []ScoreRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}

		return records[i].Path < records[j].Path
	})
}

// CountByCategory tallies records per category.
func (s *ScoreSheet) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, r := range s.Scores {
		counts[r.Category]++
	}

	return counts
}
