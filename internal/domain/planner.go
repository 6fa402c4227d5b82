package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"distill.dev/pkg/distill/internal/config"
	m "distill.dev/pkg/distill/internal/model"
)

// Planner turns a score sheet into an actionable plan.
type Planner struct {
	cfg       config.PlanConfig
	anchors   *Matcher
	outputDir string
}

// NewPlanner builds a Planner from the plan, anchor and output settings of cfg.
func NewPlanner(cfg *config.Config) (*Planner, error) {
	anchors, err := NewMatcher(cfg.Scoring.Anchors)
	if err != nil {
		return nil, fmt.Errorf("scoring.anchors: %w", err)
	}

	return &Planner{cfg: cfg.Plan, anchors: anchors, outputDir: cfg.Output.Dir}, nil
}

// Plan groups scored files by category, computes size statistics and runs
// the safety checks. Warnings never fail planning.
func (p *Planner) Plan(sheet *m.ScoreSheet) *m.Plan {
	plan := &m.Plan{
		Root:        sheet.Root,
		GeneratedAt: time.Now().UTC(),
		OutputDir:   m.Path(p.outputDir),
		Entries:     make(map[m.Category][]m.PlanEntry, len(m.Categories)),
		Stats: m.SizeStats{
			ByCategory: make(map[m.Category]m.CategoryStats, len(m.Categories)),
		},
		Warnings: []string{},
	}

	scores := make([]m.ScoreRecord, len(sheet.Scores))
	copy(scores, sheet.Scores)
	m.SortScores(scores)

	for _, rec := range scores {
		plan.Entries[rec.Category] = append(plan.Entries[rec.Category], m.PlanEntry{
			Path:   rec.Path,
			Score:  rec.Score,
			Size:   rec.Size,
			Action: m.ActionFor(rec.Category),
		})

		stats := plan.Stats.ByCategory[rec.Category]
		stats.Files++
		stats.Bytes += rec.Size
		plan.Stats.ByCategory[rec.Category] = stats

		plan.Stats.TotalFiles++
		plan.Stats.TotalBytes += rec.Size
	}

	p.computeRetained(&plan.Stats)
	plan.Warnings = p.safetyChecks(plan, scores)

	return plan
}

func (p *Planner) computeRetained(stats *m.SizeStats) {
	keep := stats.ByCategory[m.CategoryKeep].Bytes
	thin := stats.ByCategory[m.CategoryThin].Bytes

	stats.RetainedBytes = keep + int64(float64(thin)*p.cfg.ThinRatio)
	stats.ArchivedBytes = stats.ByCategory[m.CategoryLegacy].Bytes
	stats.UntouchedBytes = stats.ByCategory[m.CategoryExternal].Bytes

	if considered := stats.TotalBytes - stats.UntouchedBytes; considered > 0 {
		stats.RetainedRatio = float64(stats.RetainedBytes) / float64(considered)
	}
}

func (p *Planner) safetyChecks(plan *m.Plan, scores []m.ScoreRecord) []string {
	warnings := []string{}

	for _, pattern := range p.anchors.Patterns() {
		single := &Matcher{patterns: []string{pattern}}
		matched := false

		for _, rec := range scores {
			if single.Match(rec.Path) {
				matched = true
				break
			}
		}

		if !matched {
			warnings = append(warnings, fmt.Sprintf("anchor pattern %q matched no file", pattern))
		}
	}

	if len(plan.Entries[m.CategoryKeep]) == 0 {
		warnings = append(warnings, "keep tier is empty: nothing would be copied verbatim")
	}

	for _, rec := range scores {
		if rec.Category != m.CategoryLegacy {
			continue
		}

		if p.cfg.FanInWarning > 0 && rec.Imports >= p.cfg.FanInWarning {
			warnings = append(warnings, fmt.Sprintf("legacy file %s has %d imports and may be load-bearing", rec.Path, rec.Imports))
		}

		if rec.IsTest {
			warnings = append(warnings, fmt.Sprintf("legacy file %s is a test file", rec.Path))
		}
	}

	nonExternal := plan.Stats.TotalFiles - plan.Stats.ByCategory[m.CategoryExternal].Files
	if nonExternal > 0 && plan.Stats.RetainedRatio < p.cfg.MinRetainedRatio {
		warnings = append(warnings, fmt.Sprintf("retained ratio %.2f is below the minimum %.2f",
			plan.Stats.RetainedRatio, p.cfg.MinRetainedRatio))
	}

	if w := p.outputInsideRoot(plan.Root, scores); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

// outputInsideRoot warns when files under the output directory were scanned,
// which happens when a previous distilled tree was mapped as source.
func (p *Planner) outputInsideRoot(root m.Path, scores []m.ScoreRecord) string {
	if p.outputDir == "" {
		return ""
	}

	rootAbs, err := filepath.Abs(string(root))
	if err != nil {
		return ""
	}

	outAbs, err := filepath.Abs(p.outputDir)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(rootAbs, outAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}

	if rel == "." {
		return fmt.Sprintf("output directory %s is the scanned root", p.outputDir)
	}

	prefix := filepath.ToSlash(rel) + "/"
	for _, rec := range scores {
		if strings.HasPrefix(string(rec.Path), prefix) {
			return fmt.Sprintf("output directory %s lies inside the scanned root and was not excluded (e.g. %s)", p.outputDir, rec.Path)
		}
	}

	return ""
}

// RenderPlanMarkdown renders DISTILL_PLAN.md. Category lists are truncated
// after limit entries when limit is positive.
func RenderPlanMarkdown(plan *m.Plan, limit int) string {
	var sb strings.Builder

	sb.WriteString("# Distill Plan\n\n")
	fmt.Fprintf(&sb, "**Root:** `%s`\n", plan.Root)
	fmt.Fprintf(&sb, "**Output:** `%s`\n", plan.OutputDir)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", plan.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Category | Action | Files | Bytes |\n")
	sb.WriteString("|----------|--------|-------|-------|\n")

	for _, cat := range m.Categories {
		stats := plan.Stats.ByCategory[cat]
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", cat, m.ActionFor(cat), stats.Files, m.FormatBytes(stats.Bytes))
	}

	fmt.Fprintf(&sb, "| **total** | | %d | %s |\n\n", plan.Stats.TotalFiles, m.FormatBytes(plan.Stats.TotalBytes))

	fmt.Fprintf(&sb, "- **Estimated retained:** %s (%.1f%%)\n", m.FormatBytes(plan.Stats.RetainedBytes), plan.Stats.RetainedRatio*100)
	fmt.Fprintf(&sb, "- **Archived:** %s\n", m.FormatBytes(plan.Stats.ArchivedBytes))
	fmt.Fprintf(&sb, "- **Untouched (external):** %s\n\n", m.FormatBytes(plan.Stats.UntouchedBytes))

	if len(plan.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")

		for _, w := range plan.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}

		sb.WriteString("\n")
	}

	for _, cat := range m.Categories {
		entries := plan.Entries[cat]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s (%d files)\n\n", cat, len(entries))
		sb.WriteString("| Path | Score | Size |\n")
		sb.WriteString("|------|-------|------|\n")

		shown := entries
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}

		for _, e := range shown {
			fmt.Fprintf(&sb, "| `%s` | %.2f | %s |\n", e.Path, e.Score, m.FormatBytes(e.Size))
		}

		if len(shown) < len(entries) {
			fmt.Fprintf(&sb, "\n_... and %d more_\n", len(entries)-len(shown))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
