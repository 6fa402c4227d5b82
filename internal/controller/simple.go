package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "distill.dev/pkg/distill/internal/model"
)

// SimpleUI implements UI by printing tables to the command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayMap prints a summary of the mapped files.
func (s *SimpleUI) DisplayMap(ctx context.Context, fileMap *m.FileMap, saved m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	byLanguage := map[m.Language]int{}
	for _, f := range fileMap.Files {
		byLanguage[f.Language]++
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Language", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, lang := range []m.Language{m.LangPython, m.LangGo, m.LangJavaScript, m.LangShell, m.LangConfig, m.LangText} {
		if n := byLanguage[lang]; n > 0 {
			table.Append([]string{string(lang), fmt.Sprintf("%d", n)})
		}
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(fileMap.Files))})
	table.Render()

	s.printf("Mapped %d files (%s) under %s\n\n%s", len(fileMap.Files), m.FormatBytes(fileMap.TotalSize()), fileMap.Root, tableBuffer.String())

	for _, skipped := range fileMap.Skipped {
		s.printf("skipped %s: %s\n", skipped.Path, skipped.Reason)
	}

	s.printSaved(saved)

	return nil
}

// DisplayScores prints per-category counts of the score sheet.
func (s *SimpleUI) DisplayScores(ctx context.Context, sheet *m.ScoreSheet, saved m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	counts := sheet.CountByCategory()

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Category", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, cat := range m.Categories {
		table.Append([]string{string(cat), fmt.Sprintf("%d", counts[cat])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(sheet.Scores))})
	table.Render()

	s.printf("Scored %d files (keep >= %g, thin >= %g)\n\n%s",
		len(sheet.Scores), sheet.Thresholds.Keep, sheet.Thresholds.Thin, tableBuffer.String())
	s.printSaved(saved)

	return nil
}

// DisplayPlan prints the plan summary and its warnings.
func (s *SimpleUI) DisplayPlan(ctx context.Context, plan *m.Plan, saved ...m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanSummary(plan))
	s.printf("Estimated retained: %s (%.1f%%)\n", m.FormatBytes(plan.Stats.RetainedBytes), plan.Stats.RetainedRatio*100)

	for _, w := range plan.Warnings {
		s.printf("warning: %s\n", w)
	}

	for _, p := range saved {
		s.printSaved(p)
	}

	return nil
}

// DisplayResult prints cut counts, per-file errors and dry-run diffs.
func (s *SimpleUI) DisplayResult(ctx context.Context, result *m.Result, previews []m.ThinPreview) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, p := range previews {
		s.printf("%s\n", p.Diff)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Copied", "Compressed", "Archived", "Skipped", "Errored", "Bytes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.Append([]string{
		fmt.Sprintf("%d", result.Copied),
		fmt.Sprintf("%d", result.Compressed),
		fmt.Sprintf("%d", result.Archived),
		fmt.Sprintf("%d", result.Skipped),
		fmt.Sprintf("%d", result.Errored),
		m.FormatBytes(result.BytesWritten),
	})
	table.Render()

	mode := "applied"
	if result.DryRun {
		mode = "dry run, nothing written"
	}

	s.printf("\nCut %s (%s) -> %s\n\n%s", result.RunID, mode, result.OutputDir, tableBuffer.String())

	for _, fe := range result.Errors {
		s.printf("error: %s (%s): %s\n", fe.Path, fe.Action, fe.Error)
	}

	if result.DryRun {
		s.printf("Re-run with --apply to write the distilled tree.\n")
	}

	return nil
}

// ViewPlan prints every plan entry, grouped by category.
func (s *SimpleUI) ViewPlan(ctx context.Context, plan *m.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanSummary(plan))

	for _, cat := range m.Categories {
		entries := plan.Entries[cat]
		if len(entries) == 0 {
			continue
		}

		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Path", "Score", "Size", "Action"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER})

		for _, e := range entries {
			table.Append([]string{string(e.Path), fmt.Sprintf("%.2f", e.Score), m.FormatBytes(e.Size), string(e.Action)})
		}

		table.Render()
		s.printf("\n%s (%d)\n%s", cat, len(entries), tableBuffer.String())
	}

	for _, w := range plan.Warnings {
		s.printf("warning: %s\n", w)
	}

	return nil
}

func renderPlanSummary(plan *m.Plan) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Category", "Action", "Files", "Bytes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, cat := range m.Categories {
		stats := plan.Stats.ByCategory[cat]
		table.Append([]string{string(cat), string(m.ActionFor(cat)), fmt.Sprintf("%d", stats.Files), m.FormatBytes(stats.Bytes)})
	}

	table.SetFooter([]string{"Total", "", fmt.Sprintf("%d", plan.Stats.TotalFiles), m.FormatBytes(plan.Stats.TotalBytes)})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printSaved(path m.Path) {
	if path != "" {
		s.printf("Wrote %s\n", path)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
