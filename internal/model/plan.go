package model

import (
	"fmt"
	"time"
)

// Action is what the cut phase does with a planned file.
type Action string

const (
	// ActionCopy copies the file verbatim into the output tree.
	ActionCopy Action = "copy"
	// ActionCompress writes a thinned version of the file into the output tree.
	ActionCompress Action = "compress"
	// ActionArchive moves the file into the legacy archive.
	ActionArchive Action = "archive"
	// ActionSkip leaves the file alone.
	ActionSkip Action = "skip"
)

// ActionFor maps a category onto the action the cut phase performs.
func ActionFor(c Category) Action {
	switch c {
	case CategoryKeep:
		return ActionCopy
	case CategoryThin:
		return ActionCompress
	case CategoryLegacy:
		return ActionArchive
	default:
		return ActionSkip
	}
}

// PlanEntry is one file scheduled for an action.
type PlanEntry struct {
	Path   Path    `json:"path" yaml:"path"`
	Score  float64 `json:"score" yaml:"score"`
	Size   int64   `json:"size" yaml:"size"`
	Action Action  `json:"action" yaml:"action"`
}

// CategoryStats aggregates file count and bytes for one category.
type CategoryStats struct {
	Files int   `json:"files" yaml:"files"`
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

// SizeStats aggregates the plan's size figures.
type SizeStats struct {
	TotalFiles     int                        `json:"total_files" yaml:"total_files"`
	TotalBytes     int64                      `json:"total_bytes" yaml:"total_bytes"`
	ByCategory     map[Category]CategoryStats `json:"by_category" yaml:"by_category"`
	RetainedBytes  int64                      `json:"retained_bytes" yaml:"retained_bytes"`
	RetainedRatio  float64                    `json:"retained_ratio" yaml:"retained_ratio"`
	ArchivedBytes  int64                      `json:"archived_bytes" yaml:"archived_bytes"`
	UntouchedBytes int64                      `json:"untouched_bytes" yaml:"untouched_bytes"`
}

// Plan is the document written by the plan phase (distill_plan.json).
type Plan struct {
	Root        Path                     `json:"root" yaml:"root"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	OutputDir   Path                     `json:"output_dir" yaml:"output_dir"`
	Entries     map[Category][]PlanEntry `json:"entries" yaml:"entries"`
	Stats       SizeStats                `json:"stats" yaml:"stats"`
	Warnings    []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Validate rejects plans whose categories or actions the cut phase would not
// understand, such as hand-edited documents.
func (p *Plan) Validate() error {
	for cat, entries := range p.Entries {
		if !cat.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidDocument, cat)
		}

		want := ActionFor(cat)
		for _, e := range entries {
			if e.Action != want {
				return fmt.Errorf("%w: %s is %s but has action %q", ErrInvalidDocument, e.Path, cat, e.Action)
			}
		}
	}

	return nil
}

// EntryCount returns the number of entries across all categories.
func (p *Plan) EntryCount() int {
	n := 0
	for _, entries := range p.Entries {
		n += len(entries)
	}

	return n
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
