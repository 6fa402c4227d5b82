package model

import "time"

// FileError records a per-file failure during the cut phase.
type FileError struct {
	Path   Path   `json:"path" yaml:"path"`
	Action Action `json:"action" yaml:"action"`
	Error  string `json:"error" yaml:"error"`
}

// Result is the document written by the cut phase (distill_result.json).
type Result struct {
	RunID        string      `json:"run_id" yaml:"run_id"`
	DryRun       bool        `json:"dry_run" yaml:"dry_run"`
	OutputDir    Path        `json:"output_dir" yaml:"output_dir"`
	ArchivePath  Path        `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
	Copied       int         `json:"copied" yaml:"copied"`
	Compressed   int         `json:"compressed" yaml:"compressed"`
	Archived     int         `json:"archived" yaml:"archived"`
	Skipped      int         `json:"skipped" yaml:"skipped"`
	Errored      int         `json:"errored" yaml:"errored"`
	BytesWritten int64       `json:"bytes_written" yaml:"bytes_written"`
	StartedAt    time.Time   `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time   `json:"finished_at" yaml:"finished_at"`
	Success      bool        `json:"success" yaml:"success"`
	Errors       []FileError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Processed returns the number of plan entries the run accounted for.
func (r *Result) Processed() int {
	return r.Copied + r.Compressed + r.Archived + r.Skipped + r.Errored
}

// ThinPreview is the unified diff a thin-tier file would receive. It is
// produced by dry-run cuts and displayed, never persisted.
type ThinPreview struct {
	Path Path
	Diff string
}
