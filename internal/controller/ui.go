// Package controller provides output adapters for displaying distill reports.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "distill.dev/pkg/distill/internal/model"
)

// UI defines how phase outcomes are presented to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayMap(ctx context.Context, fileMap *m.FileMap, saved m.Path) error
	DisplayScores(ctx context.Context, sheet *m.ScoreSheet, saved m.Path) error
	DisplayPlan(ctx context.Context, plan *m.Plan, saved ...m.Path) error
	DisplayResult(ctx context.Context, result *m.Result, previews []m.ThinPreview) error
	// ViewPlan lets the user browse every plan entry.
	ViewPlan(ctx context.Context, plan *m.Plan) error
}

// NewUI returns the interactive TUI when attached to a terminal and the
// plain table UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
