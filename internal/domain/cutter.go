package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"distill.dev/pkg/distill/internal/adapter"
	m "distill.dev/pkg/distill/internal/model"
)

// ErrOutputIsRoot is returned when the output directory would overwrite the sources.
var ErrOutputIsRoot = errors.New("output directory must differ from the scanned root")

// CutOptions controls a single cut run.
type CutOptions struct {
	OutputDir   m.Path
	ArchiveName string
	DryRun      bool
	Diff        bool
	Workers     int
}

// Cutter executes a plan against the filesystem.
type Cutter interface {
	Cut(ctx context.Context, plan *m.Plan, opts CutOptions) (*m.Result, []m.ThinPreview, error)
}

type cutter struct {
	fs          adapter.SourceFSAdapter
	newArchiver adapter.ArchiverFactory
}

// NewCutter builds a Cutter writing through fs and archiving through newArchiver.
func NewCutter(fs adapter.SourceFSAdapter, newArchiver adapter.ArchiverFactory) Cutter {
	return &cutter{fs: fs, newArchiver: newArchiver}
}

type cutRun struct {
	mu       sync.Mutex
	result   *m.Result
	previews []m.ThinPreview
}

func (r *cutRun) record(action m.Action, written int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch action {
	case m.ActionCopy:
		r.result.Copied++
	case m.ActionCompress:
		r.result.Compressed++
	case m.ActionArchive:
		r.result.Archived++
	case m.ActionSkip:
		r.result.Skipped++
	}

	r.result.BytesWritten += written
}

func (r *cutRun) fail(entry m.PlanEntry, err error) {
	slog.Error("Failed to process plan entry", "path", entry.Path, "action", entry.Action, "error", err)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.result.Errored++
	r.result.Errors = append(r.result.Errors, m.FileError{Path: entry.Path, Action: entry.Action, Error: err.Error()})
}

func (r *cutRun) preview(p m.ThinPreview) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.previews = append(r.previews, p)
}

// Cut processes every plan entry. Copy and thin work runs on a bounded pool,
// legacy files are appended to the archive by a single goroutine. Per-file
// failures are recorded in the result and do not stop the run. In dry-run
// mode nothing is written: sources are only inspected.
func (c *cutter) Cut(ctx context.Context, plan *m.Plan, opts CutOptions) (*m.Result, []m.ThinPreview, error) {
	if err := c.checkOutput(plan.Root, opts.OutputDir); err != nil {
		return nil, nil, err
	}

	run := &cutRun{result: &m.Result{
		RunID:     uuid.NewString(),
		DryRun:    opts.DryRun,
		OutputDir: opts.OutputDir,
		StartedAt: time.Now().UTC(),
		Errors:    []m.FileError{},
	}}

	legacy := plan.Entries[m.CategoryLegacy]
	if len(legacy) > 0 {
		run.result.ArchivePath = m.Path(filepath.Join(string(opts.OutputDir), opts.ArchiveName))
	}

	slog.Info("cutting plan", "run_id", run.result.RunID, "entries", plan.EntryCount(), "dry_run", opts.DryRun)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.archiveAll(groupCtx, plan.Root, legacy, run, opts)
	})

	pool, poolCtx := errgroup.WithContext(groupCtx)
	pool.SetLimit(workerCount(opts.Workers))

	for _, cat := range []m.Category{m.CategoryKeep, m.CategoryThin, m.CategoryExternal} {
		for _, entry := range plan.Entries[cat] {
			pool.Go(func() error {
				if err := poolCtx.Err(); err != nil {
					return err
				}

				c.process(plan.Root, entry, run, opts)

				return nil
			})
		}
	}

	group.Go(pool.Wait)

	if err := group.Wait(); err != nil {
		return nil, nil, fmt.Errorf("cut: %w", err)
	}

	result := run.result
	result.FinishedAt = time.Now().UTC()
	result.Success = result.Errored == 0

	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].Path < result.Errors[j].Path })
	sort.Slice(run.previews, func(i, j int) bool { return run.previews[i].Path < run.previews[j].Path })

	return result, run.previews, nil
}

func (c *cutter) checkOutput(root, output m.Path) error {
	rootAbs, err := filepath.Abs(string(root))
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	outAbs, err := filepath.Abs(string(output))
	if err != nil {
		return fmt.Errorf("resolve output: %w", err)
	}

	if rootAbs == outAbs {
		return fmt.Errorf("%s: %w", output, ErrOutputIsRoot)
	}

	return nil
}

func (c *cutter) process(root m.Path, entry m.PlanEntry, run *cutRun, opts CutOptions) {
	src := c.fs.JoinPath(string(root), string(entry.Path))
	dst := c.fs.JoinPath(string(opts.OutputDir), string(entry.Path))

	switch entry.Action {
	case m.ActionSkip:
		run.record(m.ActionSkip, 0)

	case m.ActionCopy:
		written, err := c.copy(src, dst, opts.DryRun)
		if err != nil {
			run.fail(entry, err)
			return
		}

		run.record(m.ActionCopy, written)

	case m.ActionCompress:
		written, err := c.thin(entry, src, dst, run, opts)
		if err != nil {
			run.fail(entry, err)
			return
		}

		run.record(m.ActionCompress, written)

	default:
		run.fail(entry, fmt.Errorf("unexpected action %q", entry.Action))
	}
}

func (c *cutter) copy(src, dst m.Path, dryRun bool) (int64, error) {
	if dryRun {
		info, err := c.fs.FileInfo(src)
		if err != nil {
			return 0, err
		}

		return info.Size(), nil
	}

	return c.fs.CopyFile(src, dst)
}

func (c *cutter) thin(entry m.PlanEntry, src, dst m.Path, run *cutRun, opts CutOptions) (int64, error) {
	info, err := c.fs.FileInfo(src)
	if err != nil {
		return 0, err
	}

	content, err := c.fs.ReadFile(src)
	if err != nil {
		return 0, err
	}

	thinned := Thin(DetectLanguage(entry.Path), content)

	if opts.DryRun {
		if opts.Diff {
			diff, err := UnifiedDiff(string(entry.Path), content, thinned)
			if err != nil {
				return 0, fmt.Errorf("diff: %w", err)
			}

			if diff != "" {
				run.preview(m.ThinPreview{Path: entry.Path, Diff: diff})
			}
		}

		return int64(len(thinned)), nil
	}

	if err := c.fs.WriteFile(dst, thinned, info.Mode().Perm()); err != nil {
		return 0, err
	}

	return int64(len(thinned)), nil
}

// archiveAll appends legacy entries to the archive sequentially. The archive
// is only created when at least one legacy entry exists and the run applies.
func (c *cutter) archiveAll(ctx context.Context, root m.Path, entries []m.PlanEntry, run *cutRun, opts CutOptions) error {
	if len(entries) == 0 {
		return nil
	}

	if opts.DryRun {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := c.fs.FileInfo(c.fs.JoinPath(string(root), string(entry.Path)))
			if err != nil {
				run.fail(entry, err)
				continue
			}

			run.record(m.ActionArchive, info.Size())
		}

		return nil
	}

	archiver, err := c.newArchiver(run.result.ArchivePath)
	if err != nil {
		for _, entry := range entries {
			run.fail(entry, err)
		}

		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			_ = archiver.Close()
			return err
		}

		written, err := archiver.Add(c.fs.JoinPath(string(root), string(entry.Path)), string(entry.Path))
		if err != nil {
			run.fail(entry, err)
			continue
		}

		run.record(m.ActionArchive, written)
	}

	if err := archiver.Close(); err != nil {
		return fmt.Errorf("close archive %s: %w", archiver.Path(), err)
	}

	return nil
}
