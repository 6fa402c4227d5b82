package domain

import (
	"context"
	"fmt"
	"log/slog"

	"distill.dev/pkg/distill/internal/adapter"
	"distill.dev/pkg/distill/internal/config"
	"distill.dev/pkg/distill/internal/controller"
	m "distill.dev/pkg/distill/internal/model"
)

// MapArgs contains the arguments for the map phase.
type MapArgs struct {
	Root    m.Path
	Reports m.Path
	Config  *config.Config
}

// ScoreArgs contains the arguments for the score phase.
type ScoreArgs struct {
	Reports m.Path
	Config  *config.Config
}

// PlanArgs contains the arguments for the plan phase.
type PlanArgs struct {
	Reports m.Path
	Config  *config.Config
}

// CutArgs contains the arguments for the cut phase.
type CutArgs struct {
	Reports m.Path
	Config  *config.Config
	DryRun  bool
	Diff    bool
}

// AllArgs contains the arguments for running every phase in one process.
type AllArgs struct {
	Root    m.Path
	Reports m.Path
	Config  *config.Config
	DryRun  bool
	Diff    bool
}

// ViewArgs contains the arguments for browsing a saved plan.
type ViewArgs struct {
	Reports m.Path
	Config  *config.Config
}

// Workflow runs the distill phases. Each phase reads the previous phase's
// document from the reports directory and writes its own.
type Workflow interface {
	Map(ctx context.Context, args MapArgs) error
	Score(ctx context.Context, args ScoreArgs) error
	Plan(ctx context.Context, args PlanArgs) error
	Cut(ctx context.Context, args CutArgs) error
	All(ctx context.Context, args AllArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI

	openStore   adapter.ReportStoreFactory
	newArchiver adapter.ArchiverFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	ui controller.UI,
	openStore adapter.ReportStoreFactory,
	newArchiver adapter.ArchiverFactory,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		openStore:       openStore,
		newArchiver:     newArchiver,
	}
}

func (w *workflow) Map(ctx context.Context, args MapArgs) error {
	cfg := configOrDefault(args.Config)
	reports := reportsDir(args.Reports, cfg)

	fileMap, err := w.runMap(ctx, rootOrDefault(args.Root, cfg), reports, cfg)
	if err != nil {
		return err
	}

	saved, err := w.openStore(cfg.Output.Format).SaveMap(reports, fileMap)
	if err != nil {
		slog.Error("Failed to save file map", "error", err)
		return fmt.Errorf("save map: %w", err)
	}

	return w.DisplayMap(ctx, fileMap, saved)
}

func (w *workflow) Score(ctx context.Context, args ScoreArgs) error {
	cfg := configOrDefault(args.Config)
	reports := reportsDir(args.Reports, cfg)
	store := w.openStore(cfg.Output.Format)

	fileMap, err := store.LoadMap(reports)
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}

	sheet, err := w.runScore(fileMap, cfg)
	if err != nil {
		return err
	}

	saved, err := store.SaveScores(reports, sheet)
	if err != nil {
		slog.Error("Failed to save scores", "error", err)
		return fmt.Errorf("save scores: %w", err)
	}

	return w.DisplayScores(ctx, sheet, saved)
}

func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	cfg := configOrDefault(args.Config)
	reports := reportsDir(args.Reports, cfg)
	store := w.openStore(cfg.Output.Format)

	sheet, err := store.LoadScores(reports)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}

	plan, saved, err := w.runPlan(sheet, reports, store, cfg)
	if err != nil {
		return err
	}

	return w.DisplayPlan(ctx, plan, saved...)
}

func (w *workflow) Cut(ctx context.Context, args CutArgs) error {
	cfg := configOrDefault(args.Config)
	reports := reportsDir(args.Reports, cfg)
	store := w.openStore(cfg.Output.Format)

	plan, err := store.LoadPlan(reports)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	return w.runCut(ctx, plan, reports, store, cfg, args.DryRun, args.Diff)
}

// All chains the phases in memory. The map, score and plan documents are
// always written; the result document only when the cut is applied.
func (w *workflow) All(ctx context.Context, args AllArgs) error {
	cfg := configOrDefault(args.Config)
	reports := reportsDir(args.Reports, cfg)
	store := w.openStore(cfg.Output.Format)

	fileMap, err := w.runMap(ctx, rootOrDefault(args.Root, cfg), reports, cfg)
	if err != nil {
		return err
	}

	if _, err := store.SaveMap(reports, fileMap); err != nil {
		return fmt.Errorf("save map: %w", err)
	}

	sheet, err := w.runScore(fileMap, cfg)
	if err != nil {
		return err
	}

	if _, err := store.SaveScores(reports, sheet); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}

	plan, saved, err := w.runPlan(sheet, reports, store, cfg)
	if err != nil {
		return err
	}

	if err := w.DisplayPlan(ctx, plan, saved...); err != nil {
		return err
	}

	return w.runCut(ctx, plan, reports, store, cfg, args.DryRun, args.Diff)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	cfg := configOrDefault(args.Config)

	plan, err := w.openStore(cfg.Output.Format).LoadPlan(reportsDir(args.Reports, cfg))
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	return w.ViewPlan(ctx, plan)
}

func (w *workflow) runMap(ctx context.Context, root, reports m.Path, cfg *config.Config) (*m.FileMap, error) {
	mapper, err := NewMapper(w.SourceFSAdapter, cfg.Map, cfg.Output.Dir, string(reports))
	if err != nil {
		return nil, err
	}

	fileMap, err := mapper.Map(ctx, root)
	if err != nil {
		slog.Error("Failed to map files", "root", root, "error", err)
		return nil, err
	}

	slog.Info("map complete", "files", len(fileMap.Files), "skipped", len(fileMap.Skipped))

	return fileMap, nil
}

func (w *workflow) runScore(fileMap *m.FileMap, cfg *config.Config) (*m.ScoreSheet, error) {
	scorer, err := NewScorer(cfg.Scoring, cfg.Overrides)
	if err != nil {
		return nil, err
	}

	sheet := scorer.ScoreAll(fileMap)
	slog.Info("score complete", "files", len(sheet.Scores))

	return sheet, nil
}

func (w *workflow) runPlan(sheet *m.ScoreSheet, reports m.Path, store adapter.ReportStore, cfg *config.Config) (*m.Plan, []m.Path, error) {
	planner, err := NewPlanner(cfg)
	if err != nil {
		return nil, nil, err
	}

	plan := planner.Plan(sheet)

	for _, warning := range plan.Warnings {
		slog.Warn("plan safety check", "warning", warning)
	}

	docPath, err := store.SavePlan(reports, plan)
	if err != nil {
		slog.Error("Failed to save plan", "error", err)
		return nil, nil, fmt.Errorf("save plan: %w", err)
	}

	mdPath, err := store.SavePlanMarkdown(reports, RenderPlanMarkdown(plan, cfg.Plan.MarkdownLimit))
	if err != nil {
		return nil, nil, fmt.Errorf("save plan markdown: %w", err)
	}

	return plan, []m.Path{docPath, mdPath}, nil
}

func (w *workflow) runCut(ctx context.Context, plan *m.Plan, reports m.Path, store adapter.ReportStore, cfg *config.Config, dryRun, diff bool) error {
	outputDir := plan.OutputDir
	if outputDir == "" {
		outputDir = m.Path(cfg.Output.Dir)
	}

	result, previews, err := NewCutter(w.SourceFSAdapter, w.newArchiver).Cut(ctx, plan, CutOptions{
		OutputDir:   outputDir,
		ArchiveName: cfg.Output.ArchiveName,
		DryRun:      dryRun,
		Diff:        diff,
		Workers:     cfg.Cut.Workers,
	})
	if err != nil {
		slog.Error("Failed to cut plan", "error", err)
		return err
	}

	if !dryRun {
		if _, err := store.SaveResult(reports, result); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
	}

	if err := w.DisplayResult(ctx, result, previews); err != nil {
		return err
	}

	slog.Info("cut complete", "run_id", result.RunID, "errored", result.Errored, "dry_run", dryRun)

	if !result.Success {
		return fmt.Errorf("%d of %d files failed: %w", result.Errored, result.Processed(), m.ErrCutIncomplete)
	}

	return nil
}

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}

	return cfg
}

func reportsDir(reports m.Path, cfg *config.Config) m.Path {
	if reports != "" {
		return reports
	}

	return m.Path(cfg.Output.ReportsDir)
}

func rootOrDefault(root m.Path, cfg *config.Config) m.Path {
	if root != "" {
		return root
	}

	if cfg.Root != "" {
		return m.Path(cfg.Root)
	}

	return "."
}
