package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"distill.dev/pkg/distill/internal/adapter"
	"distill.dev/pkg/distill/internal/config"
	m "distill.dev/pkg/distill/internal/model"
)

// Mapper walks a project tree and produces the file map.
type Mapper interface {
	Map(ctx context.Context, root m.Path) (*m.FileMap, error)
}

type mapper struct {
	fs         adapter.SourceFSAdapter
	cfg        config.MapConfig
	excludes   *Matcher
	dirNames   map[string]struct{}
	skipPaths  []string
	extensions map[string]struct{}
}

type mapCandidate struct {
	abs  string
	rel  m.Path
	info os.FileInfo
}

// NewMapper builds a Mapper for cfg. skipDirs are additional directories
// (typically the output and reports dirs) that are never descended into.
func NewMapper(fs adapter.SourceFSAdapter, cfg config.MapConfig, skipDirs ...string) (Mapper, error) {
	excludes, err := NewMatcher(cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("map.exclude: %w", err)
	}

	mp := &mapper{
		fs:         fs,
		cfg:        cfg,
		excludes:   excludes,
		dirNames:   make(map[string]struct{}, len(cfg.ExcludeDirs)),
		extensions: make(map[string]struct{}, len(cfg.Extensions)),
	}

	for _, d := range cfg.ExcludeDirs {
		mp.dirNames[d] = struct{}{}
	}

	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		mp.extensions[ext] = struct{}{}
	}

	for _, d := range skipDirs {
		if d == "" {
			continue
		}

		if abs, err := filepath.Abs(d); err == nil {
			mp.skipPaths = append(mp.skipPaths, abs)
		}
	}

	return mp, nil
}

// Map scans root and analyzes every candidate file on a bounded worker pool.
// Files that cannot be analyzed are logged and listed in FileMap.Skipped.
func (mp *mapper) Map(ctx context.Context, root m.Path) (*m.FileMap, error) {
	info, err := mp.fs.FileInfo(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, m.ErrRootNotFound)
	}

	candidates, skipped, err := mp.collect(ctx, root)
	if err != nil {
		return nil, err
	}

	slog.Info("mapping files", "root", root, "candidates", len(candidates))

	records := make([]*m.FileRecord, len(candidates))

	var skippedMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerCount(mp.cfg.Workers))

	for i, candidate := range candidates {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			record, reason := mp.analyze(candidate)
			if reason != "" {
				slog.Warn("Skipping file", "path", candidate.rel, "reason", reason)
				skippedMu.Lock()
				skipped = append(skipped, m.SkippedFile{Path: candidate.rel, Reason: reason})
				skippedMu.Unlock()

				return nil
			}

			records[i] = record

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("map %s: %w", root, err)
	}

	fileMap := &m.FileMap{
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Files:       make([]m.FileRecord, 0, len(records)),
		Skipped:     skipped,
	}

	for _, record := range records {
		if record != nil {
			fileMap.Files = append(fileMap.Files, *record)
		}
	}

	sort.Slice(fileMap.Files, func(i, j int) bool { return fileMap.Files[i].Path < fileMap.Files[j].Path })
	sort.Slice(fileMap.Skipped, func(i, j int) bool { return fileMap.Skipped[i].Path < fileMap.Skipped[j].Path })

	return fileMap, nil
}

func (mp *mapper) collect(ctx context.Context, root m.Path) ([]mapCandidate, []m.SkippedFile, error) {
	var (
		candidates []mapCandidate
		skipped    []m.SkippedFile
	)

	rootStr := string(root)

	err := mp.fs.Walk(root, true, func(p string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := mp.fs.RelPath(root, m.Path(p))
		if relErr != nil {
			return relErr
		}

		relPath := m.Path(filepath.ToSlash(string(rel)))

		if walkErr != nil {
			slog.Warn("Failed to read path", "path", p, "error", walkErr)
			skipped = append(skipped, m.SkippedFile{Path: relPath, Reason: walkErr.Error()})

			if info != nil && info.IsDir() {
				return adapter.ErrSkipDir
			}

			return nil
		}

		if info.IsDir() {
			if p != rootStr && mp.skipDir(p, info.Name()) {
				slog.Debug("skipping directory", "path", relPath)
				return adapter.ErrSkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() || !mp.wantFile(relPath) {
			return nil
		}

		candidates = append(candidates, mapCandidate{abs: p, rel: relPath, info: info})

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return candidates, skipped, nil
}

func (mp *mapper) skipDir(abs, name string) bool {
	if _, ok := mp.dirNames[name]; ok {
		return true
	}

	full, err := filepath.Abs(abs)
	if err != nil {
		return false
	}

	for _, skip := range mp.skipPaths {
		if full == skip {
			return true
		}
	}

	return false
}

func (mp *mapper) wantFile(rel m.Path) bool {
	if mp.excludes.Match(rel) {
		return false
	}

	_, ok := mp.extensions[strings.ToLower(filepath.Ext(string(rel)))]

	return ok
}

// analyze returns the record for candidate, or a non-empty skip reason.
func (mp *mapper) analyze(candidate mapCandidate) (*m.FileRecord, string) {
	if mp.cfg.MaxFileBytes > 0 && candidate.info.Size() > mp.cfg.MaxFileBytes {
		return nil, fmt.Sprintf("exceeds max_file_bytes (%d > %d)", candidate.info.Size(), mp.cfg.MaxFileBytes)
	}

	content, err := mp.fs.ReadFile(m.Path(candidate.abs))
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, "permission denied"
		}

		return nil, err.Error()
	}

	if !utf8.Valid(content) {
		return nil, "not valid UTF-8"
	}

	lang := DetectLanguage(candidate.rel)

	return &m.FileRecord{
		Path:          candidate.rel,
		Size:          candidate.info.Size(),
		ModTime:       candidate.info.ModTime().UTC(),
		Language:      lang,
		Imports:       ExtractImports(lang, content, mp.cfg.HeadLines),
		FunctionCount: CountFunctions(lang, content),
		ClassCount:    CountClasses(lang, content),
		IsTest:        IsTestFile(candidate.rel),
	}, ""
}

func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}

	return runtime.NumCPU()
}
