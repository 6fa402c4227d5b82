package domain

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	m "distill.dev/pkg/distill/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// snapshotTree returns every path under root with its size and mode.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()

	snapshot := map[string]string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(root, path)
		snapshot[rel] = fmt.Sprintf("%s %d %s", info.Mode(), info.Size(), info.ModTime())

		return nil
	})
	require.NoError(t, err)

	return snapshot
}

func mapPaths(records []m.FileRecord) []string {
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, string(r.Path))
	}

	return paths
}

// recordingUI captures what the workflow displays.
type recordingUI struct {
	mu       sync.Mutex
	fileMap  *m.FileMap
	sheet    *m.ScoreSheet
	plan     *m.Plan
	viewed   *m.Plan
	result   *m.Result
	previews []m.ThinPreview
	saved    []m.Path
}

func (r *recordingUI) DisplayMap(_ context.Context, fileMap *m.FileMap, saved m.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fileMap = fileMap
	r.saved = append(r.saved, saved)

	return nil
}

func (r *recordingUI) DisplayScores(_ context.Context, sheet *m.ScoreSheet, saved m.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheet = sheet
	r.saved = append(r.saved, saved)

	return nil
}

func (r *recordingUI) DisplayPlan(_ context.Context, plan *m.Plan, saved ...m.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plan = plan
	r.saved = append(r.saved, saved...)

	return nil
}

func (r *recordingUI) DisplayResult(_ context.Context, result *m.Result, previews []m.ThinPreview) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.result = result
	r.previews = previews

	return nil
}

func (r *recordingUI) ViewPlan(_ context.Context, plan *m.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.viewed = plan

	return nil
}

func (r *recordingUI) savedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.saved))
	for _, p := range r.saved {
		out = append(out, filepath.Base(string(p)))
	}

	sort.Strings(out)

	return out
}
