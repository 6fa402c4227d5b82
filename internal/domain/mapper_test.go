package domain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distill.dev/pkg/distill/internal/adapter"
	"distill.dev/pkg/distill/internal/config"
	m "distill.dev/pkg/distill/internal/model"
)

func buildMapFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "import os\nimport sys\n\ndef main():\n    pass\n")
	writeFile(t, filepath.Join(root, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(root, "pkg", "models.py"), "class A:\n    pass\n\nclass B:\n    def f(self):\n        pass\n")
	writeFile(t, filepath.Join(root, "tests", "test_models.py"), "from pkg.models import A\n\ndef test_a():\n    assert A\n")
	writeFile(t, filepath.Join(root, "cmd", "tool", "main.go"), "package main\n\nimport (\n\t\"fmt\"\n)\n\nfunc main() { fmt.Println() }\n")
	writeFile(t, filepath.Join(root, "README.md"), "# Project\n")
	writeFile(t, filepath.Join(root, "image.png"), "not scanned")
	writeFile(t, filepath.Join(root, "node_modules", "left", "index.js"), "module.exports = 1\n")
	writeFile(t, filepath.Join(root, ".git", "config.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "gen", "api_pb.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "distilled", "main.py"), "import os\n")
	writeFile(t, filepath.Join(root, "binary.py"), "x = '\xff\xfe'\n")

	return root
}

func newTestMapper(t *testing.T, root string, mutate func(*config.MapConfig)) Mapper {
	t.Helper()

	cfg := config.Default().Map
	cfg.Exclude = []string{"gen/**"}

	if mutate != nil {
		mutate(&cfg)
	}

	mapper, err := NewMapper(adapter.NewLocalSourceFSAdapter(), cfg, filepath.Join(root, "distilled"), filepath.Join(root, ".distill-reports"))
	require.NoError(t, err)

	return mapper
}

func TestMapper_Map(t *testing.T) {
	root := buildMapFixture(t)

	fileMap, err := newTestMapper(t, root, nil).Map(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"cmd/tool/main.go",
		"main.py",
		"pkg/__init__.py",
		"pkg/models.py",
		"tests/test_models.py",
	}, mapPaths(fileMap.Files))

	byPath := map[m.Path]m.FileRecord{}
	for _, f := range fileMap.Files {
		byPath[f.Path] = f
	}

	mainPy := byPath["main.py"]
	assert.Equal(t, m.LangPython, mainPy.Language)
	assert.Equal(t, []string{"import os", "import sys"}, mainPy.Imports)
	assert.Equal(t, 1, mainPy.FunctionCount)
	assert.False(t, mainPy.IsTest)
	assert.Equal(t, int64(len("import os\nimport sys\n\ndef main():\n    pass\n")), mainPy.Size)

	assert.Equal(t, 2, byPath["pkg/models.py"].ClassCount)
	assert.True(t, byPath["tests/test_models.py"].IsTest)
	assert.Equal(t, []string{`"fmt"`}, byPath["cmd/tool/main.go"].Imports)
	assert.Equal(t, m.LangText, byPath["README.md"].Language)

	require.Len(t, fileMap.Skipped, 1)
	assert.Equal(t, m.Path("binary.py"), fileMap.Skipped[0].Path)
	assert.Equal(t, "not valid UTF-8", fileMap.Skipped[0].Reason)
}

func TestMapper_OversizeFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "big.py"), strings.Repeat("x = 1\n", 100))

	fileMap, err := newTestMapper(t, root, func(c *config.MapConfig) { c.MaxFileBytes = 64 }).
		Map(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"small.py"}, mapPaths(fileMap.Files))
	require.Len(t, fileMap.Skipped, 1)
	assert.Contains(t, fileMap.Skipped[0].Reason, "max_file_bytes")
}

func TestMapper_UnreadableFilesAreSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.py"), "x = 1\n")
	locked := filepath.Join(root, "locked.py")
	writeFile(t, locked, "x = 1\n")
	require.NoError(t, os.Chmod(locked, 0o000))

	fileMap, err := newTestMapper(t, root, nil).Map(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"ok.py"}, mapPaths(fileMap.Files))
	require.Len(t, fileMap.Skipped, 1)
	assert.Equal(t, m.Path("locked.py"), fileMap.Skipped[0].Path)
}

func TestMapper_DeterministicAcrossWorkerCounts(t *testing.T) {
	root := buildMapFixture(t)
	for i := 0; i < 40; i++ {
		writeFile(t, filepath.Join(root, "bulk", string(rune('a'+i%26))+strings.Repeat("x", i/26), "mod.py"),
			strings.Repeat("import os\n", i%7)+"def f():\n    pass\n")
	}

	var baseline *m.FileMap

	for _, workers := range []int{1, 3, 16} {
		fileMap, err := newTestMapper(t, root, func(c *config.MapConfig) { c.Workers = workers }).
			Map(context.Background(), m.Path(root))
		require.NoError(t, err)

		if baseline == nil {
			baseline = fileMap
			continue
		}

		if diff := cmp.Diff(baseline.Files, fileMap.Files); diff != "" {
			t.Fatalf("workers=%d changed the map (-want +got):\n%s", workers, diff)
		}

		assert.Equal(t, baseline.Skipped, fileMap.Skipped)
	}
}

func TestMapper_RootErrors(t *testing.T) {
	mapper := newTestMapper(t, t.TempDir(), nil)

	_, err := mapper.Map(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
	require.ErrorIs(t, err, m.ErrRootNotFound)

	file := filepath.Join(t.TempDir(), "file.py")
	writeFile(t, file, "x = 1\n")

	_, err = mapper.Map(context.Background(), m.Path(file))
	require.ErrorIs(t, err, m.ErrRootNotFound)
}

func TestMapper_SymlinkedRoot(t *testing.T) {
	target := buildMapFixture(t)

	link := filepath.Join(t.TempDir(), "project")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	direct, err := newTestMapper(t, target, nil).Map(context.Background(), m.Path(target))
	require.NoError(t, err)

	linked, err := newTestMapper(t, link, nil).Map(context.Background(), m.Path(link))
	require.NoError(t, err)

	require.NotEmpty(t, linked.Files)
	assert.Equal(t, mapPaths(direct.Files), mapPaths(linked.Files))
	assert.NotContains(t, mapPaths(linked.Files), "distilled/main.py")
}

func TestMapper_CancelledContext(t *testing.T) {
	root := buildMapFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestMapper(t, root, nil).Map(ctx, m.Path(root))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewMapper_InvalidExclude(t *testing.T) {
	cfg := config.Default().Map
	cfg.Exclude = []string{"[oops"}

	_, err := NewMapper(adapter.NewLocalSourceFSAdapter(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.exclude")
}
