package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "distill.dev/pkg/distill/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.py"), "import os\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.py"), "def child():\n    pass\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.py")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "app.py")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.py"), "import os\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.py")
		writeTestFile(t, child, "def child():\n    pass\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}
	})

	t.Run("symlinked root is followed", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		target := t.TempDir()
		mustMkdir(t, filepath.Join(target, "nested"))
		writeTestFile(t, filepath.Join(target, "nested", "child.py"), "def child():\n    pass\n")

		link := filepath.Join(t.TempDir(), "link")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		var visited []string
		err := adapter.Walk(m.Path(link), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, filepath.Join(link, "nested", "child.py")) {
			t.Fatalf("Walk() did not report nested file under the link, got %v", visited)
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "app.py")
	content := "import os\n" + "def main():\n    return 0\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	writeTestFile(t, path, "package main\n")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}

	dirInfo, err := adapter.FileInfo(m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !dirInfo.IsDir() {
		t.Fatalf("FileInfo() reported directory as file")
	}
}

func TestLocalSourceFSAdapter_CopyFileAndWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	src := t.TempDir()
	dst := t.TempDir()

	filePath := filepath.Join(src, "run.sh")
	writeTestFile(t, filePath, "#!/bin/sh\necho hi\n")
	if err := os.Chmod(filePath, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	target := filepath.Join(dst, "nested", "deeper", "run.sh")
	written, err := adapter.CopyFile(m.Path(filePath), m.Path(target))
	if err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	if written != int64(len("#!/bin/sh\necho hi\n")) {
		t.Fatalf("CopyFile() wrote %d bytes", written)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("CopyFile() did not create target: %v", err)
	}

	if info.Mode().Perm() != 0o755 {
		t.Fatalf("CopyFile() mode = %v, want 0755", info.Mode().Perm())
	}

	extra := filepath.Join(dst, "a", "b", "extra.py")
	if err := adapter.WriteFile(m.Path(extra), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := os.Stat(extra); err != nil {
		t.Fatalf("WriteFile() did not create parents: %v", err)
	}

	t.Run("directory source is rejected", func(t *testing.T) {
		if _, err := adapter.CopyFile(m.Path(src), m.Path(filepath.Join(dst, "dir"))); err == nil {
			t.Fatalf("CopyFile() expected error for directory source")
		}
	})

	t.Run("missing source is an error", func(t *testing.T) {
		if _, err := adapter.CopyFile(m.Path(filepath.Join(src, "nope")), m.Path(filepath.Join(dst, "nope"))); err == nil {
			t.Fatalf("CopyFile() expected error for missing source")
		}
	})
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/sub/dir/file.go")

	rel, err := adapter.RelPath(base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("sub", "dir", "file.go") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("sub", "dir", "file.go"))
	}

	joined := adapter.JoinPath("/tmp", "project", "sub", "file.go")
	if string(joined) != filepath.Join("/tmp", "project", "sub", "file.go") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "sub", "file.go"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
