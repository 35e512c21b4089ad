package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "shroud.dev/pkg/shroud/internal/model"
)

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "app.py")
	content := "def main():\n    pass\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}

	if _, err := adapter.ReadFile(m.Path(filepath.Join(root, "missing.py"))); err == nil {
		t.Fatalf("ReadFile() expected error for missing file")
	}
}

func TestLocalSourceFSAdapter_WriteFileAtomic(t *testing.T) {
	t.Run("creates file with permissions", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		path := filepath.Join(root, "out.py")

		if err := adapter.WriteFileAtomic(m.Path(path), []byte("a = 1\n"), 0o600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got := readFileBytes(t, path)
		if string(got) != "a = 1\n" {
			t.Fatalf("WriteFileAtomic() wrote %q", string(got))
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}

		if info.Mode().Perm() != 0o600 {
			t.Fatalf("WriteFileAtomic() perm = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		path := filepath.Join(root, "out.py")
		writeTestFile(t, path, "old contents\n")

		if err := adapter.WriteFileAtomic(m.Path(path), []byte("new\n"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		if got := string(readFileBytes(t, path)); got != "new\n" {
			t.Fatalf("WriteFileAtomic() content = %q, want %q", got, "new\n")
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}

		if len(entries) != 1 {
			t.Fatalf("WriteFileAtomic() left %d entries, want 1", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		path := filepath.Join(t.TempDir(), "nope", "out.py")
		if err := adapter.WriteFileAtomic(m.Path(path), []byte("x"), 0o644); err == nil {
			t.Fatalf("WriteFileAtomic() expected error for missing directory")
		}
	})
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

func TestLocalSourceFSAdapter_Exists(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	file := filepath.Join(root, "helper.py")
	writeTestFile(t, file, "x = 1\n")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", root, false},
		{"missing", filepath.Join(root, "missing.py"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.Exists(m.Path(tt.path)); got != tt.want {
				t.Fatalf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	nested := adapter.JoinPath(root, "out", "deep")

	if nested != m.Path(filepath.Join(root, "out", "deep")) {
		t.Fatalf("JoinPath() = %s", nested)
	}

	if err := adapter.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	info, err := os.Stat(string(nested))
	if err != nil || !info.IsDir() {
		t.Fatalf("MkdirAll() did not create %s: %v", nested, err)
	}

	if err := adapter.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll() on existing dir error = %v", err)
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
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	return data
}

// examplePath returns the directory of a sample project under the repository's examples/.
func examplePath(t *testing.T, name string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", "..", "examples", name))
	if err != nil {
		t.Fatalf("resolve example %s: %v", name, err)
	}

	return path
}
