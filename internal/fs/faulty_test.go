package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tasktree/internal/fs"
)

func TestFaultyDelegatesAndInjects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	okPath := filepath.Join(dir, "ok.md")
	badPath := filepath.Join(dir, "bad.md")

	for _, p := range []string{okPath, badPath} {
		err := os.WriteFile(p, []byte("content"), 0o600)
		if err != nil {
			t.Fatal(err)
		}
	}

	injected := errors.New("injected")

	fsys := &fs.Faulty{
		Next:      fs.NewReal(),
		FailReads: map[string]error{badPath: injected},
		FailDirs:  map[string]error{filepath.Join(dir, "sub"): injected},
	}

	data, err := fsys.ReadFile(okPath)
	if err != nil || string(data) != "content" {
		t.Errorf("ReadFile(ok) = %q, %v", data, err)
	}

	_, err = fsys.ReadFile(badPath)
	if !errors.Is(err, injected) {
		t.Errorf("ReadFile(bad) error = %v, want injected", err)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil || len(entries) != 2 {
		t.Errorf("ReadDir = %d entries, %v", len(entries), err)
	}

	_, err = fsys.ReadDir(filepath.Join(dir, "sub"))
	if !errors.Is(err, injected) {
		t.Errorf("ReadDir(sub) error = %v, want injected", err)
	}
}

func TestRealWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.md")

	fsys := fs.NewReal()

	err := fsys.WriteFileAtomic(path, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("content = %q, %v", data, err)
	}
}
