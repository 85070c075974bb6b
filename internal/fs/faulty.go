package fs

import (
	"os"
	"path/filepath"
)

// Faulty wraps another [FS] and fails operations on selected paths. It
// exists for tests that exercise the engine's tolerance of unreadable files
// and directories.
type Faulty struct {
	// Next receives every operation not covered by a configured failure.
	Next FS

	// FailReads maps cleaned paths to the error their ReadFile returns.
	FailReads map[string]error

	// FailDirs maps cleaned paths to the error their ReadDir returns.
	FailDirs map[string]error

	// FailWrites maps cleaned paths to the error their WriteFileAtomic
	// returns.
	FailWrites map[string]error
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	if err, ok := f.FailDirs[filepath.Clean(path)]; ok {
		return nil, err
	}

	return f.Next.ReadDir(path)
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err, ok := f.FailReads[filepath.Clean(path)]; ok {
		return nil, err
	}

	return f.Next.ReadFile(path)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	return f.Next.Stat(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte) error {
	if err, ok := f.FailWrites[filepath.Clean(path)]; ok {
		return err
	}

	return f.Next.WriteFileAtomic(path, data)
}
