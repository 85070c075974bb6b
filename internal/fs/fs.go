// Package fs abstracts the filesystem operations the index engine performs,
// so tests can inject per-path read failures without touching the real
// filesystem layout.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Faulty]: testing use, fails selected paths
package fs

import "os"

// FS defines the filesystem operations consumed by the scanner, the search
// path, and the bump command. Methods mirror their [os] equivalents.
type FS interface {
	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// WriteFileAtomic writes data to a file via temp file + rename, so a
	// crash never leaves a partial write behind.
	WriteFileAtomic(path string, data []byte) error
}
