// Package fs provides the small filesystem surface gh-board needs.
//
// The main types are:
//   - [FS]: interface for the file operations used by snapshot persistence
//   - [Real]: production implementation using [os] and atomic writes
//   - [Faulty]: testing implementation that fails selected operations
//
// Example usage:
//
//	fsys := fs.NewReal()
//	err := fsys.WriteFileAtomic("board.json", data, 0o644)
package fs

import "os"

// FS defines the filesystem operations used when loading and saving
// snapshots. All paths are used as given; callers resolve them first.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never see a partial snapshot.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}

// Compile-time interface checks.
var (
	_ FS = (*Real)(nil)
	_ FS = (*Faulty)(nil)
)
