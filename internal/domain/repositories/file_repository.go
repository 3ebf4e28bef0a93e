package repositories

import "errors"

// ErrPathEscapesRoot reports a path that resolves outside its root directory.
var ErrPathEscapesRoot = errors.New("path escapes root directory")

// FileRepository abstracts the filesystem writes done while exporting.
type FileRepository interface {
	// WriteText creates or overwrites path, creating parent directories.
	WriteText(path, content string) error

	// ResolveWithin joins relPath onto root and follows every symlink that
	// already exists along the way. It fails with ErrPathEscapesRoot when
	// the resolved path leaves root.
	ResolveWithin(root, relPath string) (string, error)

	// MakeTempDir creates a fresh scratch directory matching pattern.
	MakeTempDir(pattern string) (string, error)

	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
}
