package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

const (
	dirFileMode  = 0o755
	textFileMode = 0o644
)

// FileRepository writes to the local filesystem.
type FileRepository struct{}

// NewFileRepository creates a new FileRepository.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// WriteText creates or overwrites path, creating parent directories.
func (it *FileRepository) WriteText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirFileMode); err != nil {
		return fmt.Errorf("failed to create parent directories of %q: %w", path, err)
	}
	//nolint:gosec // report files are meant to be world-readable
	if err := os.WriteFile(path, []byte(content), textFileMode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// ResolveWithin walks up from the target to its deepest existing ancestor,
// resolves that one, and re-appends the missing tail. A dangling symlink on
// the way counts as an escape since writing through it lands elsewhere.
func (it *FileRepository) ResolveWithin(root, relPath string) (string, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	existing := filepath.Join(realRoot, filepath.FromSlash(relPath))
	var missing []string
	for {
		resolved, evalErr := filepath.EvalSymlinks(existing)
		if evalErr == nil {
			existing = resolved
			break
		}
		if !errors.Is(evalErr, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve %q: %w", existing, evalErr)
		}
		if _, statErr := os.Lstat(existing); statErr == nil {
			return "", fmt.Errorf("%w: %q is a dangling symlink", repositories.ErrPathEscapesRoot, existing)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", fmt.Errorf("failed to resolve %q: %w", relPath, evalErr)
		}
		missing = append([]string{filepath.Base(existing)}, missing...)
		existing = parent
	}

	resolved := filepath.Join(append([]string{existing}, missing...)...)
	rel, err := filepath.Rel(realRoot, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves to %q", repositories.ErrPathEscapesRoot, relPath, resolved)
	}
	return resolved, nil
}

// MakeTempDir creates a fresh directory under the system temp dir.
func (it *FileRepository) MakeTempDir(pattern string) (string, error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	return dir, nil
}

// RemoveAll deletes path and everything below it.
func (it *FileRepository) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
