//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

// SpyFileRepository implements repositories.FileRepository without touching disk.
type SpyFileRepository struct {
	// --- WriteText ---
	WriteErr error
	Writes   map[string]string // path -> content

	// --- ResolveWithin ---
	ResolveErr error

	// --- MakeTempDir ---
	TempDir        string
	MakeTempDirErr error
	TempPatterns   []string

	// --- RemoveAll ---
	RemoveErr error
	Removed   []string
}

var _ repositories.FileRepository = (*SpyFileRepository)(nil)

func (s *SpyFileRepository) WriteText(path, content string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if s.Writes == nil {
		s.Writes = map[string]string{}
	}
	s.Writes[path] = content
	return nil
}

func (s *SpyFileRepository) ResolveWithin(root, relPath string) (string, error) {
	if s.ResolveErr != nil {
		return "", s.ResolveErr
	}
	return filepath.Join(root, filepath.FromSlash(relPath)), nil
}

func (s *SpyFileRepository) MakeTempDir(pattern string) (string, error) {
	s.TempPatterns = append(s.TempPatterns, pattern)
	if s.MakeTempDirErr != nil {
		return "", s.MakeTempDirErr
	}
	if s.TempDir == "" {
		return "/tmp/statsexport-scratch", nil
	}
	return s.TempDir, nil
}

func (s *SpyFileRepository) RemoveAll(path string) error {
	s.Removed = append(s.Removed, path)
	return s.RemoveErr
}
