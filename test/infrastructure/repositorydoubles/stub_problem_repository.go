//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

// StubProblemRepository hands out a fixed list once, then nothing.
type StubProblemRepository struct {
	Problems   []entities.Problem
	DrainCount int
}

var _ repositories.ProblemRepository = (*StubProblemRepository)(nil)

func (s *StubProblemRepository) DrainProblems() []entities.Problem {
	s.DrainCount++
	drained := s.Problems
	s.Problems = nil
	return drained
}
