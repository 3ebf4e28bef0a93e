package repositories

import "github.com/rios0rios0/statsexport/internal/domain/entities"

// ProblemRepository hands out the warning and error events of the process.
type ProblemRepository interface {
	// DrainProblems returns every problem recorded since the previous call
	// and forgets them.
	DrainProblems() []entities.Problem
}
