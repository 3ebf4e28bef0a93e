package logging

import (
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

const repositoryField = "repository"

// ProblemRepository is a logrus hook that keeps every warning and error
// logged by the process until it is drained.
type ProblemRepository struct {
	mu       sync.Mutex
	problems []entities.Problem
}

// NewProblemRepository creates an empty ProblemRepository. It only records
// entries once added to a logger with AddHook.
func NewProblemRepository() *ProblemRepository {
	return &ProblemRepository{}
}

// Levels returns the levels this hook records.
func (it *ProblemRepository) Levels() []logger.Level {
	return []logger.Level{
		logger.PanicLevel,
		logger.FatalLevel,
		logger.ErrorLevel,
		logger.WarnLevel,
	}
}

// Fire records the entry as a problem.
func (it *ProblemRepository) Fire(entry *logger.Entry) error {
	problem := entities.Problem{
		Level: entry.Level.String(),
		Msg:   entry.Message,
	}
	for key, value := range entry.Data {
		if key == repositoryField {
			problem.Repository = fmt.Sprint(value)
			continue
		}
		if problem.Context == nil {
			problem.Context = map[string]any{}
		}
		if err, ok := value.(error); ok {
			problem.Context[key] = err.Error()
			continue
		}
		problem.Context[key] = value
	}

	it.mu.Lock()
	defer it.mu.Unlock()
	it.problems = append(it.problems, problem)
	return nil
}

// DrainProblems returns every problem recorded since the last call and forgets them.
func (it *ProblemRepository) DrainProblems() []entities.Problem {
	it.mu.Lock()
	defer it.mu.Unlock()

	drained := it.problems
	it.problems = nil
	if drained == nil {
		return []entities.Problem{}
	}
	return drained
}
