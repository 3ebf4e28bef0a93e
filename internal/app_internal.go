package internal

import (
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories/logging"
)

// AppInternal holds everything the entry point needs after injection.
type AppInternal struct {
	controllers *[]entities.Controller
	problems    *logging.ProblemRepository
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(
	controllers *[]entities.Controller,
	problems *logging.ProblemRepository,
) *AppInternal {
	return &AppInternal{controllers: controllers, problems: problems}
}

// GetControllers returns the registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}

// GetProblemHook returns the hook that collects problems for the report.
func (it *AppInternal) GetProblemHook() *logging.ProblemRepository {
	return it.problems
}
