package controllers

import (
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewExportController); err != nil {
		return err
	}
	if err := container.Provide(NewRenderController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	exportController *ExportController,
	renderController *RenderController,
) *[]entities.Controller {
	return &[]entities.Controller{
		exportController,
		renderController,
	}
}
