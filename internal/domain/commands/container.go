package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewGitPublisherCommand); err != nil {
		return err
	}
	if err := container.Provide(NewExportCommand); err != nil {
		return err
	}
	if err := container.Provide(NewIngestCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRenderCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *GitPublisherCommand) GitPublisher {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ExportCommand) Export {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *IngestCommand) Ingest {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RenderCommand) Render {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
