package internal

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/statsexport/internal/domain/commands"
	"github.com/rios0rios0/statsexport/internal/domain/entities"
	"github.com/rios0rios0/statsexport/internal/infrastructure/controllers"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories"
)

type providerLayer struct {
	name     string
	register func(container *dig.Container) error
}

// RegisterProviders registers every layer bottom-up, then the AppInternal
// that the entry point invokes. All layers share one container so the
// problem hook handed to the logger is the one the commands drain.
func RegisterProviders(container *dig.Container) error {
	layers := []providerLayer{
		{name: "repositories", register: repositories.RegisterProviders},
		{name: "entities", register: entities.RegisterProviders},
		{name: "commands", register: commands.RegisterProviders},
		{name: "controllers", register: controllers.RegisterProviders},
	}
	for _, layer := range layers {
		if err := layer.register(container); err != nil {
			return fmt.Errorf("failed to register %s providers: %w", layer.name, err)
		}
	}

	if err := container.Provide(NewAppInternal); err != nil {
		return fmt.Errorf("failed to register app internal: %w", err)
	}
	return nil
}
