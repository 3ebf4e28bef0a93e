package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/statsexport/internal/domain/repositories"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories/cli"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories/logging"
	"github.com/rios0rios0/statsexport/internal/infrastructure/repositories/s3"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register concrete repositories
	if err := container.Provide(cli.NewCommandRepository); err != nil {
		return err
	}
	if err := container.Provide(filesystem.NewFileRepository); err != nil {
		return err
	}
	if err := container.Provide(s3.NewObjectStorageRepository); err != nil {
		return err
	}
	if err := container.Provide(logging.NewProblemRepository); err != nil {
		return err
	}

	// Bind domain interfaces to implementations
	if err := container.Provide(func(impl *cli.CommandRepository) domainRepos.CommandRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *filesystem.FileRepository) domainRepos.FileRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *s3.ObjectStorageRepository) domainRepos.ObjectStorageRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *logging.ProblemRepository) domainRepos.ProblemRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
