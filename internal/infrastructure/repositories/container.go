package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	adoRepo "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories/azuredevops"
	bbRepo "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories/bitbucket"
	ghRepo "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories/gitlab"
	outRepo "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories/output"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("azuredevops", adoRepo.NewProviderRepository)
		reg.Register("bitbucket", bbRepo.NewProviderRepository)
		reg.Register("github", ghRepo.NewProviderRepository)
		reg.Register("gitlab", glRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *OutputRegistry {
		reg := NewOutputRegistry()
		reg.Register(entities.OutputConsole, outRepo.NewConsoleOutputRepository())
		fileOutput := outRepo.NewFileOutputRepository()
		reg.Register(entities.OutputTxt, fileOutput)
		reg.Register(entities.OutputMd, fileOutput)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
