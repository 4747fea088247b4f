package repositories

import (
	"context"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

// ProviderRepository abstracts a source-code hosting service that groups repositories
// into projects. Implementations hide pagination and translate HTTP failures into
// errors, so callers only ever see whole collections.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "bitbucket").
	Name() string

	// ListRepositories returns every repository of the project in the order the API returns them.
	ListRepositories(ctx context.Context, project string) ([]entities.Repository, error)

	// ListFiles returns the repository-relative paths ending with suffix.
	// An empty suffix returns every file.
	ListFiles(ctx context.Context, project, repoSlug, suffix string) ([]string, error)

	// GetFileContent returns the lines of a file, split on its own line breaks.
	GetFileContent(ctx context.Context, project, repoSlug, path string) ([]string, error)
}
