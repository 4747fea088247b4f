package repositories

import (
	"fmt"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	domainRepos "github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

// OutputRegistry maps each output kind to the repository that delivers it.
type OutputRegistry struct {
	outputs map[entities.OutputKind]domainRepos.OutputRepository
}

// NewOutputRegistry creates an empty output registry.
func NewOutputRegistry() *OutputRegistry {
	return &OutputRegistry{
		outputs: make(map[entities.OutputKind]domainRepos.OutputRepository),
	}
}

// Register sets the output used for kind.
func (r *OutputRegistry) Register(kind entities.OutputKind, output domainRepos.OutputRepository) {
	r.outputs[kind] = output
}

// Get returns the output registered for kind.
func (r *OutputRegistry) Get(kind entities.OutputKind) (domainRepos.OutputRepository, error) {
	output, ok := r.outputs[kind]
	if !ok {
		return nil, fmt.Errorf("no output registered for kind %q", kind)
	}
	return output, nil
}
