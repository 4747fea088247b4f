package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a ProviderRepository for an instance URL and token.
type ProviderFactory func(baseURL, token string) domainRepos.ProviderRepository

// ProviderRegistry manages all registered hosting provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "bitbucket").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name, URL and token.
func (r *ProviderRegistry) Get(name, baseURL, token string) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	return factory(baseURL, token), nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
