//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
// GetFileContent is called concurrently, so every spy field it touches is guarded.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories   []entities.Repository
	ListReposErr   error
	ListedProjects []string

	// --- ListFiles ---
	Files          map[string][]string // repo slug -> paths
	ListFilesErr   error
	ListedRepos    []string
	ListedSuffixes []string

	// --- GetFileContent ---
	FileContents map[string][]string // "slug/path" -> lines
	FileErrs     map[string]error    // "slug/path" -> error

	mu           sync.Mutex
	FetchedFiles []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

// FileKey builds the key used by FileContents and FileErrs.
func FileKey(repoSlug, path string) string {
	return repoSlug + "/" + path
}

func (p *SpyProviderRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyProviderRepository) ListRepositories(
	_ context.Context, project string,
) ([]entities.Repository, error) {
	p.ListedProjects = append(p.ListedProjects, project)
	return p.Repositories, p.ListReposErr
}

func (p *SpyProviderRepository) ListFiles(
	_ context.Context, _ string, repoSlug, suffix string,
) ([]string, error) {
	p.ListedRepos = append(p.ListedRepos, repoSlug)
	p.ListedSuffixes = append(p.ListedSuffixes, suffix)
	if p.ListFilesErr != nil {
		return nil, p.ListFilesErr
	}
	return p.Files[repoSlug], nil
}

func (p *SpyProviderRepository) GetFileContent(
	_ context.Context, _ string, repoSlug, path string,
) ([]string, error) {
	key := FileKey(repoSlug, path)

	p.mu.Lock()
	p.FetchedFiles = append(p.FetchedFiles, key)
	p.mu.Unlock()

	if err, ok := p.FileErrs[key]; ok {
		return nil, err
	}
	if lines, ok := p.FileContents[key]; ok {
		return lines, nil
	}
	return nil, fmt.Errorf("file not found: %s", key)
}

// Fetched returns a snapshot of the files requested so far.
func (p *SpyProviderRepository) Fetched() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.FetchedFiles))
	copy(out, p.FetchedFiles)
	return out
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (d *DummyProviderRepository) Name() string { return "dummy" }

func (d *DummyProviderRepository) ListRepositories(
	_ context.Context, _ string,
) ([]entities.Repository, error) {
	return nil, nil
}

func (d *DummyProviderRepository) ListFiles(
	_ context.Context, _, _, _ string,
) ([]string, error) {
	return nil, nil
}

func (d *DummyProviderRepository) GetFileContent(
	_ context.Context, _, _, _ string,
) ([]string, error) {
	return nil, nil
}
