package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
	blobType     = "blob"
	defaultRef   = "HEAD"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
// The project is a group path; repositories of subgroups are included and their
// slug keeps the subgroup path. Owned projects listed as a fallback live in other
// namespaces, so the full path of every listed project is kept per slug.
type GitLabProviderRepository struct {
	client  *gl.Client
	initErr error

	mu    sync.RWMutex
	paths map[string]string // "group/slug" -> path with namespace
}

// NewGitLabProviderRepository creates a GitLab provider. An empty base URL uses gitlab.com.
func NewGitLabProviderRepository(baseURL, token string) *GitLabProviderRepository {
	var opts []gl.ClientOptionFunc
	if baseURL != "" {
		url := baseURL
		if !strings.Contains(url, "://") {
			url = "https://" + url
		}
		opts = append(opts, gl.WithBaseURL(strings.TrimRight(url, "/")))
	}

	client, err := gl.NewClient(token, opts...)
	if err != nil {
		// Fail on use rather than at construction
		return &GitLabProviderRepository{initErr: fmt.Errorf("%w: %w", errClientNotInitialized, err)}
	}
	return &GitLabProviderRepository{client: client, paths: make(map[string]string)}
}

// NewProviderRepository is the registry factory for GitLab.
func NewProviderRepository(baseURL, token string) repositories.ProviderRepository {
	return NewGitLabProviderRepository(baseURL, token)
}

func (p *GitLabProviderRepository) Name() string { return providerName }

// ListRepositories lists all projects in a GitLab group, falling back to the
// projects owned by the authenticated user when the group does not exist.
func (p *GitLabProviderRepository) ListRepositories(
	ctx context.Context,
	project string,
) ([]entities.Repository, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	var allRepos []entities.Repository
	opts := &gl.ListGroupProjectsOptions{
		ListOptions:      gl.ListOptions{PerPage: perPage},
		IncludeSubGroups: gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Groups.ListGroupProjects(
			project, opts, gl.WithContext(ctx),
		)
		if err != nil {
			if isNotFound(resp) && opts.Page == 0 {
				return p.listOwnedProjects(ctx, project)
			}
			return nil, translateError(fmt.Sprintf("failed to list projects of %q", project), resp, err)
		}

		for _, proj := range projects {
			allRepos = append(allRepos, p.remember(project, proj))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitLabProviderRepository) listOwnedProjects(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Owned:       gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Projects.ListProjects(
			opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, translateError(fmt.Sprintf("failed to list projects for %q", user), resp, err)
		}

		for _, proj := range projects {
			allRepos = append(allRepos, p.remember(user, proj))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// remember converts proj and records where it lives. Projects inside group get a
// slug relative to it; any other project is identified by its full path.
func (p *GitLabProviderRepository) remember(group string, proj *gl.Project) entities.Repository {
	slug := proj.PathWithNamespace
	if rel, ok := strings.CutPrefix(proj.PathWithNamespace, group+"/"); ok {
		slug = rel
	}
	if slug == "" {
		slug = proj.Path
	}

	if proj.PathWithNamespace != "" {
		p.mu.Lock()
		p.paths[group+"/"+slug] = proj.PathWithNamespace
		p.mu.Unlock()
	}

	return entities.Repository{
		Slug:    slug,
		Name:    proj.Name,
		Project: group,
	}
}

// ListFiles walks the repository tree on the default branch, one page at a time.
func (p *GitLabProviderRepository) ListFiles(
	ctx context.Context,
	project, repoSlug, suffix string,
) ([]string, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	var allFiles []string
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Recursive:   gl.Ptr(true),
	}

	for {
		nodes, resp, err := p.client.Repositories.ListTree(
			p.projectID(project, repoSlug),
			opts,
			gl.WithContext(ctx),
		)
		if err != nil {
			return nil, translateError("failed to list tree", resp, err)
		}

		for _, node := range nodes {
			if node.Type != blobType {
				continue
			}
			if suffix != "" && !strings.HasSuffix(node.Path, suffix) {
				continue
			}
			allFiles = append(allFiles, node.Path)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// GetFileContent returns the raw file content split into lines.
func (p *GitLabProviderRepository) GetFileContent(
	ctx context.Context,
	project, repoSlug, path string,
) ([]string, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	raw, resp, err := p.client.RepositoryFiles.GetRawFile(
		p.projectID(project, repoSlug), path,
		&gl.GetRawFileOptions{Ref: gl.Ptr(defaultRef)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, translateError(fmt.Sprintf("failed to get file %q", path), resp, err)
	}

	return entities.SplitLines(string(raw)), nil
}

// projectID returns the full path of a listed project, or group/slug for one
// that was never listed.
func (p *GitLabProviderRepository) projectID(group, slug string) string {
	key := group + "/" + slug

	p.mu.RLock()
	defer p.mu.RUnlock()
	if path, ok := p.paths[key]; ok {
		return path
	}
	return key
}

func isNotFound(resp *gl.Response) bool {
	return resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound
}

// translateError maps GitLab failures onto the provider error taxonomy.
func translateError(msg string, resp *gl.Response, err error) error {
	sentinel := repositories.ErrTransport
	if resp != nil && resp.Response != nil {
		sentinel = repositories.ErrorForStatus(resp.StatusCode)
	}
	return fmt.Errorf("%s: %w", msg, errors.Join(sentinel, err))
}
