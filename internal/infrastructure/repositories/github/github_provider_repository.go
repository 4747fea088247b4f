package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
	publicHost   = "github.com"
	blobType     = "blob"
	defaultRef   = "HEAD"
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub
// and GitHub Enterprise. The project is an organization or, failing that, a user.
type GitHubProviderRepository struct {
	client  *gh.Client
	initErr error
}

// NewGitHubProviderRepository creates a GitHub provider. An empty base URL or one
// pointing at github.com uses the public API; anything else is treated as an
// Enterprise instance.
func NewGitHubProviderRepository(baseURL, token string) *GitHubProviderRepository {
	client := gh.NewClient(nil).WithAuthToken(token)
	if isPublicHost(baseURL) {
		return &GitHubProviderRepository{client: client}
	}

	url := baseURL
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	url = strings.TrimRight(url, "/") + "/"

	enterprise, err := client.WithEnterpriseURLs(url, url)
	if err != nil {
		return &GitHubProviderRepository{initErr: fmt.Errorf("invalid GitHub URL %q: %w", baseURL, err)}
	}
	return &GitHubProviderRepository{client: enterprise}
}

// NewProviderRepository is the registry factory for GitHub.
func NewProviderRepository(baseURL, token string) repositories.ProviderRepository {
	return NewGitHubProviderRepository(baseURL, token)
}

func isPublicHost(baseURL string) bool {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	return host == "" || host == publicHost || host == "api."+publicHost
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// ListRepositories lists the repositories of an organization, falling back to
// the repositories owned by a user of that name.
func (p *GitHubProviderRepository) ListRepositories(
	ctx context.Context,
	project string,
) ([]entities.Repository, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	var allRepos []entities.Repository
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByOrg(ctx, project, opts)
		if err != nil {
			if isNotFound(resp) && opts.Page == 0 {
				return p.listUserRepositories(ctx, project)
			}
			return nil, translateError(fmt.Sprintf("failed to list repos for %q", project), resp, err)
		}

		for _, r := range repos {
			allRepos = append(allRepos, toRepository(project, r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitHubProviderRepository) listUserRepositories(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
		Type:        "owner",
	}

	for {
		repos, resp, err := p.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, translateError(fmt.Sprintf("failed to list repos for %q", user), resp, err)
		}

		for _, r := range repos {
			allRepos = append(allRepos, toRepository(user, r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func toRepository(project string, r *gh.Repository) entities.Repository {
	return entities.Repository{
		Slug:    r.GetName(),
		Name:    r.GetName(),
		Project: project,
	}
}

// ListFiles walks the default branch tree and returns the blob paths ending in suffix.
// A tree GitHub truncated is an error, since the listing would be incomplete.
func (p *GitHubProviderRepository) ListFiles(
	ctx context.Context,
	project, repoSlug, suffix string,
) ([]string, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	tree, resp, err := p.client.Git.GetTree(ctx, project, repoSlug, defaultRef, true)
	if err != nil {
		return nil, translateError("failed to get repo tree", resp, err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf(
			"%w: tree of %s/%s is too large and was truncated", repositories.ErrTransport, project, repoSlug,
		)
	}

	var files []string
	for _, entry := range tree.Entries {
		if entry.GetType() != blobType {
			continue
		}
		if suffix != "" && !strings.HasSuffix(entry.GetPath(), suffix) {
			continue
		}
		files = append(files, entry.GetPath())
	}
	return files, nil
}

// GetFileContent returns the decoded file content split into lines.
func (p *GitHubProviderRepository) GetFileContent(
	ctx context.Context,
	project, repoSlug, path string,
) ([]string, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	fileContent, _, resp, err := p.client.Repositories.GetContents(
		ctx, project, repoSlug, path,
		&gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return nil, translateError(fmt.Sprintf("failed to get file %q", path), resp, err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("path %q is a directory, not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}

	return entities.SplitLines(content), nil
}

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound
}

// translateError maps GitHub failures onto the provider error taxonomy.
func translateError(msg string, resp *gh.Response, err error) error {
	sentinel := repositories.ErrTransport
	if resp != nil && resp.Response != nil {
		sentinel = repositories.ErrorForStatus(resp.StatusCode)
	}
	return fmt.Errorf("%s: %w", msg, errors.Join(sentinel, err))
}
