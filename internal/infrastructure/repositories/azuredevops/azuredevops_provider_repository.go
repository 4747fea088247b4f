package azuredevops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

const (
	providerName   = "azuredevops"
	apiVersion     = "7.0"
	cloudHost      = "https://dev.azure.com/"
	blobType       = "blob"
	requestTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// AzureDevOpsProviderRepository implements repositories.ProviderRepository for
// Azure DevOps. The base URL is the organization URL.
type AzureDevOpsProviderRepository struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAzureDevOpsProviderRepository creates an Azure DevOps provider. A bare
// organization name is resolved against dev.azure.com.
func NewAzureDevOpsProviderRepository(organization, pat string) *AzureDevOpsProviderRepository {
	return &AzureDevOpsProviderRepository{
		baseURL:    normalizeOrganizationURL(organization),
		token:      pat,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewProviderRepository is the registry factory for Azure DevOps.
func NewProviderRepository(baseURL, token string) repositories.ProviderRepository {
	return NewAzureDevOpsProviderRepository(baseURL, token)
}

func normalizeOrganizationURL(organization string) string {
	org := strings.TrimRight(strings.TrimSpace(organization), "/")
	switch {
	case strings.Contains(org, "://"):
		return org
	case strings.Contains(org, "."):
		return "https://" + org
	default:
		return cloudHost + org
	}
}

func (p *AzureDevOpsProviderRepository) Name() string { return providerName }

// BaseURL returns the organization URL requests are sent to.
func (p *AzureDevOpsProviderRepository) BaseURL() string { return p.baseURL }

type repositoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemDTO struct {
	GitObjectType string `json:"gitObjectType"`
	Path          string `json:"path"`
}

// ListRepositories returns the Git repositories of the project.
func (p *AzureDevOpsProviderRepository) ListRepositories(
	ctx context.Context,
	project string,
) ([]entities.Repository, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories?api-version=%s", url.PathEscape(project), apiVersion)

	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %q: %w", project, err)
	}

	var result struct {
		Value []repositoryDTO `json:"value"`
	}
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: failed to parse repositories response: %w", repositories.ErrTransport, unmarshalErr)
	}

	repos := make([]entities.Repository, 0, len(result.Value))
	for _, r := range result.Value {
		repos = append(repos, entities.Repository{
			Slug:    r.Name,
			Name:    r.Name,
			Project: project,
		})
	}
	return repos, nil
}

// ListFiles returns the blob paths of the default branch ending in suffix,
// relative to the repository root.
func (p *AzureDevOpsProviderRepository) ListFiles(
	ctx context.Context,
	project, repoSlug, suffix string,
) ([]string, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?recursionLevel=Full&api-version=%s",
		url.PathEscape(project), url.PathEscape(repoSlug), apiVersion)

	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of %q: %w", repoSlug, err)
	}

	var result struct {
		Value []itemDTO `json:"value"`
	}
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: failed to parse items response: %w", repositories.ErrTransport, unmarshalErr)
	}

	var files []string
	for _, item := range result.Value {
		if item.GitObjectType != blobType {
			continue
		}
		path := strings.TrimPrefix(item.Path, "/")
		if strings.HasSuffix(path, suffix) {
			files = append(files, path)
		}
	}
	return files, nil
}

// GetFileContent downloads the raw file and splits it into lines.
func (p *AzureDevOpsProviderRepository) GetFileContent(
	ctx context.Context,
	project, repoSlug, path string,
) ([]string, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?path=%s&$format=octetStream&api-version=%s",
		url.PathEscape(project), url.PathEscape(repoSlug), url.QueryEscape("/"+strings.TrimPrefix(path, "/")), apiVersion)

	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %q: %w", path, err)
	}
	return entities.SplitLines(string(body)), nil
}

func (p *AzureDevOpsProviderRepository) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", repositories.ErrTransport, err)
	}

	// Basic auth with an empty user and the PAT as password
	auth := base64.StdEncoding.EncodeToString([]byte(":" + p.token))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", repositories.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", repositories.ErrTransport, err)
	}

	// A rejected PAT is answered with 203 and the HTML sign-in page
	if resp.StatusCode == http.StatusNonAuthoritativeInfo {
		return nil, fmt.Errorf("%w: token rejected (status %d)", repositories.ErrAuth, resp.StatusCode)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: API error (status %d): %s",
			repositories.ErrorForStatus(resp.StatusCode), resp.StatusCode, string(body))
	}

	return body, nil
}
