package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/dnscache"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

const (
	providerName     = "bitbucket"
	apiPrefix        = "/rest/api/1.0"
	reposPageLimit   = 100
	filesPageLimit   = 1000
	requestTimeout   = 30 * time.Second
	maxErrorBodySize = 512
)

// BitbucketProviderRepository implements repositories.ProviderRepository for Bitbucket Server.
type BitbucketProviderRepository struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pageLimit  int
}

// Option configures a BitbucketProviderRepository.
type Option func(*BitbucketProviderRepository)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *BitbucketProviderRepository) {
		p.httpClient = c
	}
}

// WithPageLimit overrides the page size requested from list endpoints.
func WithPageLimit(limit int) Option {
	return func(p *BitbucketProviderRepository) {
		if limit > 0 {
			p.pageLimit = limit
		}
	}
}

// NewBitbucketProviderRepository creates a provider for the instance at baseURL.
// The URL may be given without a scheme, in which case HTTPS is assumed.
func NewBitbucketProviderRepository(baseURL, token string, opts ...Option) *BitbucketProviderRepository {
	p := &BitbucketProviderRepository{
		baseURL:    normalizeBaseURL(baseURL),
		token:      token,
		httpClient: newHTTPClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewProviderRepository is the registry factory for Bitbucket Server.
func NewProviderRepository(baseURL, token string) repositories.ProviderRepository {
	return NewBitbucketProviderRepository(baseURL, token)
}

// newHTTPClient builds a client whose dialer caches DNS lookups, since every file
// of a repository is requested from the same host at once.
func newHTTPClient() *http.Client {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   requestTimeout,
		KeepAlive: requestTimeout,
	}

	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := resolver.LookupHost(ctx, host)
				if err != nil {
					return nil, err
				}
				var lastErr error
				for _, ip := range ips {
					conn, dialErr := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
					if dialErr == nil {
						return conn, nil
					}
					lastErr = dialErr
				}
				if lastErr == nil {
					return nil, fmt.Errorf("no IP resolved for %s", host)
				}
				return nil, fmt.Errorf("failed to dial any resolved IP for %s: %w", host, lastErr)
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base
}

func (p *BitbucketProviderRepository) Name() string { return providerName }

// BaseURL returns the normalized base URL of the instance.
func (p *BitbucketProviderRepository) BaseURL() string { return p.baseURL }

// page is the envelope of every paged Bitbucket Server response.
type page[T any] struct {
	Values        []T  `json:"values"`
	IsLastPage    bool `json:"isLastPage"`
	Start         int  `json:"start"`
	NextPageStart *int `json:"nextPageStart"`
}

type repositoryResponse struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Project struct {
		Key string `json:"key"`
	} `json:"project"`
}

// ListRepositories lists all repositories in a project, following every page.
func (p *BitbucketProviderRepository) ListRepositories(
	ctx context.Context,
	project string,
) ([]entities.Repository, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/repos", apiPrefix, url.PathEscape(project))

	values, err := fetchAllPages[repositoryResponse](ctx, p, endpoint, p.limitOr(reposPageLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %q: %w", project, err)
	}

	repos := make([]entities.Repository, 0, len(values))
	for _, v := range values {
		projectKey := v.Project.Key
		if projectKey == "" {
			projectKey = project
		}
		repos = append(repos, entities.Repository{
			Slug:    v.Slug,
			Name:    v.Name,
			Project: projectKey,
		})
	}
	return repos, nil
}

// ListFiles lists every file path of the repository's default branch and keeps those
// ending with suffix. The suffix is a literal, case-sensitive match.
func (p *BitbucketProviderRepository) ListFiles(
	ctx context.Context,
	project, repoSlug, suffix string,
) ([]string, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/repos/%s/files",
		apiPrefix, url.PathEscape(project), url.PathEscape(repoSlug))

	paths, err := fetchAllPages[string](ctx, p, endpoint, p.limitOr(filesPageLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list files of %s/%s: %w", project, repoSlug, err)
	}

	if suffix == "" {
		return paths, nil
	}

	var matched []string
	for _, path := range paths {
		if strings.HasSuffix(path, suffix) {
			matched = append(matched, path)
		}
	}
	return matched, nil
}

// GetFileContent fetches the raw content of a file and splits it into lines.
func (p *BitbucketProviderRepository) GetFileContent(
	ctx context.Context,
	project, repoSlug, path string,
) ([]string, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/repos/%s/raw/%s",
		apiPrefix, url.PathEscape(project), url.PathEscape(repoSlug), escapePath(path))

	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %q: %w", path, err)
	}

	return entities.SplitLines(string(body)), nil
}

func escapePath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func (p *BitbucketProviderRepository) limitOr(fallback int) int {
	if p.pageLimit > 0 {
		return p.pageLimit
	}
	return fallback
}

// fetchAllPages requests endpoint page after page until the API reports the last one.
func fetchAllPages[T any](
	ctx context.Context,
	p *BitbucketProviderRepository,
	endpoint string,
	limit int,
) ([]T, error) {
	var all []T
	start := 0

	for {
		query := url.Values{}
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(limit))

		body, err := p.doRequest(ctx, endpoint+"?"+query.Encode())
		if err != nil {
			return nil, err
		}

		var result page[T]
		if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
			return nil, fmt.Errorf(
				"%w: failed to parse page at start %d: %w", repositories.ErrTransport, start, unmarshalErr,
			)
		}

		all = append(all, result.Values...)

		if result.IsLastPage {
			break
		}
		if result.NextPageStart == nil || *result.NextPageStart <= start {
			return nil, fmt.Errorf("%w: pagination did not advance past start %d", repositories.ErrTransport, start)
		}

		logger.Debugf("Fetching next page of %s at start %d", endpoint, *result.NextPageStart)
		start = *result.NextPageStart
	}

	return all, nil
}

func (p *BitbucketProviderRepository) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	requestURL := p.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", repositories.ErrTransport, err)
	}

	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", repositories.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", repositories.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        requestURL,
			Body:       truncate(string(respBody), maxErrorBodySize),
		}
	}

	return respBody, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
