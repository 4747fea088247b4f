package bitbucket

import (
	"fmt"

	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

// HTTPError represents a non-2xx response from the Bitbucket API.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error (status %d) for %s: %s", e.StatusCode, e.URL, e.Body)
}

// Unwrap maps the status code onto the provider error taxonomy.
func (e *HTTPError) Unwrap() error {
	return repositories.ErrorForStatus(e.StatusCode)
}
