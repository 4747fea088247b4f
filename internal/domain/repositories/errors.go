package repositories

import (
	"errors"
	"net/http"
)

var (
	// ErrTransport covers network failures, unreadable or undecodable responses and unexpected statuses.
	ErrTransport = errors.New("provider transport error")
	// ErrAuth is returned when the token is rejected or lacks permission.
	ErrAuth = errors.New("provider authentication error")
	// ErrNotFound is returned when the project, repository or file does not exist.
	ErrNotFound = errors.New("provider resource not found")
)

// ErrorForStatus maps an HTTP status code onto the provider error taxonomy.
func ErrorForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrTransport
	}
}
