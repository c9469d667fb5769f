package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes of a profile lookup.
// Match them with errors.Is.
var (
	ErrEmptyUsername   = errors.New("empty username")
	ErrUserNotFound    = errors.New("user not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstream        = errors.New("upstream error")
	ErrNetwork         = errors.New("network error")
	ErrRepositoryFetch = errors.New("repository fetch failed")
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// FetchError is a classified failure of FetchProfile.
type FetchError struct {
	Kind     error  // one of the sentinel errors above
	Status   int    // HTTP status, 0 when no response was received
	Username string // the username that was looked up
	Err      error  // underlying cause
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Unwrap exposes both the classification and the cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message renders the user-facing text for e.
func (e *FetchError) Message() string {
	switch e.Kind {
	case ErrEmptyUsername:
		return "Please enter a GitHub username"
	case ErrUserNotFound:
		return fmt.Sprintf("User %q not found on GitHub", e.Username)
	case ErrRateLimited:
		return "GitHub API rate limit exceeded. Try again later."
	case ErrRepositoryFetch:
		return "Failed to fetch repositories"
	case ErrNetwork:
		return "Network error: could not reach GitHub"
	default:
		if e.Status >= 200 && e.Status < 300 {
			return "Error: unreadable response from GitHub"
		}
		return fmt.Sprintf("Error: %d %s", e.Status, http.StatusText(e.Status))
	}
}

// Message returns the one-line text shown to the user for any error
// produced by this package. Unclassified errors render as their Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return err.Error()
}

// classifyProfileStatus maps a failed profile lookup status to its class.
func classifyProfileStatus(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusForbidden:
		return ErrRateLimited
	default:
		return ErrUpstream
	}
}
