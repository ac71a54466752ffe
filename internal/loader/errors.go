package loader

import (
	"fmt"
	"net/http"
)

// SourceFetchError indicates the source could not be reached or read:
// network failures, non-2xx responses, missing files.
type SourceFetchError struct {
	Locator string
	Err     error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// ParseError indicates the fetched content is not a readable table.
type ParseError struct {
	Locator string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Locator, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response. Body holds a short excerpt.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Temporary reports whether the request may succeed when retried.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || (e.StatusCode >= 500 && e.StatusCode <= 599)
}
