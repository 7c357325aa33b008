package redmine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrIssueMissing is wrapped by FetchError when the response has no issue.
var ErrIssueMissing = errors.New("issue missing from response")

// FetchError reports that an issue's schedule could not be read.
type FetchError struct {
	IssueID int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching issue #%d: %v", e.IssueID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PermissionError reports an authorization rejection (HTTP 403).
type PermissionError struct {
	IssueID int
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("updating issue #%d: permission denied", e.IssueID)
}

// ValidationError reports a payload rejected with field-level reasons.
type ValidationError struct {
	IssueID int
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("updating issue #%d: validation failed: %s", e.IssueID, strings.Join(e.Reasons, ", "))
}

// TransportError is any other failed write: network errors and unexpected
// status codes.
type TransportError struct {
	IssueID    int
	Status     int
	StatusText string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("updating issue #%d: %v", e.IssueID, e.Err)
	}
	return fmt.Sprintf("updating issue #%d: %d %s", e.IssueID, e.Status, e.StatusText)
}

func (e *TransportError) Unwrap() error { return e.Err }

// statusText returns the reason phrase of resp.Status, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// errorCode maps an error to the short code reported to observers.
func errorCode(err error) string {
	var (
		fetchErr      *FetchError
		permErr       *PermissionError
		validationErr *ValidationError
		transportErr  *TransportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fetchErr):
		return "FETCH"
	case errors.As(err, &permErr):
		return "PERMISSION"
	case errors.As(err, &validationErr):
		return "VALIDATION"
	case errors.As(err, &transportErr):
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}
