package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/redmine"
)

// Outcome is what the UI must do after a write attempt.
type Outcome struct {
	// Reload rebuilds the chart from the server.
	Reload bool
	// Revert restores the gesture's baseline instead of reloading.
	Revert bool
	// Notice is shown in a blocking notification when not empty.
	Notice string
}

// ClassifyError maps a write result to the required reaction. Every failed
// write is reported and followed by a reload, except a failed authoritative
// fetch which reverts the gesture. silent suppresses the reload after a
// success.
func ClassifyError(err error, s domain.Strings, silent bool) Outcome {
	var (
		fetchErr      *redmine.FetchError
		permErr       *redmine.PermissionError
		validationErr *redmine.ValidationError
		transportErr  *redmine.TransportError
	)
	switch {
	case err == nil:
		return Outcome{Reload: !silent}
	case errors.Is(err, ErrNoChange):
		return Outcome{}
	case errors.As(err, &fetchErr):
		return Outcome{Revert: true, Notice: s.ErrorFetchIssue}
	case errors.Is(err, ErrBoundAbsent):
		return Outcome{Reload: true}
	case errors.As(err, &permErr):
		return Outcome{Reload: true, Notice: s.ErrorPermissionDenied}
	case errors.As(err, &validationErr):
		return Outcome{Reload: true, Notice: s.ErrorValidationFailed + ":\n" + strings.Join(validationErr.Reasons, "\n")}
	case errors.As(err, &transportErr):
		if transportErr.Status == 0 {
			return Outcome{Reload: true, Notice: fmt.Sprintf("%s: %v", s.ErrorUpdateFailed, transportErr.Err)}
		}
		return Outcome{Reload: true, Notice: fmt.Sprintf("%s: %d %s", s.ErrorUpdateFailed, transportErr.Status, transportErr.StatusText)}
	default:
		return Outcome{Reload: true, Notice: fmt.Sprintf("%s: %v", s.ErrorUpdateFailed, err)}
	}
}

// editOutcome maps a write result to its journal classification.
func editOutcome(err error) domain.EditOutcome {
	var (
		fetchErr      *redmine.FetchError
		permErr       *redmine.PermissionError
		validationErr *redmine.ValidationError
	)
	switch {
	case err == nil:
		return domain.OutcomeApplied
	case errors.As(err, &fetchErr):
		return domain.OutcomeFetch
	case errors.Is(err, ErrBoundAbsent):
		return domain.OutcomeAbandoned
	case errors.As(err, &permErr):
		return domain.OutcomePermission
	case errors.As(err, &validationErr):
		return domain.OutcomeValidation
	default:
		return domain.OutcomeTransport
	}
}
