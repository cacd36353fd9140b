package errs

import (
	"errors"
	"fmt"
)

// ErrStatusTransitionIsInvalid is the sentinel wrapped by every StatusTransitionIsInvalidError.
var ErrStatusTransitionIsInvalid = errors.New("status transition is invalid")

// StatusTransitionIsInvalidError reports a lifecycle change the state machine does not allow.
// It is distinct from ErrValueIsInvalid so callers can tell a bad request from a conflicting one.
type StatusTransitionIsInvalidError struct {
	From  string
	To    string
	Cause error
}

// NewStatusTransitionIsInvalidError creates a StatusTransitionIsInvalidError.
func NewStatusTransitionIsInvalidError(from, to string) *StatusTransitionIsInvalidError {
	return &StatusTransitionIsInvalidError{
		From: from,
		To:   to,
	}
}

// NewStatusTransitionIsInvalidErrorWithCause creates a StatusTransitionIsInvalidError with a reason.
func NewStatusTransitionIsInvalidErrorWithCause(from, to string, cause error) *StatusTransitionIsInvalidError {
	return &StatusTransitionIsInvalidError{
		From:  from,
		To:    to,
		Cause: cause,
	}
}

func (e *StatusTransitionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrStatusTransitionIsInvalid, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrStatusTransitionIsInvalid, e.From, e.To)
}

func (e *StatusTransitionIsInvalidError) Unwrap() error {
	return ErrStatusTransitionIsInvalid
}
