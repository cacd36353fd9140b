package order

import (
	"fmt"
	"strings"

	"shoporders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Placed ──> Preparing ──> ReadyForPickup ──> Completed
//	   │           │
//	   └───────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Any other move, including skipping a state,
// is rejected with errs.StatusTransitionIsInvalidError.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of every new order.
	Placed

	// Preparing means the vendor accepted the order and is working on it.
	Preparing

	// ReadyForPickup means the order waits at the counter.
	ReadyForPickup

	// Completed means the customer collected the order. Terminal.
	Completed

	// Cancelled means the order was abandoned before it was ready. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Placed:         "PLACED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		Completed:      "COMPLETED",
		Cancelled:      "CANCELLED",
	}
}

// getTransitions lists the statuses reachable from each non-terminal status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Placed:         {Preparing, Cancelled},
		Preparing:      {ReadyForPickup, Cancelled},
		ReadyForPickup: {Completed},
	}
}

// ParseStatus converts a wire name such as "READY_FOR_PICKUP" into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Placed, Preparing, ReadyForPickup, Completed, Cancelled}
}

// Validate checks if the Status value is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether next is directly reachable from s.
// It does not treat next == s as reachable; TransitionTo handles that case.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates a move to next and returns the resulting status.
//
// Returns:
//   - (next, true, nil) when the move is allowed
//   - (s, false, nil) when next equals s; resubmitting the current status is idempotent
//   - (s, false, error) when either status is invalid or the move is not allowed
func (s Status) TransitionTo(next Status) (Status, bool, error) {
	if err := s.Validate(); err != nil {
		return s, false, err
	}
	if err := next.Validate(); err != nil {
		return s, false, err
	}

	if s == next {
		return s, false, nil
	}

	if s.IsTerminal() {
		return s, false, errs.NewStatusTransitionIsInvalidErrorWithCause(
			s.String(), next.String(), fmt.Errorf("%s is a final status", s),
		)
	}

	if !s.CanTransitionTo(next) {
		return s, false, errs.NewStatusTransitionIsInvalidError(s.String(), next.String())
	}

	return next, true, nil
}

// MarshalText encodes the status as its wire name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText or sent by a client.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
