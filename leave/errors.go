/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The store and api packages wrap these with additional context.

ERROR CATEGORIES:
  1. NotFound errors      - missing employee or request references
  2. PolicyViolationError - an eligibility rule denied a request; always
                            recoverable and always carries a human-readable
                            reason for the submitting user
  3. InvalidRange         - reversed date range in day counting
  4. TerminalState        - approve/reject attempted on a settled request

USAGE:
  if errors.Is(err, leave.ErrPolicyViolation) {
      var pv *leave.PolicyViolationError
      errors.As(err, &pv)
      // show pv.Reason to the user
  }
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRequestNotFound is returned when a referenced request doesn't exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrInvalidRange is returned when a start date is after its end date.
	ErrInvalidRange = errors.New("invalid range: start date after end date")

	// ErrPolicyViolation is the sentinel wrapped by PolicyViolationError.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrTerminalState is returned when transitioning a request that is
	// already approved or rejected. Terminal states are final.
	ErrTerminalState = errors.New("request already settled")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PolicyViolationError is returned when an eligibility rule denies a
// requested leave or encashment. Reason is shown to the submitting user.
type PolicyViolationError struct {
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("policy violation: %s", e.Reason)
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrPolicyViolation
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrRequestNotFound)
}

// IsClientError returns true if the error is due to invalid client input
// rather than an engine fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrPolicyViolation) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrTerminalState)
}
