/*
txlog.go - Append-only audit trail of balance deductions

PURPOSE:
  Every approved deduction is recorded as an immutable BalanceTx. The
  balance pools themselves live on the Employee record (the directory
  owns them); the log exists so any balance can be explained after the
  fact: "why is CL at 7?" is answered by the employee's transactions.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: no update, no delete
  2. IDEMPOTENT: a duplicate idempotency key is rejected, so replaying an
     approval cannot record the same deduction twice

IMPLEMENTATIONS:
  - memory.go:        In-memory (tests, default runtime)
  - sqlite/sqlite.go: SQLite-backed (durable audit trail)
*/
package store

import (
	"context"
	"errors"
	"time"

	"github.com/warp/leave-engine/leave"
)

// ErrDuplicateIdempotencyKey is returned when a transaction with the same
// idempotency key was already recorded. Expected on retries.
var ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

// =============================================================================
// BALANCE TRANSACTION
// =============================================================================

// BalanceTx records one deduction from one balance pool.
// Days is the requested deduction; because pools floor at zero, the pool
// may have absorbed fewer days than this. The log records intent, the
// employee record holds truth.
type BalanceTx struct {
	ID             string
	EmployeeID     string
	LeaveType      leave.LeaveType
	Days           int
	Reference      string // the leave request or encashment id that caused this
	Reason         string
	CreatedBy      string // approver id
	IdempotencyKey string
	CreatedAt      time.Time
}

// =============================================================================
// TX LOG - Append-only persistence interface
// =============================================================================

// TxLog persists balance transactions. Append-only: corrections would be
// new entries, never edits.
type TxLog interface {
	// Append records a transaction. Fails with ErrDuplicateIdempotencyKey
	// if the idempotency key was seen before.
	Append(ctx context.Context, tx BalanceTx) error

	// List returns all transactions for an employee, oldest first.
	List(ctx context.Context, employeeID string) ([]BalanceTx, error)

	// Exists checks whether an idempotency key was already recorded.
	Exists(ctx context.Context, idempotencyKey string) (bool, error)
}
