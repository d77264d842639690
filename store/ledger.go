/*
ledger.go - Balance deduction with floor-at-zero semantics

PURPOSE:
  The ledger is the only component that mutates balance pools. It runs
  the deduction inside the directory's per-record lock and records an
  audit transaction for every applied deduction.

FLOOR-AT-ZERO:
  Deducting more days than remain lands the pool on zero rather than
  failing. An approval can therefore "succeed" while removing fewer days
  than requested if the balance was drained mid-flight. This matches the
  source system exactly and is pinned by tests - tightening it is a
  policy decision, not a bug fix to make silently.

NOT-FOUND HANDLING:
  The source system treated a deduction against an unknown employee as a
  silent no-op. That hides broken references, so this implementation
  returns leave.ErrEmployeeNotFound instead and lets the caller decide.

SEE ALSO:
  - directory: WithEmployee provides the mutual-exclusion domain
  - txlog.go: The audit trail appended to on every deduction
*/
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/warp/leave-engine/directory"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// BALANCE LEDGER
// =============================================================================

type BalanceLedger struct {
	Directory *directory.Directory
	Log       TxLog
	Clock     leave.Clock
}

func NewBalanceLedger(dir *directory.Directory, log TxLog, clock leave.Clock) *BalanceLedger {
	if clock == nil {
		clock = leave.SystemClock
	}
	return &BalanceLedger{Directory: dir, Log: log, Clock: clock}
}

// Deduct removes days from the employee's pool for t, floored at zero,
// and appends an audit transaction. reference ties the deduction to the
// request that caused it and doubles as the idempotency key, so replaying
// an approval cannot log the same deduction twice.
//
// An absent maternity pool stays absent: no mutation, no transaction,
// no error. Unknown employees return leave.ErrEmployeeNotFound.
func (l *BalanceLedger) Deduct(ctx context.Context, employeeID string, t leave.LeaveType, days int, reference, reason, actor string) error {
	applied := false
	err := l.Directory.WithEmployee(employeeID, func(emp *leave.Employee) error {
		applied = emp.Balance.DeductFloored(t, days)
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	tx := BalanceTx{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		LeaveType:      t,
		Days:           days,
		Reference:      reference,
		Reason:         reason,
		CreatedBy:      actor,
		IdempotencyKey: fmt.Sprintf("deduct-%s", reference),
		CreatedAt:      l.Clock(),
	}
	if err := l.Log.Append(ctx, tx); err != nil {
		return fmt.Errorf("deduction applied but audit append failed: %w", err)
	}
	return nil
}

// Transactions returns the employee's audit trail, oldest first.
func (l *BalanceLedger) Transactions(ctx context.Context, employeeID string) ([]BalanceTx, error) {
	return l.Log.List(ctx, employeeID)
}
