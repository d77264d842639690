/*
Package leave provides the core leave-management engine.

PURPOSE:
  This package contains the domain model and pure business rules for
  employee leave: typed balance pools, the leave policy, chargeable-day
  counting, and eligibility decisions. It has no persistence and no HTTP
  awareness - those live in the store and api packages.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: identity, reporting line, service years, owned LeaveBalance
  - LeaveBalance: remaining days per leave type, never negative
  - LeaveRequest / LeaveEncashment: the two request kinds and their lifecycle
  - Money: a monetary value (decimal-backed, for encashment payouts)

DESIGN PRINCIPLES:
  1. Pure data here, behavior in engine.go / calendar.go
  2. Precision: Money uses decimal.Decimal to avoid floating-point errors
  3. Balances are integer day counts and are floored at zero on deduction
  4. employeeName on requests is a deliberate snapshot, never reconciled

SEE ALSO:
  - policy.go: The process-wide LeavePolicy ruleset
  - engine.go: Eligibility decisions (CanApply, encashment rules)
  - calendar.go: Date type and chargeable-day counting
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

// LeaveType is the closed set of leave-balance pools.
type LeaveType string

const (
	TypeCL        LeaveType = "CL"        // Casual Leave
	TypeEL        LeaveType = "EL"        // Earned Leave
	TypeML        LeaveType = "ML"        // Medical Leave
	TypeUEL       LeaveType = "UEL"       // Unpaid Earned Leave
	TypeMaternity LeaveType = "MATERNITY" // Maternity Leave (female employees)
)

// LeaveTypes lists all leave types in display order.
var LeaveTypes = []LeaveType{TypeCL, TypeEL, TypeML, TypeUEL, TypeMaternity}

// Valid reports whether t is one of the known leave types.
func (t LeaveType) Valid() bool {
	switch t {
	case TypeCL, TypeEL, TypeML, TypeUEL, TypeMaternity:
		return true
	}
	return false
}

// LeaveStatus is the request lifecycle state.
// pending is the initial state; approved and rejected are terminal.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// =============================================================================
// LEAVE BALANCE - Remaining days per pool
// =============================================================================

// LeaveBalance maps each leave type to its remaining day count.
// Maternity is a pointer: nil means the pool does not exist for this
// employee (male employees never have one).
//
// INVARIANT: no field ever goes negative. All mutation goes through
// DeductFloored, which clamps at zero.
type LeaveBalance struct {
	CL        int
	EL        int
	ML        int
	UEL       int
	Maternity *int
}

// Remaining returns the remaining days for a leave type.
// ok is false when the pool is absent (maternity for male employees).
func (b *LeaveBalance) Remaining(t LeaveType) (days int, ok bool) {
	switch t {
	case TypeCL:
		return b.CL, true
	case TypeEL:
		return b.EL, true
	case TypeML:
		return b.ML, true
	case TypeUEL:
		return b.UEL, true
	case TypeMaternity:
		if b.Maternity == nil {
			return 0, false
		}
		return *b.Maternity, true
	}
	return 0, false
}

// DeductFloored subtracts days from the pool for t, clamping at zero.
// An absent maternity pool stays absent; applied is false in that case.
//
// The clamp means a deduction larger than the remaining balance silently
// lands on zero rather than failing. That leniency comes straight from the
// source system and is pinned by tests; callers that want strictness must
// check Remaining first (the engine's CanApply does).
func (b *LeaveBalance) DeductFloored(t LeaveType, days int) (applied bool) {
	floor := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	switch t {
	case TypeCL:
		b.CL = floor(b.CL - days)
	case TypeEL:
		b.EL = floor(b.EL - days)
	case TypeML:
		b.ML = floor(b.ML - days)
	case TypeUEL:
		b.UEL = floor(b.UEL - days)
	case TypeMaternity:
		if b.Maternity == nil {
			return false
		}
		v := floor(*b.Maternity - days)
		b.Maternity = &v
	default:
		return false
	}
	return true
}

// Clone returns a deep copy (the maternity pointer is not shared).
func (b LeaveBalance) Clone() LeaveBalance {
	c := b
	if b.Maternity != nil {
		v := *b.Maternity
		c.Maternity = &v
	}
	return c
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is a member of the directory roster.
// ManagerID is a reporting-line back-reference, never ownership.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	ManagerID    string // empty for employees without a manager
	ServiceYears int    // non-negative; drives the UEL policy tier
	Gender       Gender
	Balance      LeaveBalance
}

// =============================================================================
// REQUESTS
// =============================================================================

// LeaveRequest is a pending/approved/rejected request for time off.
//
// EmployeeName is a denormalized snapshot of the name at submission time.
// It is an audit trail, intentionally never reconciled against the roster.
//
// TotalDays is the precomputed chargeable count; the store trusts the
// caller (which derives it via CountChargeableDays) and never re-derives it.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	LeaveType    LeaveType
	StartDate    Date
	EndDate      Date
	TotalDays    int
	Reason       string
	Status       LeaveStatus
	AppliedDate  time.Time // set at submission, immutable

	// Set only on the approve/reject transition.
	ApprovedDate *time.Time
	ApprovedBy   string
	Comments     string
}

// LeaveEncashment is a request to convert unused eligible leave days into
// a monetary payout. LeaveType is restricted to the policy's eligible set
// (EL and UEL by default).
type LeaveEncashment struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	LeaveType    LeaveType
	DaysToEncash int
	Amount       Money
	AppliedDate  time.Time
	Status       LeaveStatus
	ApprovedBy   string
}

// =============================================================================
// MONEY - Decimal-backed monetary value
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

func (m Money) Add(o Money) Money      { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) MulDays(days int) Money { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(days)))} }
func (m Money) Equal(o Money) bool     { return m.Value.Equal(o.Value) }
func (m Money) IsZero() bool           { return m.Value.IsZero() }
func (m Money) Float64() float64       { f, _ := m.Value.Float64(); return f }
func (m Money) String() string         { return m.Value.StringFixed(2) }

// =============================================================================
// CLOCK - Injectable "now" provider
// =============================================================================

// Clock supplies timestamps for appliedDate/approvedDate. Inject a fixed
// clock in tests; production wiring uses SystemClock.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time { return time.Now() }
