/*
engine.go - Eligibility decisions for leave and encashment

PURPOSE:
  Pure functions that decide whether a proposed leave or encashment is
  permissible given an employee's current balances and the policy. The
  engine never mutates anything and never persists - callers validate
  here first, then submit to the request store.

WHAT IS CHECKED:
  CL:        consecutive-day cap, then balance
  EL/ML/UEL: balance only
  MATERNITY: female-only, then pool presence and balance
  Encashment: type eligibility, per-transaction cap, minimum-balance floor

WHAT IS DELIBERATELY NOT CHECKED:
  Date-range sanity, reason text, and duplicate/overlapping requests.
  Those are the callers' concern (or out of scope entirely).

EXAMPLE:
  engine := leave.NewEngine(leave.DefaultPolicy())
  d := engine.CanApply(emp, leave.TypeCL, 5)
  if !d.Allowed {
      // show d.Reason to the user, do not submit
  }

SEE ALSO:
  - policy.go: The ruleset these decisions read
  - store/requests.go: Where validated requests are submitted
*/
package leave

import "fmt"

// =============================================================================
// DECISION
// =============================================================================

// Decision is the outcome of an eligibility check. Reason is a
// human-readable denial message, empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Err converts a denial into a PolicyViolationError, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &PolicyViolationError{Reason: d.Reason}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates policy rules. Stateless apart from the immutable policy.
type Engine struct {
	Policy LeavePolicy
}

func NewEngine(policy LeavePolicy) *Engine {
	return &Engine{Policy: policy}
}

// CanApply decides whether emp may take days of leave of type t.
// Checks run in a fixed order and the first failure wins; the cap check
// for CL runs before the balance check, so an over-cap request is denied
// regardless of balance.
func (e *Engine) CanApply(emp *Employee, t LeaveType, days int) Decision {
	if emp == nil {
		return deny("Employee not found")
	}

	switch t {
	case TypeCL:
		if days > e.Policy.CL.MaxConsecutive {
			return deny(fmt.Sprintf("Maximum %d consecutive days allowed", e.Policy.CL.MaxConsecutive))
		}
		if emp.Balance.CL < days {
			return deny("Insufficient CL balance")
		}
	case TypeEL:
		if emp.Balance.EL < days {
			return deny("Insufficient EL balance")
		}
	case TypeML:
		if emp.Balance.ML < days {
			return deny("Insufficient ML balance")
		}
	case TypeUEL:
		if emp.Balance.UEL < days {
			return deny("Insufficient UEL balance")
		}
	case TypeMaternity:
		if emp.Gender != GenderFemale {
			return deny("Maternity leave is only for female employees")
		}
		if remaining, ok := emp.Balance.Remaining(TypeMaternity); !ok || remaining < days {
			return deny("Insufficient Maternity leave balance")
		}
	default:
		return deny(fmt.Sprintf("Unknown leave type %q", t))
	}

	return allow()
}

// =============================================================================
// ENCASHMENT
// =============================================================================

// MaxEncashableDays returns how many days of a balance may be encashed in
// one transaction: what remains above the minimum-balance floor, clamped
// to the per-transaction cap. Never negative.
func (e *Engine) MaxEncashableDays(balance int) int {
	headroom := balance - e.Policy.Encashment.MinBalance
	if headroom < 0 {
		headroom = 0
	}
	if headroom > e.Policy.Encashment.MaxDays {
		return e.Policy.Encashment.MaxDays
	}
	return headroom
}

// CanEncash decides whether emp may encash days from the pool for t.
func (e *Engine) CanEncash(emp *Employee, t LeaveType, days int) Decision {
	if emp == nil {
		return deny("Employee not found")
	}
	if !e.Policy.Encashment.Eligible(t) {
		return deny(fmt.Sprintf("%s is not eligible for encashment", t))
	}

	balance, ok := emp.Balance.Remaining(t)
	if !ok {
		return deny(fmt.Sprintf("Insufficient %s balance", t))
	}

	maxDays := e.MaxEncashableDays(balance)
	if days > maxDays {
		return deny(fmt.Sprintf("Maximum %d days can be encashed", maxDays))
	}
	if balance-days < e.Policy.Encashment.MinBalance {
		return deny(fmt.Sprintf("Minimum %d days balance must be maintained", e.Policy.Encashment.MinBalance))
	}

	return allow()
}

// QuoteEncashment returns the payout for encashing days at the policy rate.
func (e *Engine) QuoteEncashment(days int) Money {
	return e.Policy.Encashment.DailyRate.MulDays(days)
}
