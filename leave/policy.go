/*
policy.go - The process-wide leave policy ruleset

PURPOSE:
  Defines the static configuration governing entitlements, caps, and
  eligibility. The policy is read-only after initialization and is shared
  by reference across the engine - it is never owned by any one component.

POLICY AREAS:
  CL:         annual entitlement, max consecutive days per request, and
              whether weekends charge against the balance
  EL:         annual entitlement split across half-years, with an expiry window
  ML:         monthly accrual that accumulates, with an expiry window
  UEL:        two-tier annual cap keyed on a service-years threshold
  Maternity:  annual entitlement (female employees only)
  Encashment: per-transaction day cap, eligible types, minimum balance that
              must remain, and the daily payout rate

CUSTOMIZATION:
  DefaultPolicy() mirrors the standard ruleset. Deployments override fields
  before handing the policy to the engine; nothing mutates it afterwards.

SEE ALSO:
  - engine.go: Applies these rules to individual requests
  - config/config.go: Environment overrides for encashment settings
*/
package leave

// =============================================================================
// POLICY TYPES
// =============================================================================

// LeavePolicy is the complete ruleset. Immutable after initialization.
type LeavePolicy struct {
	CL         CLPolicy
	EL         ELPolicy
	ML         MLPolicy
	UEL        UELPolicy
	Maternity  MaternityPolicy
	Encashment EncashmentPolicy
}

// CLPolicy governs casual leave.
type CLPolicy struct {
	Annual          int
	MaxConsecutive  int  // hard cap on days per single request
	IncludeWeekends bool // weekends charge against the CL balance
}

// ELPolicy governs earned leave.
type ELPolicy struct {
	Annual     int
	FirstHalf  int // credited January-June
	SecondHalf int // credited July-December
	ExpiryDays int
}

// MLPolicy governs medical leave.
type MLPolicy struct {
	Monthly     int
	Accumulates bool
	ExpiryDays  int
}

// UELPolicy governs unpaid earned leave with a two-tier annual cap.
type UELPolicy struct {
	LessThan10Years       int
	MoreThan10Years       int
	ServiceYearsThreshold int
}

type MaternityPolicy struct {
	Annual int
}

// EncashmentPolicy governs leave-to-cash conversion.
// MinBalance is the floor that must remain after encashing; DailyRate is
// the payout per encashed day.
type EncashmentPolicy struct {
	MaxDays       int
	EligibleTypes []LeaveType
	MinBalance    int
	DailyRate     Money
}

// Eligible reports whether t can be encashed under this policy.
func (p EncashmentPolicy) Eligible(t LeaveType) bool {
	for _, e := range p.EligibleTypes {
		if e == t {
			return true
		}
	}
	return false
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultPolicy returns the standard ruleset.
func DefaultPolicy() LeavePolicy {
	return LeavePolicy{
		CL: CLPolicy{Annual: 12, MaxConsecutive: 10, IncludeWeekends: true},
		EL: ELPolicy{Annual: 30, FirstHalf: 15, SecondHalf: 15, ExpiryDays: 240},
		ML: MLPolicy{Monthly: 1, Accumulates: true, ExpiryDays: 240},
		UEL: UELPolicy{
			LessThan10Years:       45,
			MoreThan10Years:       90,
			ServiceYearsThreshold: 10,
		},
		Maternity: MaternityPolicy{Annual: 365},
		Encashment: EncashmentPolicy{
			MaxDays:       15,
			EligibleTypes: []LeaveType{TypeEL, TypeUEL},
			MinBalance:    5,
			DailyRate:     NewMoneyFromInt(2000),
		},
	}
}

// =============================================================================
// ENTITLEMENT HELPERS
// =============================================================================

// UELAnnualCap returns the annual UEL entitlement for the given tenure.
// The tier flips at ServiceYearsThreshold (ten years by default).
func (p LeavePolicy) UELAnnualCap(serviceYears int) int {
	if serviceYears >= p.UEL.ServiceYearsThreshold {
		return p.UEL.MoreThan10Years
	}
	return p.UEL.LessThan10Years
}

// AnnualEntitlement returns the yearly entitlement for an employee and
// leave type. Maternity is zero for employees without a maternity pool.
func (p LeavePolicy) AnnualEntitlement(emp *Employee, t LeaveType) int {
	switch t {
	case TypeCL:
		return p.CL.Annual
	case TypeEL:
		return p.EL.Annual
	case TypeML:
		return p.ML.Monthly * 12
	case TypeUEL:
		return p.UELAnnualCap(emp.ServiceYears)
	case TypeMaternity:
		if emp.Gender != GenderFemale {
			return 0
		}
		return p.Maternity.Annual
	}
	return 0
}
