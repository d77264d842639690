package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func intPtr(v int) *int { return &v }

func maleEmployee() *leave.Employee {
	return &leave.Employee{
		ID:           "emp-1",
		Name:         "John Doe",
		Role:         leave.RoleEmployee,
		ServiceYears: 5,
		Gender:       leave.GenderMale,
		Balance:      leave.LeaveBalance{CL: 12, EL: 30, ML: 12, UEL: 45},
	}
}

func femaleEmployee() *leave.Employee {
	return &leave.Employee{
		ID:           "emp-2",
		Name:         "Alice Employee",
		Role:         leave.RoleEmployee,
		ServiceYears: 12,
		Gender:       leave.GenderFemale,
		Balance:      leave.LeaveBalance{CL: 8, EL: 28, ML: 15, UEL: 90, Maternity: intPtr(365)},
	}
}

func newEngine() *leave.Engine {
	return leave.NewEngine(leave.DefaultPolicy())
}

// =============================================================================
// CAN APPLY - PER-TYPE ELIGIBILITY
// =============================================================================

func TestCanApply_CL_OverConsecutiveCap_DeniedRegardlessOfBalance(t *testing.T) {
	// GIVEN: CL balance of 12 and a max-consecutive cap of 10
	// WHEN: Requesting 11 consecutive CL days
	// THEN: Denied by the cap even though the balance would cover it
	engine := newEngine()
	emp := maleEmployee()

	d := engine.CanApply(emp, leave.TypeCL, engine.Policy.CL.MaxConsecutive+1)

	assert.False(t, d.Allowed)
	assert.Equal(t, "Maximum 10 consecutive days allowed", d.Reason)
}

func TestCanApply_CL_InsufficientBalance(t *testing.T) {
	engine := newEngine()
	emp := maleEmployee()
	emp.Balance.CL = 2

	d := engine.CanApply(emp, leave.TypeCL, 3)

	assert.False(t, d.Allowed)
	assert.Equal(t, "Insufficient CL balance", d.Reason)
}

func TestCanApply_BalanceOnlyTypes(t *testing.T) {
	engine := newEngine()

	cases := []struct {
		leaveType leave.LeaveType
		balance   int
		reason    string
	}{
		{leave.TypeEL, 4, "Insufficient EL balance"},
		{leave.TypeML, 4, "Insufficient ML balance"},
		{leave.TypeUEL, 4, "Insufficient UEL balance"},
	}

	for _, tc := range cases {
		t.Run(string(tc.leaveType), func(t *testing.T) {
			emp := maleEmployee()
			emp.Balance = leave.LeaveBalance{CL: tc.balance, EL: tc.balance, ML: tc.balance, UEL: tc.balance}

			// One more than the balance is denied
			d := engine.CanApply(emp, tc.leaveType, tc.balance+1)
			assert.False(t, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)

			// Exactly the balance is allowed
			d = engine.CanApply(emp, tc.leaveType, tc.balance)
			assert.True(t, d.Allowed)
		})
	}
}

func TestCanApply_Maternity_MaleAlwaysDenied(t *testing.T) {
	// GIVEN: A male employee, even one with a (bogus) maternity pool
	// THEN: Denied with the female-only reason regardless of balance
	engine := newEngine()
	emp := maleEmployee()
	emp.Balance.Maternity = intPtr(365)

	d := engine.CanApply(emp, leave.TypeMaternity, 1)

	assert.False(t, d.Allowed)
	assert.Equal(t, "Maternity leave is only for female employees", d.Reason)
}

func TestCanApply_Maternity_AbsentPoolDenied(t *testing.T) {
	engine := newEngine()
	emp := femaleEmployee()
	emp.Balance.Maternity = nil

	d := engine.CanApply(emp, leave.TypeMaternity, 1)

	assert.False(t, d.Allowed)
	assert.Equal(t, "Insufficient Maternity leave balance", d.Reason)
}

func TestCanApply_Maternity_Allowed(t *testing.T) {
	engine := newEngine()
	emp := femaleEmployee()

	d := engine.CanApply(emp, leave.TypeMaternity, 90)

	assert.True(t, d.Allowed)
	assert.Empty(t, d.Reason)
}

func TestCanApply_NilEmployee(t *testing.T) {
	engine := newEngine()

	d := engine.CanApply(nil, leave.TypeEL, 1)

	assert.False(t, d.Allowed)
	assert.Equal(t, "Employee not found", d.Reason)
}

func TestDecision_Err(t *testing.T) {
	engine := newEngine()
	emp := maleEmployee()

	assert.NoError(t, engine.CanApply(emp, leave.TypeEL, 1).Err())

	err := engine.CanApply(emp, leave.TypeEL, 1000).Err()
	assert.ErrorIs(t, err, leave.ErrPolicyViolation)

	var pv *leave.PolicyViolationError
	assert.ErrorAs(t, err, &pv)
	assert.Equal(t, "Insufficient EL balance", pv.Reason)
}

// =============================================================================
// ENCASHMENT
// =============================================================================

func TestMaxEncashableDays(t *testing.T) {
	// Policy: MaxDays=15, MinBalance=5
	engine := newEngine()

	cases := []struct {
		balance int
		want    int
	}{
		{90, 15}, // headroom 85 clamped to cap
		{18, 13}, // headroom below cap
		{5, 0},   // exactly at the floor
		{3, 0},   // below the floor never goes negative
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, engine.MaxEncashableDays(tc.balance), "balance %d", tc.balance)
	}
}

func TestCanEncash_AtAndOverTheCap(t *testing.T) {
	// GIVEN: UEL balance 90, min balance 5, policy cap 15
	// THEN: 16 days denied, 15 days allowed
	engine := newEngine()
	emp := femaleEmployee() // UEL: 90

	d := engine.CanEncash(emp, leave.TypeUEL, 16)
	assert.False(t, d.Allowed)
	assert.Equal(t, "Maximum 15 days can be encashed", d.Reason)

	d = engine.CanEncash(emp, leave.TypeUEL, 15)
	assert.True(t, d.Allowed)
}

func TestCanEncash_MinimumBalancePreserved(t *testing.T) {
	// GIVEN: EL balance of 12, min balance 5
	// THEN: Encashing 8 would leave 4, denied via the per-balance cap
	engine := newEngine()
	emp := maleEmployee()
	emp.Balance.EL = 12

	d := engine.CanEncash(emp, leave.TypeEL, 8)
	assert.False(t, d.Allowed)
	assert.Equal(t, "Maximum 7 days can be encashed", d.Reason)

	d = engine.CanEncash(emp, leave.TypeEL, 7)
	assert.True(t, d.Allowed)
}

func TestCanEncash_IneligibleType(t *testing.T) {
	engine := newEngine()
	emp := maleEmployee()

	d := engine.CanEncash(emp, leave.TypeCL, 1)

	assert.False(t, d.Allowed)
	assert.Equal(t, "CL is not eligible for encashment", d.Reason)
}

func TestQuoteEncashment(t *testing.T) {
	// Default daily rate is 2000
	engine := newEngine()

	amount := engine.QuoteEncashment(15)
	assert.True(t, amount.Equal(leave.NewMoneyFromInt(30000)), "got %s", amount)
}

// =============================================================================
// POLICY HELPERS
// =============================================================================

func TestUELAnnualCap_TierFlipsAtThreshold(t *testing.T) {
	policy := leave.DefaultPolicy()

	assert.Equal(t, 45, policy.UELAnnualCap(0))
	assert.Equal(t, 45, policy.UELAnnualCap(9))
	assert.Equal(t, 90, policy.UELAnnualCap(10))
	assert.Equal(t, 90, policy.UELAnnualCap(30))
}

func TestAnnualEntitlement(t *testing.T) {
	policy := leave.DefaultPolicy()

	junior := maleEmployee()   // 5 service years
	senior := femaleEmployee() // 12 service years

	assert.Equal(t, 12, policy.AnnualEntitlement(junior, leave.TypeCL))
	assert.Equal(t, 30, policy.AnnualEntitlement(junior, leave.TypeEL))
	assert.Equal(t, 12, policy.AnnualEntitlement(junior, leave.TypeML))
	assert.Equal(t, 45, policy.AnnualEntitlement(junior, leave.TypeUEL))
	assert.Equal(t, 90, policy.AnnualEntitlement(senior, leave.TypeUEL))

	// Maternity entitlement is zero for male employees
	assert.Equal(t, 0, policy.AnnualEntitlement(junior, leave.TypeMaternity))
	assert.Equal(t, 365, policy.AnnualEntitlement(senior, leave.TypeMaternity))
}
