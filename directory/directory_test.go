package directory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/directory"
	"github.com/warp/leave-engine/leave"
)

func newRoster(t *testing.T) *directory.Directory {
	t.Helper()
	dir := directory.New()
	require.NoError(t, dir.Add(leave.Employee{
		ID: "1", Name: "John Doe", Role: leave.RoleEmployee,
		Balance: leave.LeaveBalance{CL: 12, EL: 30, ML: 12, UEL: 45},
	}))
	require.NoError(t, dir.Add(leave.Employee{
		ID: "2", Name: "Jane Manager", Role: leave.RoleManager,
		Balance: leave.LeaveBalance{CL: 10, EL: 25, ML: 10, UEL: 60},
	}))
	return dir
}

func recvUser(t *testing.T, ch <-chan *leave.Employee) *leave.Employee {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session event")
		return nil
	}
}

// =============================================================================
// ROSTER
// =============================================================================

func TestDirectory_ListPreservesInsertionOrder(t *testing.T) {
	dir := newRoster(t)

	emps := dir.List()
	require.Len(t, emps, 2)
	assert.Equal(t, "1", emps[0].ID)
	assert.Equal(t, "2", emps[1].ID)
}

func TestDirectory_DuplicateIDRejected(t *testing.T) {
	dir := newRoster(t)

	err := dir.Add(leave.Employee{ID: "1", Name: "Impostor"})
	assert.Error(t, err)
	assert.Len(t, dir.List(), 2)
}

func TestDirectory_GetReturnsCopy(t *testing.T) {
	// GIVEN: A snapshot from Get
	// WHEN: The snapshot's balance is mutated
	// THEN: The stored record is untouched
	dir := newRoster(t)

	snap, ok := dir.Get("1")
	require.True(t, ok)
	snap.Balance.EL = 0

	again, _ := dir.Get("1")
	assert.Equal(t, 30, again.Balance.EL)
}

func TestDirectory_WithEmployee_UnknownID(t *testing.T) {
	dir := newRoster(t)

	err := dir.WithEmployee("ghost", func(*leave.Employee) error { return nil })
	assert.ErrorIs(t, err, leave.ErrEmployeeNotFound)
}

func TestDirectory_WithEmployee_MutatesLiveRecord(t *testing.T) {
	dir := newRoster(t)

	err := dir.WithEmployee("1", func(emp *leave.Employee) error {
		emp.Balance.DeductFloored(leave.TypeEL, 5)
		return nil
	})
	require.NoError(t, err)

	emp, _ := dir.Get("1")
	assert.Equal(t, 25, emp.Balance.EL)
}

// =============================================================================
// SESSION
// =============================================================================

func TestSession_SwitchUser(t *testing.T) {
	dir := newRoster(t)

	dir.SwitchUser("2")

	cur, ok := dir.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Jane Manager", cur.Name)
}

func TestSession_SwitchToUnknownClearsCurrentUser(t *testing.T) {
	// GIVEN: A valid session
	// WHEN: Switching to an unknown id
	// THEN: No current user, rather than an error or a stale session
	dir := newRoster(t)
	dir.SwitchUser("1")

	dir.SwitchUser("ghost")

	_, ok := dir.CurrentUser()
	assert.False(t, ok)
}

func TestSession_StreamReplaysLatestThenPushes(t *testing.T) {
	dir := newRoster(t)
	dir.SwitchUser("1")

	ch, cancel := dir.CurrentUserStream()
	defer cancel()

	// Replay: the subscriber sees the switch that happened before it arrived
	first := recvUser(t, ch)
	require.NotNil(t, first)
	assert.Equal(t, "1", first.ID)

	// Push: later switches arrive too, nil when the session clears
	dir.SwitchUser("ghost")
	assert.Nil(t, recvUser(t, ch))

	dir.SwitchUser("2")
	second := recvUser(t, ch)
	require.NotNil(t, second)
	assert.Equal(t, "2", second.ID)
}
