package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
	"github.com/warp/leave-engine/store/sqlite"
)

func newTestLog(t *testing.T) *sqlite.TxLog {
	t.Helper()
	log, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func sampleTx(id, employeeID, idemKey string, at time.Time) store.BalanceTx {
	return store.BalanceTx{
		ID:             id,
		EmployeeID:     employeeID,
		LeaveType:      leave.TypeEL,
		Days:           10,
		Reference:      "req-" + id,
		Reason:         "vacation",
		CreatedBy:      "2",
		IdempotencyKey: idemKey,
		CreatedAt:      at,
	}
}

// =============================================================================
// APPEND / LIST
// =============================================================================

func TestTxLog_AppendAndList(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	at := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	require.NoError(t, log.Append(ctx, sampleTx("tx-1", "1", "deduct-req-tx-1", at)))
	require.NoError(t, log.Append(ctx, sampleTx("tx-2", "1", "deduct-req-tx-2", at.Add(time.Hour))))
	require.NoError(t, log.Append(ctx, sampleTx("tx-3", "2", "deduct-req-tx-3", at)))

	txs, err := log.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Oldest first, other employees filtered out
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, "tx-2", txs[1].ID)
	assert.Equal(t, leave.TypeEL, txs[0].LeaveType)
	assert.Equal(t, 10, txs[0].Days)
	assert.Equal(t, "req-tx-1", txs[0].Reference)
	assert.Equal(t, "2", txs[0].CreatedBy)
	assert.True(t, txs[0].CreatedAt.Equal(at))
}

func TestTxLog_ListUnknownEmployee(t *testing.T) {
	log := newTestLog(t)

	txs, err := log.List(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTxLog_NullableFieldsRoundTrip(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	tx := store.BalanceTx{
		ID:         "tx-bare",
		EmployeeID: "1",
		LeaveType:  leave.TypeCL,
		Days:       2,
		CreatedAt:  time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, log.Append(ctx, tx))

	txs, err := log.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Empty(t, txs[0].Reference)
	assert.Empty(t, txs[0].Reason)
	assert.Empty(t, txs[0].CreatedBy)
	assert.Empty(t, txs[0].IdempotencyKey)
}

// =============================================================================
// IDEMPOTENCY
// =============================================================================

func TestTxLog_DuplicateIdempotencyKeyRejected(t *testing.T) {
	// GIVEN: A recorded transaction
	// WHEN: A different transaction replays the same idempotency key
	// THEN: ErrDuplicateIdempotencyKey and no second row
	log := newTestLog(t)
	ctx := context.Background()
	at := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	require.NoError(t, log.Append(ctx, sampleTx("tx-1", "1", "deduct-req-1", at)))

	err := log.Append(ctx, sampleTx("tx-1-replay", "1", "deduct-req-1", at))
	assert.ErrorIs(t, err, store.ErrDuplicateIdempotencyKey)

	txs, _ := log.List(ctx, "1")
	assert.Len(t, txs, 1)
}

func TestTxLog_Exists(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	ok, err := log.Exists(ctx, "deduct-req-1")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	require.NoError(t, log.Append(ctx, sampleTx("tx-1", "1", "deduct-req-1", at)))

	ok, err = log.Exists(ctx, "deduct-req-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
