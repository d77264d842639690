package store

import (
	"context"
	"sync"
)

// =============================================================================
// MEMORY TX LOG - In-memory implementation (tests and default runtime)
// =============================================================================

type MemoryTxLog struct {
	mu          sync.RWMutex
	byEmployee  map[string][]BalanceTx
	idempotency map[string]bool
}

func NewMemoryTxLog() *MemoryTxLog {
	return &MemoryTxLog{
		byEmployee:  make(map[string][]BalanceTx),
		idempotency: make(map[string]bool),
	}
}

func (m *MemoryTxLog) Append(_ context.Context, tx BalanceTx) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.IdempotencyKey != "" && m.idempotency[tx.IdempotencyKey] {
		return ErrDuplicateIdempotencyKey
	}
	m.byEmployee[tx.EmployeeID] = append(m.byEmployee[tx.EmployeeID], tx)
	if tx.IdempotencyKey != "" {
		m.idempotency[tx.IdempotencyKey] = true
	}
	return nil
}

func (m *MemoryTxLog) List(_ context.Context, employeeID string) ([]BalanceTx, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]BalanceTx, len(m.byEmployee[employeeID]))
	copy(result, m.byEmployee[employeeID])
	return result, nil
}

func (m *MemoryTxLog) Exists(_ context.Context, idempotencyKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idempotency[idempotencyKey], nil
}
