/*
Package sqlite provides a SQLite-backed balance transaction log.

PURPOSE:
  Implements store.TxLog using SQLite so the audit trail of deductions
  survives restarts. Request collections and the roster stay in memory
  per the engine's ownership model; the transaction log is the one piece
  worth keeping durable, because it explains every balance.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements exist on balance_transactions.
  Idempotency keys carry a UNIQUE constraint, so a replayed approval is
  rejected at the database level as well as by the ledger.

WAL MODE:
  Opened with WAL so readers don't block the single writer.

USAGE:
  log, err := sqlite.New("./data/leave.db")
  if err != nil {
      ...
  }
  defer log.Close()
  ledger := store.NewBalanceLedger(dir, log, nil)

SEE ALSO:
  - store/txlog.go: Interface definition and the in-memory counterpart
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// TxLog implements store.TxLog using SQLite.
type TxLog struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*TxLog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log := &TxLog{db: db}
	if err := log.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return log, nil
}

// Close closes the database connection.
func (l *TxLog) Close() error {
	return l.db.Close()
}

func (l *TxLog) migrate() error {
	schema := `
	-- Balance transactions (append-only audit trail)
	CREATE TABLE IF NOT EXISTS balance_transactions (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		days INTEGER NOT NULL,
		reference TEXT,
		reason TEXT,
		created_by TEXT,
		idempotency_key TEXT UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_balance_tx_employee
		ON balance_transactions(employee_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_balance_tx_reference
		ON balance_transactions(reference) WHERE reference IS NOT NULL;
	`
	_, err := l.db.Exec(schema)
	return err
}

// =============================================================================
// STORE.TXLOG IMPLEMENTATION
// =============================================================================

func (l *TxLog) Append(ctx context.Context, tx store.BalanceTx) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO balance_transactions
			(id, employee_id, leave_type, days, reference, reason, created_by, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.EmployeeID,
		string(tx.LeaveType),
		tx.Days,
		nullable(tx.Reference),
		nullable(tx.Reason),
		nullable(tx.CreatedBy),
		nullable(tx.IdempotencyKey),
		tx.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrDuplicateIdempotencyKey
	}
	return err
}

func (l *TxLog) List(ctx context.Context, employeeID string) ([]store.BalanceTx, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, employee_id, leave_type, days, reference, reason, created_by, idempotency_key, created_at
		FROM balance_transactions
		WHERE employee_id = ?
		ORDER BY created_at, id`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []store.BalanceTx
	for rows.Next() {
		var tx store.BalanceTx
		var leaveType, createdAt string
		var reference, reason, createdBy, idemKey sql.NullString
		if err := rows.Scan(&tx.ID, &tx.EmployeeID, &leaveType, &tx.Days,
			&reference, &reason, &createdBy, &idemKey, &createdAt); err != nil {
			return nil, err
		}
		tx.LeaveType = leave.LeaveType(leaveType)
		tx.Reference = reference.String
		tx.Reason = reason.String
		tx.CreatedBy = createdBy.String
		tx.IdempotencyKey = idemKey.String
		tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (l *TxLog) Exists(ctx context.Context, idempotencyKey string) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM balance_transactions WHERE idempotency_key = ?`,
		idempotencyKey,
	).Scan(&count)
	return count > 0, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
