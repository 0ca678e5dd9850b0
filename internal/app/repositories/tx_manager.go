package repositories

import (
	"context"
	"fmt"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	"github.com/jackc/pgx/v5"
)

// PgTxManager runs units of work in a PostgreSQL transaction
type PgTxManager struct {
	db *db.PostgresDB
}

// NewTxManager creates a transaction manager over the pool
func NewTxManager(database *db.PostgresDB) *PgTxManager {
	return &PgTxManager{db: database}
}

// WithTx binds fresh repositories to a transaction and commits when fn succeeds
func (m *PgTxManager) WithTx(ctx context.Context, fn TxFn) error {
	return m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// AdvisoryLocker takes transaction scoped advisory locks. Outside a transaction the
// lock is released as soon as the statement finishes, so it must run on a pgx.Tx.
type AdvisoryLocker struct {
	q Querier
}

// NewAdvisoryLocker creates a locker bound to q
func NewAdvisoryLocker(q Querier) *AdvisoryLocker {
	return &AdvisoryLocker{q: q}
}

// LockTeacher blocks until no other transaction holds the teacher's booking lock
func (l *AdvisoryLocker) LockTeacher(ctx context.Context, teacherID int64) error {
	return l.lock(ctx, fmt.Sprintf("teacher:%d", teacherID))
}

// LockRoom blocks until no other transaction holds the room's booking lock
func (l *AdvisoryLocker) LockRoom(ctx context.Context, roomID int64) error {
	return l.lock(ctx, fmt.Sprintf("room:%d", roomID))
}

func (l *AdvisoryLocker) lock(ctx context.Context, key string) error {
	if _, err := l.q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("error acquiring booking lock %s: %w", key, err)
	}
	return nil
}
