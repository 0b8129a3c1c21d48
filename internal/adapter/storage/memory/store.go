// Package memory is an in-process storage driver. Writes made through a Tx
// are applied immediately and undone on Rollback; isolation between writers
// comes from the parent lock.
package memory

import (
	"context"
	"sync"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds every table of the memory driver.
type Store struct {
	mu sync.RWMutex

	ops      map[uuid.UUID]*domain.Operation
	opSeq    int64
	opAudits []*domain.OperationAudit
	advances map[uuid.UUID]*domain.WageAdvanceRequest
	payments map[uuid.UUID]*domain.PaymentRequest
	swaps    map[uuid.UUID]*domain.SwapIntent
	logs     []*domain.AuditLog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		ops:      make(map[uuid.UUID]*domain.Operation),
		advances: make(map[uuid.UUID]*domain.WageAdvanceRequest),
		payments: make(map[uuid.UUID]*domain.PaymentRequest),
		swaps:    make(map[uuid.UUID]*domain.SwapIntent),
	}
}

// write runs fn under the store lock and records undo against tx, if tx is one of ours.
func (s *Store) write(tx pgx.Tx, fn func() (undo func(), err error)) error {
	s.mu.Lock()
	undo, err := fn()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if t, ok := tx.(*Tx); ok && undo != nil {
		t.record(undo)
	}
	return nil
}

// Transactor implements ports.DBTransactor for the memory store.
type Transactor struct {
	store *Store
}

// NewTransactor creates a Transactor bound to store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &Tx{store: t.store}, nil
}

// Tx keeps an undo log of the writes made through it.
type Tx struct {
	store *Store
	mu    sync.Mutex
	undo  []func()
	done  bool
}

func (t *Tx) record(undo func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, undo)
}

func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	return nil
}

// Rollback reverts every recorded write, newest first. After Commit it is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.undo = nil
	return nil
}

func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *Tx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *Tx) Conn() *pgx.Conn { return nil }

// HealthCheck implements ports.HealthChecker; the memory store is always up.
type HealthCheck struct{}

func (HealthCheck) Ping(ctx context.Context) error { return nil }
func (HealthCheck) Name() string                   { return "memory" }
