package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// singleConnPool models a database pool capped at one connection. An open
// transaction holds it until Commit or Rollback; a pool read holds it for
// the call only.
type singleConnPool struct {
	conn chan struct{}
}

func newSingleConnPool() *singleConnPool {
	return &singleConnPool{conn: make(chan struct{}, 1)}
}

func (p *singleConnPool) acquire() error {
	select {
	case p.conn <- struct{}{}:
		return nil
	case <-time.After(200 * time.Millisecond):
		return errors.New("acquire connection: pool exhausted")
	}
}

func (p *singleConnPool) release() { <-p.conn }

func (p *singleConnPool) read() error {
	if err := p.acquire(); err != nil {
		return err
	}
	p.release()
	return nil
}

// begin opens a transaction on the pool's only connection.
func (p *singleConnPool) begin() (*pooledTx, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	return &pooledTx{pool: p}, nil
}

type pooledTx struct {
	mockTx
	pool *singleConnPool
	once sync.Once
}

func (t *pooledTx) Commit(context.Context) error   { t.once.Do(t.pool.release); return nil }
func (t *pooledTx) Rollback(context.Context) error { t.once.Do(t.pool.release); return nil }

// nopMetrics satisfies ports.EngineMetrics without recording anything.
type nopMetrics struct{}

func (nopMetrics) OperationCreated(domain.OperationType) {}
func (nopMetrics) OperationTransitioned(domain.OperationType, domain.OperationStatus, domain.OperationStatus) {
}
func (nopMetrics) ParentTransitioned(domain.ParentKind, string) {}
func (nopMetrics) SignerCall(string, time.Duration)             {}
func (nopMetrics) LockWait(bool, time.Duration)                 {}

func newTestOperation(status domain.OperationStatus) *domain.Operation {
	now := time.Now().UTC()
	return &domain.Operation{
		ID:                  uuid.New(),
		Type:                domain.OperationTokenAssociate,
		Status:              status,
		ParentRef:           domain.NewParentRef(domain.ParentWageAdvance, uuid.New()),
		Details:             domain.TokenAssociateDetails{AccountID: "0.0.1001", TokenID: "0.0.5005"},
		UnsignedTransaction: []byte(`{"transactionId":"0.0.1001@1700000000.000000000"}`),
		SignerAccountID:     "0.0.1001",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
