package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOperation(ref domain.ParentRef) *domain.Operation {
	now := time.Now().UTC()
	return &domain.Operation{
		ID:              uuid.New(),
		Type:            domain.OperationSwap,
		Status:          domain.OperationPendingSignature,
		ParentRef:       ref,
		Details:         domain.SwapDetails{AccountID: "0.0.1001", TokenID: "0.0.5005", ContractID: "0.0.7007", Amount: 10},
		SignerAccountID: "0.0.1001",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOperationRepo_OneOutstandingPerParent(t *testing.T) {
	store := NewStore()
	repo := NewOperationRepo(store)
	tx, _ := NewTransactor(store).Begin(context.Background())
	ref := domain.NewParentRef(domain.ParentSwapIntent, uuid.New())

	first := newOperation(ref)
	require.NoError(t, repo.Create(context.Background(), tx, first))
	assert.Equal(t, int64(1), first.Seq)

	err := repo.Create(context.Background(), tx, newOperation(ref))
	assert.ErrorIs(t, err, ports.ErrOutstandingOperation)

	// Once terminal, the parent accepts a new operation.
	first.Status = domain.OperationFailed
	require.NoError(t, repo.Update(context.Background(), tx, first))
	second := newOperation(ref)
	require.NoError(t, repo.Create(context.Background(), tx, second))
	assert.Equal(t, int64(2), second.Seq)

	ops, err := repo.ListByParent(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, first.ID, ops[0].ID)

	n, err := repo.CountFailed(context.Background(), tx, ref, domain.OperationSwap)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTx_RollbackRevertsWrites(t *testing.T) {
	store := NewStore()
	ops := NewOperationRepo(store)
	audits := NewOperationAuditRepo(store)
	transactor := NewTransactor(store)
	ctx := context.Background()
	ref := domain.NewParentRef(domain.ParentPaymentRequest, uuid.New())

	committed, _ := transactor.Begin(ctx)
	op := newOperation(ref)
	require.NoError(t, ops.Create(ctx, committed, op))
	require.NoError(t, committed.Commit(ctx))
	assert.ErrorIs(t, committed.Rollback(ctx), pgx.ErrTxClosed)

	tx, _ := transactor.Begin(ctx)
	changed := op.Clone()
	changed.Status = domain.OperationPendingConfirmation
	require.NoError(t, ops.Update(ctx, tx, changed))
	require.NoError(t, audits.Append(ctx, tx, &domain.OperationAudit{ID: uuid.New(), OperationID: op.ID, ToStatus: changed.Status}))
	require.NoError(t, tx.Rollback(ctx))

	got, err := ops.GetByID(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationPendingSignature, got.Status)
	entries, err := audits.ListByOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOperationRepo_ReadsAreCopies(t *testing.T) {
	store := NewStore()
	repo := NewOperationRepo(store)
	op := newOperation(domain.NewParentRef(domain.ParentSwapIntent, uuid.New()))
	require.NoError(t, repo.Create(context.Background(), nil, op))

	got, _ := repo.GetByID(context.Background(), op.ID)
	got.Status = domain.OperationSuccess

	again, _ := repo.GetByID(context.Background(), op.ID)
	assert.Equal(t, domain.OperationPendingSignature, again.Status)
}

func TestOperationRepo_ListStale(t *testing.T) {
	store := NewStore()
	repo := NewOperationRepo(store)
	ctx := context.Background()

	old := newOperation(domain.NewParentRef(domain.ParentSwapIntent, uuid.New()))
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	fresh := newOperation(domain.NewParentRef(domain.ParentSwapIntent, uuid.New()))
	confirming := newOperation(domain.NewParentRef(domain.ParentSwapIntent, uuid.New()))
	confirming.CreatedAt = old.CreatedAt
	confirming.Status = domain.OperationPendingConfirmation
	for _, op := range []*domain.Operation{old, fresh, confirming} {
		require.NoError(t, repo.Create(ctx, nil, op))
	}

	stale, err := repo.ListStale(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)
}

func TestWageAdvanceRepo_VersionCheck(t *testing.T) {
	store := NewStore()
	repo := NewWageAdvanceRepo(store)
	ctx := context.Background()
	req := &domain.WageAdvanceRequest{ID: uuid.New(), EnterpriseID: uuid.New(), Status: domain.WageAdvancePending, Version: 1}
	require.NoError(t, repo.Create(ctx, req))

	a, _ := repo.GetByID(ctx, req.ID)
	b, _ := repo.GetByID(ctx, req.ID)

	a.Status = domain.WageAdvanceAssociating
	require.NoError(t, repo.Update(ctx, nil, a))
	assert.Equal(t, int64(2), a.Version)

	b.Status = domain.WageAdvanceRejected
	assert.ErrorIs(t, repo.Update(ctx, nil, b), ports.ErrVersionConflict)

	stored, _ := repo.GetByID(ctx, req.ID)
	assert.Equal(t, domain.WageAdvanceAssociating, stored.Status)
}

func TestWageAdvanceRepo_ListByEnterprise(t *testing.T) {
	store := NewStore()
	repo := NewWageAdvanceRepo(store)
	ctx := context.Background()
	enterprise := uuid.New()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.WageAdvanceRequest{
			ID: uuid.New(), EnterpriseID: enterprise, Status: domain.WageAdvancePending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.WageAdvanceRequest{ID: uuid.New(), EnterpriseID: uuid.New()}))

	page, total, err := repo.ListByEnterprise(ctx, ports.HistoryListParams{EnterpriseID: enterprise, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, base.Add(2*time.Minute), page[0].CreatedAt)

	empty, _, err := repo.ListByEnterprise(ctx, ports.HistoryListParams{EnterpriseID: enterprise, Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParentLocker_Serialises(t *testing.T) {
	locker := NewParentLocker(time.Second)
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "wage_advance:x")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestParentLocker_WaitExhausted(t *testing.T) {
	locker := NewParentLocker(20 * time.Millisecond)
	unlock, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	_, err = locker.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ports.ErrLockNotAcquired)

	other, err := locker.Lock(context.Background(), "other")
	require.NoError(t, err)
	other()
	other() // second call is a no-op
}

func TestNonceStore_ReplayWithinTTL(t *testing.T) {
	s := NewNonceStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	ok, err := s.CheckAndSet(ctx, "watcher", "n-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CheckAndSet(ctx, "watcher", "n-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CheckAndSet(ctx, "other", "n-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "scopes are independent")

	now = now.Add(time.Minute)
	ok, err = s.CheckAndSet(ctx, "watcher", "n-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired nonce may be reused")
}
