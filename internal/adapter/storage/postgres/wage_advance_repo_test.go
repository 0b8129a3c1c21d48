package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWageAdvance() *domain.WageAdvanceRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.WageAdvanceRequest{
		ID:              uuid.New(),
		EmployeeID:      uuid.New(),
		EnterpriseID:    uuid.New(),
		RequestedAmount: 50000,
		Status:          domain.WageAdvancePending,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func wageAdvanceColumnNames() []string {
	return []string{"id", "employee_id", "enterprise_id", "requested_amount", "account_id", "status",
		"decider_approvals", "scheduled_transaction_id", "rejection_reason", "rejection_note", "rejected_by",
		"version", "created_at", "updated_at", "completed_at"}
}

func wageAdvanceRow(t *testing.T, r *domain.WageAdvanceRequest) *pgxmock.Rows {
	approvals, err := encodeApprovals(r.DeciderApprovals)
	require.NoError(t, err)
	return pgxmock.NewRows(wageAdvanceColumnNames()).AddRow(
		r.ID, r.EmployeeID, r.EnterpriseID, r.RequestedAmount, r.AccountID, r.Status,
		approvals, r.ScheduledTransactionID, r.RejectionReason, r.RejectionNote, r.RejectedBy,
		r.Version, r.CreatedAt, r.UpdatedAt, r.CompletedAt,
	)
}

func TestWageAdvanceRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)
	req := newTestWageAdvance()

	mock.ExpectExec("INSERT INTO wage_advance_requests").
		WithArgs(
			req.ID, req.EmployeeID, req.EnterpriseID, req.RequestedAmount, req.AccountID, req.Status,
			[]byte(`[]`), req.ScheduledTransactionID, req.RejectionReason, req.RejectionNote, req.RejectedBy,
			req.Version, req.CreatedAt, req.UpdatedAt, req.CompletedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), req))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWageAdvanceRepo_GetByID_DecodesVotes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)
	req := newTestWageAdvance()
	req.Status = domain.WageAdvanceAwaitingApproval
	req.AccountID = strPtr("0.0.1001")
	req.DeciderApprovals = []domain.DeciderVote{
		{DeciderID: uuid.New(), Approved: true, Timestamp: req.CreatedAt},
	}

	mock.ExpectQuery("FROM wage_advance_requests WHERE id").
		WithArgs(req.ID).
		WillReturnRows(wageAdvanceRow(t, req))

	got, err := repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.DeciderApprovals, 1)
	assert.Equal(t, req.DeciderApprovals[0].DeciderID, got.DeciderApprovals[0].DeciderID)
	assert.True(t, got.DeciderApprovals[0].Approved)
	assert.Equal(t, "0.0.1001", *got.AccountID)
}

func TestWageAdvanceRepo_GetByScheduledTransactionID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)

	mock.ExpectQuery("WHERE scheduled_transaction_id").
		WithArgs("0.0.2002@1700000000.000000000").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByScheduledTransactionID(context.Background(), "0.0.2002@1700000000.000000000")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWageAdvanceRepo_Update_BumpsVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)
	req := newTestWageAdvance()
	req.Status = domain.WageAdvanceAssociating
	req.Version = 3

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wage_advance_requests SET").
		WithArgs(
			req.AccountID, req.Status, []byte(`[]`),
			req.ScheduledTransactionID, req.RejectionReason, req.RejectionNote, req.RejectedBy,
			req.UpdatedAt, req.CompletedAt,
			req.ID, int64(3),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background(), dbTx, req))
	assert.Equal(t, int64(4), req.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWageAdvanceRepo_Update_VersionConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)
	req := newTestWageAdvance()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wage_advance_requests SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), req.ID, req.Version).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), dbTx, req)
	assert.ErrorIs(t, err, ports.ErrVersionConflict)
	assert.Equal(t, int64(1), req.Version)
}

func TestWageAdvanceRepo_ListByEnterprise(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWageAdvanceRepo(mock)
	req := newTestWageAdvance()
	status := domain.WageAdvancePending

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(req.EnterpriseID, status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery("FROM wage_advance_requests WHERE enterprise_id").
		WithArgs(req.EnterpriseID, status, 10, 10).
		WillReturnRows(wageAdvanceRow(t, req))

	reqs, total, err := repo.ListByEnterprise(context.Background(), ports.HistoryListParams{
		EnterpriseID: req.EnterpriseID,
		Status:       &status,
		Page:         2,
		PageSize:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, reqs, 1)
	assert.Equal(t, req.ID, reqs[0].ID)
}

func TestEncodeApprovals_NilIsEmptyArray(t *testing.T) {
	b, err := encodeApprovals(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	var votes []domain.DeciderVote
	require.NoError(t, json.Unmarshal(b, &votes))
	assert.Empty(t, votes)
}
