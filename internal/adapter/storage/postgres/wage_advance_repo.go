package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const wageAdvanceColumns = `id, employee_id, enterprise_id, requested_amount, account_id, status,
	decider_approvals, scheduled_transaction_id, rejection_reason, rejection_note, rejected_by,
	version, created_at, updated_at, completed_at`

// WageAdvanceRepo implements ports.WageAdvanceRepository.
type WageAdvanceRepo struct {
	pool Pool
}

// NewWageAdvanceRepo creates a new WageAdvanceRepo.
func NewWageAdvanceRepo(pool Pool) *WageAdvanceRepo {
	return &WageAdvanceRepo{pool: pool}
}

// Create inserts a new request.
func (r *WageAdvanceRepo) Create(ctx context.Context, req *domain.WageAdvanceRequest) error {
	approvals, err := encodeApprovals(req.DeciderApprovals)
	if err != nil {
		return err
	}

	query := `INSERT INTO wage_advance_requests (id, employee_id, enterprise_id, requested_amount, account_id, status,
		decider_approvals, scheduled_transaction_id, rejection_reason, rejection_note, rejected_by,
		version, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.pool.Exec(ctx, query,
		req.ID, req.EmployeeID, req.EnterpriseID, req.RequestedAmount, req.AccountID, req.Status,
		approvals, req.ScheduledTransactionID, req.RejectionReason, req.RejectionNote, req.RejectedBy,
		req.Version, req.CreatedAt, req.UpdatedAt, req.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wage advance request: %w", err)
	}
	return nil
}

// GetByID fetches a request by UUID.
func (r *WageAdvanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WageAdvanceRequest, error) {
	query := `SELECT ` + wageAdvanceColumns + ` FROM wage_advance_requests WHERE id = $1`
	return scanWageAdvance(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a request with a row-level lock.
func (r *WageAdvanceRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WageAdvanceRequest, error) {
	query := `SELECT ` + wageAdvanceColumns + ` FROM wage_advance_requests WHERE id = $1 FOR UPDATE`
	return scanWageAdvance(tx.QueryRow(ctx, query, id))
}

// GetByScheduledTransactionID resolves the request that created a schedule.
func (r *WageAdvanceRepo) GetByScheduledTransactionID(ctx context.Context, txID string) (*domain.WageAdvanceRequest, error) {
	query := `SELECT ` + wageAdvanceColumns + ` FROM wage_advance_requests WHERE scheduled_transaction_id = $1`
	return scanWageAdvance(r.pool.QueryRow(ctx, query, txID))
}

// Update writes the request when its stored version still matches, then
// bumps req.Version.
func (r *WageAdvanceRepo) Update(ctx context.Context, tx pgx.Tx, req *domain.WageAdvanceRequest) error {
	approvals, err := encodeApprovals(req.DeciderApprovals)
	if err != nil {
		return err
	}

	query := `UPDATE wage_advance_requests SET account_id = $1, status = $2, decider_approvals = $3,
		scheduled_transaction_id = $4, rejection_reason = $5, rejection_note = $6, rejected_by = $7,
		version = version + 1, updated_at = $8, completed_at = $9
		WHERE id = $10 AND version = $11`

	tag, err := tx.Exec(ctx, query,
		req.AccountID, req.Status, approvals,
		req.ScheduledTransactionID, req.RejectionReason, req.RejectionNote, req.RejectedBy,
		req.UpdatedAt, req.CompletedAt,
		req.ID, req.Version,
	)
	if err != nil {
		return fmt.Errorf("update wage advance request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	req.Version++
	return nil
}

// ListByEnterprise fetches an enterprise's requests, newest first.
func (r *WageAdvanceRepo) ListByEnterprise(ctx context.Context, params ports.HistoryListParams) ([]*domain.WageAdvanceRequest, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("enterprise_id = $%d", argIdx))
	args = append(args, params.EnterpriseID)
	argIdx++

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM wage_advance_requests %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wage advance requests: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM wage_advance_requests %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, wageAdvanceColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list wage advance requests: %w", err)
	}
	defer rows.Close()

	var reqs []*domain.WageAdvanceRequest
	for rows.Next() {
		req, err := scanWageAdvance(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wage advance rows: %w", err)
	}
	return reqs, total, nil
}

func encodeApprovals(votes []domain.DeciderVote) ([]byte, error) {
	if votes == nil {
		votes = []domain.DeciderVote{}
	}
	b, err := json.Marshal(votes)
	if err != nil {
		return nil, fmt.Errorf("encode decider approvals: %w", err)
	}
	return b, nil
}

func scanWageAdvance(row pgx.Row) (*domain.WageAdvanceRequest, error) {
	req := &domain.WageAdvanceRequest{}
	var approvals []byte
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EnterpriseID, &req.RequestedAmount, &req.AccountID, &req.Status,
		&approvals, &req.ScheduledTransactionID, &req.RejectionReason, &req.RejectionNote, &req.RejectedBy,
		&req.Version, &req.CreatedAt, &req.UpdatedAt, &req.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wage advance request: %w", err)
	}
	if len(approvals) > 0 {
		if err := json.Unmarshal(approvals, &req.DeciderApprovals); err != nil {
			return nil, fmt.Errorf("decode decider approvals of %s: %w", req.ID, err)
		}
	}
	return req, nil
}
