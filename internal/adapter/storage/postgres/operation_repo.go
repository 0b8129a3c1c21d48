package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const operationColumns = `id, seq, type, status, parent_ref, details, unsigned_transaction,
	signer_account_id, transaction_id, failure_reason, evidence, created_at, updated_at, completed_at`

const outstandingStatuses = `('PENDING_SIGNATURE', 'PENDING_CONFIRMATION')`

// OperationRepo implements ports.OperationRepository.
type OperationRepo struct {
	pool Pool
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(pool Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

// Create inserts a new operation and fills in its sequence number.
// A second outstanding operation for the same parent trips the partial
// unique index and is reported as ports.ErrOutstandingOperation.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	details, err := domain.EncodeDetails(op.Details)
	if err != nil {
		return err
	}

	query := `INSERT INTO operations (id, type, status, parent_ref, details, unsigned_transaction,
		signer_account_id, transaction_id, failure_reason, evidence, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq`

	err = tx.QueryRow(ctx, query,
		op.ID, op.Type, op.Status, op.ParentRef.String(), details, op.UnsignedTransaction,
		op.SignerAccountID, op.TransactionID, op.FailureReason, op.Evidence,
		op.CreatedAt, op.UpdatedAt, op.CompletedAt,
	).Scan(&op.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrOutstandingOperation
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID fetches an operation by UUID.
func (r *OperationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	return scanOperation(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches an operation with a row-level lock.
func (r *OperationRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1 FOR UPDATE`
	return scanOperation(tx.QueryRow(ctx, query, id))
}

// Update writes the mutable lifecycle fields of an operation.
func (r *OperationRepo) Update(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	query := `UPDATE operations SET status = $1, transaction_id = $2, failure_reason = $3,
		evidence = $4, updated_at = $5, completed_at = $6 WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		op.Status, op.TransactionID, op.FailureReason, op.Evidence,
		op.UpdatedAt, op.CompletedAt, op.ID,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("operation not found: %s", op.ID)
	}
	return nil
}

// FindOutstandingForUpdate returns the parent's PENDING_* operation, if any,
// with a row-level lock.
func (r *OperationRepo) FindOutstandingForUpdate(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations
		WHERE parent_ref = $1 AND status IN ` + outstandingStatuses + ` FOR UPDATE`
	return scanOperation(tx.QueryRow(ctx, query, ref.String()))
}

// ListByParent returns every operation of a parent in creation order.
func (r *OperationRepo) ListByParent(ctx context.Context, ref domain.ParentRef) ([]*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE parent_ref = $1 ORDER BY seq`
	rows, err := r.pool.Query(ctx, query, ref.String())
	if err != nil {
		return nil, fmt.Errorf("list operations by parent: %w", err)
	}
	return collectOperations(rows)
}

// CountFailed counts FAILED operations of one type for a parent.
func (r *OperationRepo) CountFailed(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, opType domain.OperationType) (int, error) {
	query := `SELECT COUNT(*) FROM operations WHERE parent_ref = $1 AND type = $2 AND status = 'FAILED'`
	var n int
	if err := tx.QueryRow(ctx, query, ref.String(), opType).Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed operations: %w", err)
	}
	return n, nil
}

// ListStale returns PENDING_SIGNATURE operations created before olderThan.
func (r *OperationRepo) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations
		WHERE status = 'PENDING_SIGNATURE' AND created_at < $1
		ORDER BY created_at, seq LIMIT $2`
	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale operations: %w", err)
	}
	return collectOperations(rows)
}

func collectOperations(rows pgx.Rows) ([]*domain.Operation, error) {
	defer rows.Close()
	var ops []*domain.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operation rows: %w", err)
	}
	return ops, nil
}

// scanOperation scans one row; (nil, nil) when there is none.
func scanOperation(row pgx.Row) (*domain.Operation, error) {
	op := &domain.Operation{}
	var parentRef string
	var details []byte
	err := row.Scan(
		&op.ID, &op.Seq, &op.Type, &op.Status, &parentRef, &details, &op.UnsignedTransaction,
		&op.SignerAccountID, &op.TransactionID, &op.FailureReason, &op.Evidence,
		&op.CreatedAt, &op.UpdatedAt, &op.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan operation: %w", err)
	}

	if op.ParentRef, err = domain.ParseParentRef(parentRef); err != nil {
		return nil, fmt.Errorf("scan operation %s: %w", op.ID, err)
	}
	if op.Details, err = domain.DecodeDetails(op.Type, details); err != nil {
		return nil, fmt.Errorf("scan operation %s: %w", op.ID, err)
	}
	return op, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
