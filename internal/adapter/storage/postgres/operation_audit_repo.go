package postgres

import (
	"context"
	"fmt"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OperationAuditRepo implements ports.OperationAuditRepository.
// Rows are only ever inserted.
type OperationAuditRepo struct {
	pool Pool
}

// NewOperationAuditRepo creates a new OperationAuditRepo.
func NewOperationAuditRepo(pool Pool) *OperationAuditRepo {
	return &OperationAuditRepo{pool: pool}
}

// Append inserts one history entry inside the caller's transaction.
func (r *OperationAuditRepo) Append(ctx context.Context, tx pgx.Tx, e *domain.OperationAudit) error {
	var from *string
	if e.FromStatus != "" {
		s := string(e.FromStatus)
		from = &s
	}

	query := `INSERT INTO operation_audit (id, operation_id, from_status, to_status, snapshot, actor, evidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.OperationID, from, e.ToStatus, e.Snapshot, e.Actor, e.Evidence, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation audit: %w", err)
	}
	return nil
}

// ListByOperation returns an operation's history, oldest first.
func (r *OperationAuditRepo) ListByOperation(ctx context.Context, operationID uuid.UUID) ([]*domain.OperationAudit, error) {
	query := `SELECT id, operation_id, from_status, to_status, snapshot, actor, evidence, created_at
		FROM operation_audit WHERE operation_id = $1 ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, operationID)
	if err != nil {
		return nil, fmt.Errorf("list operation audit: %w", err)
	}
	defer rows.Close()

	var entries []*domain.OperationAudit
	for rows.Next() {
		e := &domain.OperationAudit{}
		var from *string
		if err := rows.Scan(&e.ID, &e.OperationID, &from, &e.ToStatus, &e.Snapshot, &e.Actor, &e.Evidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation audit row: %w", err)
		}
		if from != nil {
			e.FromStatus = domain.OperationStatus(*from)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operation audit rows: %w", err)
	}
	return entries, nil
}
