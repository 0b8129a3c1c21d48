package ports

import (
	"context"
	"errors"
	"time"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrOutstandingOperation is returned by OperationRepository.Create when the
	// parent already has an operation awaiting signature or confirmation.
	ErrOutstandingOperation = errors.New("outstanding operation exists for parent")

	// ErrVersionConflict is returned when an optimistic version check fails.
	ErrVersionConflict = errors.New("version conflict")
)

// OperationRepository defines persistence for ledger operations.
// Methods accepting pgx.Tx run inside the caller's transaction.
type OperationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operation, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Operation, error)
	Update(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
	FindOutstandingForUpdate(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) (*domain.Operation, error)
	ListByParent(ctx context.Context, ref domain.ParentRef) ([]*domain.Operation, error)
	CountFailed(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, opType domain.OperationType) (int, error)
	// ListStale returns PENDING_SIGNATURE operations created before olderThan, oldest first.
	ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Operation, error)
}

// OperationAuditRepository is the append-only history of operation writes.
type OperationAuditRepository interface {
	Append(ctx context.Context, tx pgx.Tx, entry *domain.OperationAudit) error
	ListByOperation(ctx context.Context, operationID uuid.UUID) ([]*domain.OperationAudit, error)
}

// WageAdvanceRepository defines persistence for wage-advance requests.
// Update bumps Version and returns ErrVersionConflict when the stored
// version differs from the one on the passed request.
type WageAdvanceRepository interface {
	Create(ctx context.Context, req *domain.WageAdvanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WageAdvanceRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WageAdvanceRequest, error)
	GetByScheduledTransactionID(ctx context.Context, txID string) (*domain.WageAdvanceRequest, error)
	Update(ctx context.Context, tx pgx.Tx, req *domain.WageAdvanceRequest) error
	ListByEnterprise(ctx context.Context, params HistoryListParams) ([]*domain.WageAdvanceRequest, int64, error)
}

// HistoryListParams holds filter + pagination for an enterprise's history.
type HistoryListParams struct {
	EnterpriseID uuid.UUID
	Status       *domain.WageAdvanceStatus
	Page         int
	PageSize     int
}

// PaymentRequestRepository defines persistence for shop payment requests.
type PaymentRequestRepository interface {
	Create(ctx context.Context, req *domain.PaymentRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error)
	Update(ctx context.Context, tx pgx.Tx, req *domain.PaymentRequest) error
}

// SwapIntentRepository defines persistence for swap intents.
type SwapIntentRepository interface {
	Create(ctx context.Context, intent *domain.SwapIntent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapIntent, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SwapIntent, error)
	Update(ctx context.Context, tx pgx.Tx, intent *domain.SwapIntent) error
}

// AuditRepository persists HTTP audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
