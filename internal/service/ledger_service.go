package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const defaultStaleLimit = 100

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	opRepo    ports.OperationRepository
	auditRepo ports.OperationAuditRepository
	metrics   ports.EngineMetrics
	log       zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	opRepo ports.OperationRepository,
	auditRepo ports.OperationAuditRepository,
	metrics ports.EngineMetrics,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		opRepo:    opRepo,
		auditRepo: auditRepo,
		metrics:   metrics,
		log:       logger.Component(log, "ledger"),
	}
}

// CreateOperation records a PENDING_SIGNATURE operation for the parent.
// The outstanding check runs in tx and is backed by a storage-level constraint.
func (s *LedgerServiceImpl) CreateOperation(ctx context.Context, tx pgx.Tx, in ports.CreateOperationInput) (*domain.Operation, error) {
	if !in.Type.Valid() {
		return nil, apperror.InternalError(fmt.Errorf("unknown operation type %q", in.Type))
	}
	if in.Details == nil || in.Details.OperationType() != in.Type {
		return nil, apperror.InternalError(fmt.Errorf("details do not match operation type %q", in.Type))
	}

	existing, err := s.opRepo.FindOutstandingForUpdate(ctx, tx, in.ParentRef)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find outstanding: %w", err))
	}
	if existing != nil {
		s.log.Warn().
			Str("parent_ref", in.ParentRef.String()).
			Str("outstanding_id", existing.ID.String()).
			Msg("operation rejected, parent has an outstanding operation")
		return nil, apperror.ErrOutstandingOperation()
	}

	now := time.Now().UTC()
	op := &domain.Operation{
		ID:                  uuid.New(),
		Type:                in.Type,
		Status:              domain.OperationPendingSignature,
		ParentRef:           in.ParentRef,
		Details:             in.Details,
		UnsignedTransaction: in.UnsignedTransaction,
		SignerAccountID:     in.SignerAccountID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.opRepo.Create(ctx, tx, op); err != nil {
		if errors.Is(err, ports.ErrOutstandingOperation) {
			return nil, apperror.ErrOutstandingOperation()
		}
		return nil, apperror.InternalError(fmt.Errorf("create operation: %w", err))
	}

	if err := s.appendAudit(ctx, tx, op, "", nil, in.Actor, nil); err != nil {
		return nil, err
	}

	s.metrics.OperationCreated(op.Type)
	s.log.Info().
		Str("operation_id", op.ID.String()).
		Str("type", string(op.Type)).
		Str("parent_ref", op.ParentRef.String()).
		Msg("operation created")

	return op, nil
}

// PatchOperation applies one of the normal lifecycle edges.
func (s *LedgerServiceImpl) PatchOperation(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch domain.OperationPatch, actor string) (*domain.Operation, bool, error) {
	op, err := s.opRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("lock operation: %w", err))
	}
	if op == nil {
		return nil, false, apperror.ErrNotFound("Operation")
	}
	if op.Status == patch.Status {
		return op, false, nil
	}
	if !domain.CanTransition(op.Status, patch.Status) {
		s.log.Warn().
			Str("operation_id", id.String()).
			Str("from", string(op.Status)).
			Str("to", string(patch.Status)).
			Msg("invalid operation transition")
		return nil, false, apperror.ErrInvalidTransition(string(op.Status), string(patch.Status))
	}

	prior, err := snapshotOperation(op)
	if err != nil {
		return nil, false, apperror.InternalError(err)
	}

	from := op.Status
	now := time.Now().UTC()
	op.Status = patch.Status
	if patch.TransactionID != nil {
		op.TransactionID = patch.TransactionID
	}
	if patch.FailureReason != nil {
		op.FailureReason = patch.FailureReason
	}
	if patch.Evidence != nil {
		op.Evidence = patch.Evidence
	}
	op.CompletedAt = patch.CompletedAt
	if op.Status.IsTerminal() && op.CompletedAt == nil {
		op.CompletedAt = &now
	}
	op.UpdatedAt = now

	if err := s.opRepo.Update(ctx, tx, op); err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("update operation: %w", err))
	}
	if err := s.appendAudit(ctx, tx, op, from, prior, actor, patch.Evidence); err != nil {
		return nil, false, err
	}

	s.metrics.OperationTransitioned(op.Type, from, op.Status)
	s.log.Info().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Str("from", string(from)).
		Str("to", string(op.Status)).
		Str("actor", actor).
		Msg("operation patched")

	return op, true, nil
}

// ForceSuccess is the administrative repair path: PENDING_SIGNATURE or
// PENDING_CONFIRMATION straight to SUCCESS with evidence kept in the audit row.
func (s *LedgerServiceImpl) ForceSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, evidence, actor string) (*domain.Operation, bool, error) {
	if evidence == "" {
		return nil, false, apperror.ErrEvidenceRequired()
	}
	op, err := s.opRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("lock operation: %w", err))
	}
	if op == nil {
		return nil, false, apperror.ErrNotFound("Operation")
	}
	switch op.Status {
	case domain.OperationSuccess:
		return op, false, nil
	case domain.OperationFailed:
		s.log.Warn().
			Str("operation_id", id.String()).
			Str("from", string(op.Status)).
			Str("to", string(domain.OperationSuccess)).
			Msg("force-complete refused on failed operation")
		return nil, false, apperror.ErrInvalidTransition(string(op.Status), string(domain.OperationSuccess))
	}

	prior, err := snapshotOperation(op)
	if err != nil {
		return nil, false, apperror.InternalError(err)
	}

	from := op.Status
	now := time.Now().UTC()
	op.Status = domain.OperationSuccess
	op.Evidence = &evidence
	op.CompletedAt = &now
	op.UpdatedAt = now

	if err := s.opRepo.Update(ctx, tx, op); err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("update operation: %w", err))
	}
	if err := s.appendAudit(ctx, tx, op, from, prior, actor, &evidence); err != nil {
		return nil, false, err
	}

	s.metrics.OperationTransitioned(op.Type, from, op.Status)
	s.log.Warn().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Str("from", string(from)).
		Str("actor", actor).
		Msg("operation force-completed")

	return op, true, nil
}

// FindOutstanding returns the parent's PENDING_* operation, or nil.
func (s *LedgerServiceImpl) FindOutstanding(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) (*domain.Operation, error) {
	op, err := s.opRepo.FindOutstandingForUpdate(ctx, tx, ref)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find outstanding: %w", err))
	}
	return op, nil
}

// LockOperation reads an operation FOR UPDATE inside tx.
func (s *LedgerServiceImpl) LockOperation(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Operation, error) {
	op, err := s.opRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock operation: %w", err))
	}
	if op == nil {
		return nil, apperror.ErrNotFound("Operation")
	}
	return op, nil
}

func (s *LedgerServiceImpl) GetOperation(ctx context.Context, id uuid.UUID) (*domain.Operation, error) {
	op, err := s.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get operation: %w", err))
	}
	if op == nil {
		return nil, apperror.ErrNotFound("Operation")
	}
	return op, nil
}

func (s *LedgerServiceImpl) ListByParent(ctx context.Context, ref domain.ParentRef) ([]*domain.Operation, error) {
	ops, err := s.opRepo.ListByParent(ctx, ref)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list operations: %w", err))
	}
	return ops, nil
}

// AuditTrail returns the operation's history, oldest first.
func (s *LedgerServiceImpl) AuditTrail(ctx context.Context, id uuid.UUID) ([]*domain.OperationAudit, error) {
	if _, err := s.GetOperation(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListByOperation(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list audit: %w", err))
	}
	return entries, nil
}

// ListStale reports operations stuck in PENDING_SIGNATURE for longer than olderThan.
func (s *LedgerServiceImpl) ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.Operation, error) {
	if olderThan <= 0 {
		return nil, apperror.Validation("older_than must be positive")
	}
	if limit <= 0 {
		limit = defaultStaleLimit
	}
	ops, err := s.opRepo.ListStale(ctx, time.Now().UTC().Add(-olderThan), limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list stale: %w", err))
	}
	return ops, nil
}

func (s *LedgerServiceImpl) CountFailed(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, opType domain.OperationType) (int, error) {
	n, err := s.opRepo.CountFailed(ctx, tx, ref, opType)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("count failed: %w", err))
	}
	return n, nil
}

func (s *LedgerServiceImpl) appendAudit(ctx context.Context, tx pgx.Tx, op *domain.Operation, from domain.OperationStatus, prior []byte, actor string, evidence *string) error {
	if actor == "" {
		actor = "system"
	}
	entry := &domain.OperationAudit{
		ID:          uuid.New(),
		OperationID: op.ID,
		FromStatus:  from,
		ToStatus:    op.Status,
		Snapshot:    prior,
		Actor:       actor,
		Evidence:    evidence,
		CreatedAt:   op.UpdatedAt,
	}
	if err := s.auditRepo.Append(ctx, tx, entry); err != nil {
		return apperror.InternalError(fmt.Errorf("append audit: %w", err))
	}
	return nil
}

// operationSnapshot renders an operation with its details envelope inline.
type operationSnapshot struct {
	*domain.Operation
	Details json.RawMessage `json:"details"`
}

func snapshotOperation(op *domain.Operation) ([]byte, error) {
	details, err := domain.EncodeDetails(op.Details)
	if err != nil {
		return nil, fmt.Errorf("snapshot operation %s: %w", op.ID, err)
	}
	b, err := json.Marshal(operationSnapshot{Operation: op, Details: details})
	if err != nil {
		return nil, fmt.Errorf("snapshot operation %s: %w", op.ID, err)
	}
	return b, nil
}
