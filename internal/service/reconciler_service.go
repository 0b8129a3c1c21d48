package service

import (
	"context"
	"fmt"
	"sync"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ReconcilerServiceImpl implements ports.ReconcilerService.
type ReconcilerServiceImpl struct {
	ledger ports.LedgerService
	guard  parentGuard
	log    zerolog.Logger

	mu    sync.RWMutex
	conts map[domain.ParentKind]ports.SagaContinuation
}

// NewReconcilerService creates a new ReconcilerServiceImpl. Sagas register
// their continuations with Register before the first call.
func NewReconcilerService(
	ledger ports.LedgerService,
	locker ports.ParentLocker,
	transactor ports.DBTransactor,
	metrics ports.EngineMetrics,
	log zerolog.Logger,
) *ReconcilerServiceImpl {
	return &ReconcilerServiceImpl{
		ledger: ledger,
		guard:  parentGuard{locker: locker, transactor: transactor, metrics: metrics},
		log:    logger.Component(log, "reconciler"),
		conts:  make(map[domain.ParentKind]ports.SagaContinuation),
	}
}

// Register binds the continuation for a parent kind.
func (s *ReconcilerServiceImpl) Register(kind domain.ParentKind, cont ports.SagaContinuation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conts[kind] = cont
}

func (s *ReconcilerServiceImpl) continuation(kind domain.ParentKind) (ports.SagaContinuation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cont, ok := s.conts[kind]
	if !ok {
		return nil, apperror.InternalError(fmt.Errorf("no continuation registered for %q", kind))
	}
	return cont, nil
}

// ReportOutcome records what the signer returned for a PENDING_SIGNATURE
// operation. Repeating an outcome that is already recorded is a no-op.
func (s *ReconcilerServiceImpl) ReportOutcome(ctx context.Context, operationID uuid.UUID, outcome domain.Outcome, actor string) (*domain.Operation, error) {
	txID := normalizeText(outcome.TransactionID)
	if outcome.Cancelled == (txID != "") {
		return nil, apperror.Validation("exactly one of transaction_id or cancelled must be set")
	}

	return s.withOperation(ctx, operationID, func(tx pgx.Tx, cur *domain.Operation, cont ports.SagaContinuation) (*domain.Operation, error) {
		if outcome.Cancelled {
			if cur.Status == domain.OperationFailed && cur.FailureReason != nil && *cur.FailureReason == domain.FailureCancelled {
				return cur, nil
			}
			if cur.Status != domain.OperationPendingSignature {
				return nil, s.invalid(cur, domain.OperationFailed)
			}
			op, _, err := s.ledger.PatchOperation(ctx, tx, cur.ID, domain.OperationPatch{
				Status:        domain.OperationFailed,
				FailureReason: stringPtr(domain.FailureCancelled),
			}, actor)
			if err != nil {
				return nil, err
			}
			if err := cont.OnFailed(ctx, tx, op, domain.CauseCancelled); err != nil {
				return nil, asAppError(err, "saga on failed")
			}
			return op, nil
		}

		switch cur.Status {
		case domain.OperationPendingConfirmation, domain.OperationSuccess:
			if cur.TransactionID != nil && *cur.TransactionID == txID {
				return cur, nil
			}
			return nil, s.invalid(cur, domain.OperationPendingConfirmation)
		case domain.OperationFailed:
			return nil, s.invalid(cur, domain.OperationPendingConfirmation)
		}

		op, _, err := s.ledger.PatchOperation(ctx, tx, cur.ID, domain.OperationPatch{
			Status:        domain.OperationPendingConfirmation,
			TransactionID: &txID,
		}, actor)
		if err != nil {
			return nil, err
		}
		if err := cont.OnSubmitted(ctx, tx, op); err != nil {
			return nil, asAppError(err, "saga on submitted")
		}
		return op, nil
	})
}

// Confirm applies the watcher's verdict on a submitted operation. Repeating
// a verdict that is already recorded is a no-op.
func (s *ReconcilerServiceImpl) Confirm(ctx context.Context, operationID uuid.UUID, success bool, reason string) (*domain.Operation, error) {
	return s.withOperation(ctx, operationID, func(tx pgx.Tx, cur *domain.Operation, cont ports.SagaContinuation) (*domain.Operation, error) {
		if success {
			switch cur.Status {
			case domain.OperationSuccess:
				return cur, nil
			case domain.OperationPendingConfirmation:
			default:
				return nil, s.invalid(cur, domain.OperationSuccess)
			}
			op, _, err := s.ledger.PatchOperation(ctx, tx, cur.ID, domain.OperationPatch{
				Status: domain.OperationSuccess,
			}, "watcher")
			if err != nil {
				return nil, err
			}
			if err := cont.OnConfirmed(ctx, tx, op); err != nil {
				return nil, asAppError(err, "saga on confirmed")
			}
			return op, nil
		}

		switch cur.Status {
		case domain.OperationFailed:
			return cur, nil
		case domain.OperationPendingConfirmation:
		default:
			return nil, s.invalid(cur, domain.OperationFailed)
		}
		failure := normalizeText(reason)
		if failure == "" {
			failure = domain.FailureChainRejected
		}
		op, _, err := s.ledger.PatchOperation(ctx, tx, cur.ID, domain.OperationPatch{
			Status:        domain.OperationFailed,
			FailureReason: &failure,
		}, "watcher")
		if err != nil {
			return nil, err
		}
		if err := cont.OnFailed(ctx, tx, op, domain.CauseChainRejected); err != nil {
			return nil, asAppError(err, "saga on failed")
		}
		return op, nil
	})
}

// ForceComplete is the administrative repair for an operation that succeeded
// on-chain without the outcome being reported. Never called automatically.
func (s *ReconcilerServiceImpl) ForceComplete(ctx context.Context, operationID uuid.UUID, evidence, actor string) (*domain.Operation, error) {
	ev, ok := normalizeEvidence(evidence)
	if !ok {
		return nil, apperror.ErrEvidenceRequired()
	}
	if actor == "" {
		return nil, apperror.Validation("actor is required")
	}

	return s.withOperation(ctx, operationID, func(tx pgx.Tx, cur *domain.Operation, cont ports.SagaContinuation) (*domain.Operation, error) {
		op, changed, err := s.ledger.ForceSuccess(ctx, tx, cur.ID, ev, actor)
		if err != nil {
			return nil, err
		}
		if !changed {
			return op, nil
		}
		if err := cont.OnConfirmed(ctx, tx, op); err != nil {
			return nil, asAppError(err, "saga on confirmed")
		}
		return op, nil
	})
}

// withOperation resolves the operation's parent, enters the parent critical
// section and hands fn the operation as read under the lock.
func (s *ReconcilerServiceImpl) withOperation(
	ctx context.Context,
	operationID uuid.UUID,
	fn func(tx pgx.Tx, cur *domain.Operation, cont ports.SagaContinuation) (*domain.Operation, error),
) (*domain.Operation, error) {
	op, err := s.ledger.GetOperation(ctx, operationID)
	if err != nil {
		return nil, err
	}
	cont, err := s.continuation(op.ParentRef.Kind)
	if err != nil {
		return nil, err
	}

	var result *domain.Operation
	err = s.guard.run(ctx, op.ParentRef, func(ctx context.Context, tx pgx.Tx) error {
		if err := cont.LockParent(ctx, tx, op.ParentRef.ID); err != nil {
			return asAppError(err, "lock parent")
		}
		cur, err := s.ledger.LockOperation(ctx, tx, operationID)
		if err != nil {
			return err
		}
		result, err = fn(tx, cur, cont)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReconcilerServiceImpl) invalid(op *domain.Operation, to domain.OperationStatus) error {
	s.log.Warn().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Str("from", string(op.Status)).
		Str("to", string(to)).
		Msg("invalid operation transition")
	return apperror.ErrInvalidTransition(string(op.Status), string(to))
}
