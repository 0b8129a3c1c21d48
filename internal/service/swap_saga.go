package service

import (
	"context"
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

// SwapSaga implements ports.SwapService and is the reconciler continuation
// for swap_intent parents.
type SwapSaga struct {
	sagaBase
	repo ports.SwapIntentRepository
	ttl  time.Duration
}

// NewSwapSaga creates a new SwapSaga. Intents expire ttl after creation.
func NewSwapSaga(repo ports.SwapIntentRepository, deps SagaDeps, ttl time.Duration, log zerolog.Logger) *SwapSaga {
	return &SwapSaga{
		sagaBase: newSagaBase(deps, logger.Component(log, "swap_saga")),
		repo:     repo,
		ttl:      ttl,
	}
}

// CreateSwapIntent records the user's intent to swap amount of the
// enterprise token through the enterprise's swap contract.
func (s *SwapSaga) CreateSwapIntent(ctx context.Context, userID uuid.UUID, amount int64) (*domain.SwapIntent, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleEmployee && user.Role != domain.RoleShop {
		return nil, apperror.ErrForbidden()
	}
	policy, err := s.policy(ctx, user.EnterpriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	intent := &domain.SwapIntent{
		ID:           uuid.New(),
		UserID:       user.ID,
		EnterpriseID: user.EnterpriseID,
		AccountID:    user.AccountID,
		TokenID:      policy.TokenID,
		ContractID:   policy.SwapContractID,
		Amount:       amount,
		Status:       domain.SwapIntentPending,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, intent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create swap intent: %w", err))
	}

	s.metrics.ParentTransitioned(domain.ParentSwapIntent, string(intent.Status))
	s.log.Info().
		Str("swap_intent_id", intent.ID.String()).
		Str("user_id", user.ID.String()).
		Int64("amount", amount).
		Msg("swap intent created")
	return intent, nil
}

// PrepareSwap prepares the contract call for an open intent.
func (s *SwapSaga) PrepareSwap(ctx context.Context, intentID uuid.UUID) (*StepResult, error) {
	var result *StepResult
	err := s.guard.run(ctx, domain.NewParentRef(domain.ParentSwapIntent, intentID), func(ctx context.Context, tx pgx.Tx) error {
		intent, err := s.lock(ctx, tx, intentID)
		if err != nil {
			return err
		}
		now := s.now()
		if intent.IsExpired(now) {
			if intent.Status == domain.SwapIntentPending {
				intent.Status = domain.SwapIntentExpired
				intent.UpdatedAt = now
				if err := s.repo.Update(ctx, tx, intent); err != nil {
					return apperror.InternalError(fmt.Errorf("expire swap intent: %w", err))
				}
				s.transitioned(ctx, intent.EnterpriseID, intent.Ref(), string(intent.Status), "", true)
			}
			return commitAndFail{apperror.ErrExpired("swap intent")}
		}
		if intent.Status != domain.SwapIntentPending {
			return apperror.ErrInvalidState(fmt.Sprintf("swap intent is %s", intent.Status))
		}
		if err := s.requireNoOutstanding(ctx, tx, intent.Ref()); err != nil {
			return err
		}

		payload, err := s.preparer.Prepare(ctx, domain.IntentContractSwap, domain.PrepareParams{
			AccountID:  intent.AccountID,
			TokenID:    intent.TokenID,
			ContractID: intent.ContractID,
			Amount:     intent.Amount,
		})
		if err != nil {
			return err
		}
		op, err := s.record(ctx, tx, intent.Ref(), payload, nil, intent.UserID.String())
		if err != nil {
			return err
		}
		result = &StepResult{Parent: intent, Operation: op, Payload: payload}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a swap intent by id.
func (s *SwapSaga) Get(ctx context.Context, intentID uuid.UUID) (*domain.SwapIntent, error) {
	intent, err := s.repo.GetByID(ctx, intentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get swap intent: %w", err))
	}
	if intent == nil {
		return nil, apperror.ErrNotFound("swap intent")
	}
	return intent, nil
}

// --- reconciler continuation ---

// LockParent implements ports.SagaContinuation.
func (s *SwapSaga) LockParent(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) error {
	_, err := s.lock(ctx, tx, parentID)
	return err
}

// OnSubmitted implements ports.SagaContinuation.
func (s *SwapSaga) OnSubmitted(_ context.Context, _ pgx.Tx, op *domain.Operation) error {
	s.log.Debug().Str("operation_id", op.ID.String()).Msg("awaiting confirmation")
	return nil
}

// OnFailed implements ports.SagaContinuation. The intent stays pending.
func (s *SwapSaga) OnFailed(_ context.Context, _ pgx.Tx, op *domain.Operation, cause domain.FailureCause) error {
	s.log.Info().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Str("cause", string(cause)).
		Msg("swap failed, intent stays open")
	return nil
}

// OnConfirmed implements ports.SagaContinuation.
func (s *SwapSaga) OnConfirmed(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	intent, err := s.lock(ctx, tx, op.ParentRef.ID)
	if err != nil {
		return err
	}
	if intent.Status == domain.SwapIntentSwapped {
		s.log.Warn().Str("swap_intent_id", intent.ID.String()).Str("operation_id", op.ID.String()).Msg("intent already swapped")
		return nil
	}

	intent.TransactionID = op.TransactionID
	if intent.TransactionID == nil {
		if prepared, ok := preparedTransactionID(op.UnsignedTransaction); ok {
			intent.TransactionID = &prepared
		}
	}
	now := s.now()
	intent.SwappedAt = &now
	intent.Status = domain.SwapIntentSwapped
	intent.UpdatedAt = now
	if err := s.repo.Update(ctx, tx, intent); err != nil {
		return apperror.InternalError(fmt.Errorf("update swap intent: %w", err))
	}
	s.transitioned(ctx, intent.EnterpriseID, intent.Ref(), string(intent.Status), "", true)
	return nil
}

func (s *SwapSaga) lock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SwapIntent, error) {
	intent, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock swap intent: %w", err))
	}
	if intent == nil {
		return nil, apperror.ErrNotFound("swap intent")
	}
	return intent, nil
}
