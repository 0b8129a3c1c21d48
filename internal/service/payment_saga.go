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

// PaymentSaga implements ports.PaymentService and is the reconciler
// continuation for payment_request parents.
type PaymentSaga struct {
	sagaBase
	repo ports.PaymentRequestRepository
	ttl  time.Duration
}

// NewPaymentSaga creates a new PaymentSaga. Requests expire ttl after creation.
func NewPaymentSaga(repo ports.PaymentRequestRepository, deps SagaDeps, ttl time.Duration, log zerolog.Logger) *PaymentSaga {
	return &PaymentSaga{
		sagaBase: newSagaBase(deps, logger.Component(log, "payment_saga")),
		repo:     repo,
		ttl:      ttl,
	}
}

// CreatePaymentRequest issues a request the shop's customers can settle.
func (s *PaymentSaga) CreatePaymentRequest(ctx context.Context, shopID uuid.UUID, amount int64, memo string) (*domain.PaymentRequest, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	memo, ok := normalizeMemo(memo)
	if !ok {
		return nil, apperror.Validation("memo must be at most 100 characters")
	}
	shop, err := s.user(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.Role != domain.RoleShop {
		return nil, apperror.ErrForbidden()
	}
	policy, err := s.policy(ctx, shop.EnterpriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req := &domain.PaymentRequest{
		ID:            uuid.New(),
		ShopID:        shop.ID,
		EnterpriseID:  shop.EnterpriseID,
		ShopAccountID: shop.AccountID,
		TokenID:       policy.TokenID,
		Amount:        amount,
		Memo:          memo,
		Status:        domain.PaymentRequestPending,
		ExpiresAt:     now.Add(s.ttl),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment request: %w", err))
	}

	s.metrics.ParentTransitioned(domain.ParentPaymentRequest, string(req.Status))
	s.log.Info().
		Str("payment_request_id", req.ID.String()).
		Str("shop_id", shop.ID.String()).
		Int64("amount", amount).
		Time("expires_at", req.ExpiresAt).
		Msg("payment request created")
	return req, nil
}

// PrepareShopAcceptance prepares the shop's association with the token it
// is about to be paid in.
func (s *PaymentSaga) PrepareShopAcceptance(ctx context.Context, paymentRequestID uuid.UUID) (*StepResult, error) {
	var result *StepResult
	err := s.guard.run(ctx, domain.NewParentRef(domain.ParentPaymentRequest, paymentRequestID), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockOpen(ctx, tx, paymentRequestID)
		if err != nil {
			return err
		}
		if err := s.requireNoOutstanding(ctx, tx, req.Ref()); err != nil {
			return err
		}
		payload, err := s.preparer.Prepare(ctx, domain.IntentShopAcceptToken, domain.PrepareParams{
			AccountID: req.ShopAccountID,
			TokenID:   req.TokenID,
		})
		if err != nil {
			return err
		}
		result = &StepResult{Parent: req, Payload: payload}
		if !payload.Required {
			return nil
		}
		op, err := s.record(ctx, tx, req.Ref(), payload, nil, req.ShopID.String())
		if err != nil {
			return err
		}
		result.Operation = op
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PreparePayment prepares the payer -> shop transfer settling the request.
func (s *PaymentSaga) PreparePayment(ctx context.Context, paymentRequestID, payerID uuid.UUID) (*StepResult, error) {
	payer, err := s.user(ctx, payerID)
	if err != nil {
		return nil, err
	}

	var result *StepResult
	err = s.guard.run(ctx, domain.NewParentRef(domain.ParentPaymentRequest, paymentRequestID), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockOpen(ctx, tx, paymentRequestID)
		if err != nil {
			return err
		}
		if payer.AccountID == req.ShopAccountID {
			return apperror.Validation("shop cannot pay its own request")
		}
		if err := s.requireNoOutstanding(ctx, tx, req.Ref()); err != nil {
			return err
		}
		payload, err := s.preparer.Prepare(ctx, domain.IntentPaymentTransfer, domain.PrepareParams{
			AccountID:      payer.AccountID,
			CounterpartyID: req.ShopAccountID,
			TokenID:        req.TokenID,
			Amount:         req.Amount,
			Memo:           req.Memo,
		})
		if err != nil {
			return err
		}

		details, ok := payload.Details.(domain.PaymentTransferDetails)
		if !ok {
			return apperror.InternalError(fmt.Errorf("payment payload carries %T", payload.Details))
		}
		details.PayerID = payer.ID.String()
		op, err := s.record(ctx, tx, req.Ref(), payload, details, payer.ID.String())
		if err != nil {
			return err
		}
		result = &StepResult{Parent: req, Operation: op, Payload: payload}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a payment request by id.
func (s *PaymentSaga) Get(ctx context.Context, paymentRequestID uuid.UUID) (*domain.PaymentRequest, error) {
	req, err := s.repo.GetByID(ctx, paymentRequestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment request: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("payment request")
	}
	return req, nil
}

// --- reconciler continuation ---

// LockParent implements ports.SagaContinuation.
func (s *PaymentSaga) LockParent(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) error {
	_, err := s.lock(ctx, tx, parentID)
	return err
}

// OnSubmitted implements ports.SagaContinuation.
func (s *PaymentSaga) OnSubmitted(_ context.Context, _ pgx.Tx, op *domain.Operation) error {
	s.log.Debug().Str("operation_id", op.ID.String()).Msg("awaiting confirmation")
	return nil
}

// OnFailed implements ports.SagaContinuation. The request stays pending and
// can be prepared again until it expires.
func (s *PaymentSaga) OnFailed(_ context.Context, _ pgx.Tx, op *domain.Operation, cause domain.FailureCause) error {
	s.log.Info().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Str("cause", string(cause)).
		Msg("payment step failed, request stays open")
	return nil
}

// OnConfirmed implements ports.SagaContinuation. A confirmed transfer marks
// the request paid even if it expired meanwhile, since the tokens moved.
func (s *PaymentSaga) OnConfirmed(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	if op.Type != domain.OperationPaymentTransfer {
		s.log.Info().Str("operation_id", op.ID.String()).Str("operation_type", string(op.Type)).Msg("shop accepted token")
		return nil
	}
	req, err := s.lock(ctx, tx, op.ParentRef.ID)
	if err != nil {
		return err
	}
	if req.Status == domain.PaymentRequestPaid {
		s.log.Warn().Str("payment_request_id", req.ID.String()).Str("operation_id", op.ID.String()).Msg("request already paid")
		return nil
	}

	if details, ok := op.Details.(domain.PaymentTransferDetails); ok {
		if payerID, err := uuid.Parse(details.PayerID); err == nil {
			req.PaidBy = &payerID
		}
	}
	req.TransactionID = op.TransactionID
	if req.TransactionID == nil {
		if prepared, ok := preparedTransactionID(op.UnsignedTransaction); ok {
			req.TransactionID = &prepared
		}
	}
	now := s.now()
	req.PaidAt = &now
	req.Status = domain.PaymentRequestPaid
	req.UpdatedAt = now
	if err := s.repo.Update(ctx, tx, req); err != nil {
		return apperror.InternalError(fmt.Errorf("update payment request: %w", err))
	}
	s.transitioned(ctx, req.EnterpriseID, req.Ref(), string(req.Status), "", true)
	return nil
}

func (s *PaymentSaga) lock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	req, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock payment request: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("payment request")
	}
	return req, nil
}

// lockOpen locks the request and refuses unless it can still be prepared.
// An overdue pending request is flipped to expired and the flip is committed.
func (s *PaymentSaga) lockOpen(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	req, err := s.lock(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if req.IsExpired(now) {
		if req.Status == domain.PaymentRequestPending {
			req.Status = domain.PaymentRequestExpired
			req.UpdatedAt = now
			if err := s.repo.Update(ctx, tx, req); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("expire payment request: %w", err))
			}
			s.transitioned(ctx, req.EnterpriseID, req.Ref(), string(req.Status), "", true)
		}
		return nil, commitAndFail{apperror.ErrExpired("payment request")}
	}
	if req.Status != domain.PaymentRequestPending {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("payment request is %s", req.Status))
	}
	return req, nil
}
