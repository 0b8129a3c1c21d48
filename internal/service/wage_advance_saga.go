package service

import (
	"context"
	"errors"
	"fmt"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// WageAdvanceConfig holds the retry budget per step and the schedule memo prefix.
type WageAdvanceConfig struct {
	AssociationMaxAttempts int
	ScheduleMaxAttempts    int
	MemoPrefix             string
}

// WageAdvanceSaga implements ports.WageAdvanceService and is the
// reconciler continuation for wage_advance parents.
type WageAdvanceSaga struct {
	sagaBase
	repo ports.WageAdvanceRepository
	cfg  WageAdvanceConfig
}

// NewWageAdvanceSaga creates a new WageAdvanceSaga.
func NewWageAdvanceSaga(repo ports.WageAdvanceRepository, deps SagaDeps, cfg WageAdvanceConfig, log zerolog.Logger) *WageAdvanceSaga {
	if cfg.AssociationMaxAttempts < 1 {
		cfg.AssociationMaxAttempts = 1
	}
	if cfg.ScheduleMaxAttempts < 1 {
		cfg.ScheduleMaxAttempts = 1
	}
	return &WageAdvanceSaga{
		sagaBase: newSagaBase(deps, logger.Component(log, "wage_advance_saga")),
		repo:     repo,
		cfg:      cfg,
	}
}

// CreateRequest opens a pending advance for an employee.
func (s *WageAdvanceSaga) CreateRequest(ctx context.Context, employeeID uuid.UUID, amount int64) (*domain.WageAdvanceRequest, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	employee, err := s.user(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Role != domain.RoleEmployee {
		return nil, apperror.ErrForbidden()
	}
	policy, err := s.policy(ctx, employee.EnterpriseID)
	if err != nil {
		return nil, err
	}
	if policy.MaxAdvanceAmount > 0 && amount > policy.MaxAdvanceAmount {
		return nil, apperror.ErrLimitExceeded()
	}

	now := s.now()
	req := &domain.WageAdvanceRequest{
		ID:               uuid.New(),
		EmployeeID:       employee.ID,
		EnterpriseID:     employee.EnterpriseID,
		RequestedAmount:  amount,
		Status:           domain.WageAdvancePending,
		DeciderApprovals: []domain.DeciderVote{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wage advance: %w", err))
	}

	s.metrics.ParentTransitioned(domain.ParentWageAdvance, string(req.Status))
	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("employee_id", employee.ID.String()).
		Int64("amount", amount).
		Msg("wage advance requested")
	return req, nil
}

// GetAssociationRequirement prepares the token association for accountID.
// When the account already holds the token the request moves straight to
// scheduling and no operation is recorded.
func (s *WageAdvanceSaga) GetAssociationRequirement(ctx context.Context, requestID uuid.UUID, accountID string) (*StepResult, error) {
	accountID = normalizeText(accountID)
	if !validEntityID(accountID) {
		return nil, apperror.Validation("account_id must be a shard.realm.num id")
	}
	owner, err := s.identities.GetUserByAccount(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user by account: %w", err))
	}
	policy, err := s.requestPolicy(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var result *StepResult
	err = s.guard.run(ctx, domain.NewParentRef(domain.ParentWageAdvance, requestID), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if owner == nil || owner.ID != req.EmployeeID {
			return apperror.ErrUnknownAccount()
		}
		if req.Status != domain.WageAdvancePending && req.Status != domain.WageAdvanceAssociating {
			return apperror.ErrInvalidState(fmt.Sprintf("request is %s, association is no longer possible", req.Status))
		}
		if err := s.requireNoOutstanding(ctx, tx, req.Ref()); err != nil {
			return err
		}

		payload, err := s.preparer.Prepare(ctx, domain.IntentAssociateToken, domain.PrepareParams{
			AccountID: accountID,
			TokenID:   policy.TokenID,
		})
		if err != nil {
			return err
		}

		req.AccountID = &accountID
		result = &StepResult{Payload: payload}
		if !payload.Required {
			s.setStatus(ctx, req, domain.WageAdvanceScheduling)
		} else {
			op, err := s.record(ctx, tx, req.Ref(), payload, nil, req.EmployeeID.String())
			if err != nil {
				return err
			}
			result.Operation = op
			if req.Status == domain.WageAdvancePending {
				s.setStatus(ctx, req, domain.WageAdvanceAssociating)
			}
		}
		if err := s.save(ctx, tx, req); err != nil {
			return err
		}
		result.Parent = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSchedule prepares the scheduled mint of the advance amount to the
// employee's associated account.
func (s *WageAdvanceSaga) CreateSchedule(ctx context.Context, requestID uuid.UUID) (*StepResult, error) {
	policy, err := s.requestPolicy(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var result *StepResult
	err = s.guard.run(ctx, domain.NewParentRef(domain.ParentWageAdvance, requestID), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.WageAdvanceScheduling {
			return apperror.ErrInvalidState(fmt.Sprintf("request is %s, schedule requires scheduling", req.Status))
		}
		if req.AccountID == nil {
			return apperror.ErrInvalidState("request has no associated account")
		}
		if err := s.requireNoOutstanding(ctx, tx, req.Ref()); err != nil {
			return err
		}

		payload, err := s.preparer.Prepare(ctx, domain.IntentScheduleMint, domain.PrepareParams{
			AccountID:         *req.AccountID,
			TreasuryAccountID: policy.TreasuryAccountID,
			TokenID:           policy.TokenID,
			Amount:            req.RequestedAmount,
			Memo:              s.cfg.MemoPrefix + req.ID.String(),
		})
		if err != nil {
			return err
		}
		if !payload.Required {
			return apperror.InternalError(fmt.Errorf("schedule payload for %s marked not required", req.ID))
		}
		op, err := s.record(ctx, tx, req.Ref(), payload, nil, req.EmployeeID.String())
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

// CastApproval appends a decider vote and re-tallies. The last vote per
// decider counts and any rejection ends the request.
func (s *WageAdvanceSaga) CastApproval(ctx context.Context, requestID, deciderID uuid.UUID, approve bool, reason string) (*domain.WageAdvanceRequest, error) {
	decider, err := s.identities.GetUser(ctx, deciderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get decider: %w", err))
	}
	if decider == nil {
		return nil, apperror.ErrUnknownUser()
	}
	if decider.Role != domain.RoleDecider {
		return nil, apperror.ErrForbidden()
	}
	note, ok := normalizeReason(reason)
	if !ok {
		return nil, apperror.Validation("reason must be at most 1000 characters")
	}
	policy, err := s.policy(ctx, decider.EnterpriseID)
	if err != nil {
		return nil, err
	}

	var out *domain.WageAdvanceRequest
	err = s.guard.run(ctx, domain.NewParentRef(domain.ParentWageAdvance, requestID), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.EnterpriseID != decider.EnterpriseID {
			return apperror.ErrForbidden()
		}
		if req.Status != domain.WageAdvanceAwaitingApproval {
			return apperror.ErrInvalidState(fmt.Sprintf("request is %s, votes are closed", req.Status))
		}

		req.DeciderApprovals = append(req.DeciderApprovals, domain.DeciderVote{
			DeciderID: decider.ID,
			Approved:  approve,
			Reason:    note,
			Timestamp: s.now(),
		})
		tally := domain.Tally(req.DeciderApprovals)
		quorum := policy.ApprovalQuorum
		if quorum < 1 {
			quorum = 1
		}
		switch {
		case tally.Rejected:
			rejectedBy := tally.RejectedBy
			req.RejectedBy = &rejectedBy
			req.RejectionReason = stringPtr(domain.RejectionDeciderRejected)
			if tally.Reason != "" {
				req.RejectionNote = stringPtr(tally.Reason)
			}
			s.setStatus(ctx, req, domain.WageAdvanceRejected)
		case tally.Approvals >= quorum:
			s.setStatus(ctx, req, domain.WageAdvanceApproved)
		}

		s.log.Info().
			Str("request_id", req.ID.String()).
			Str("decider_id", decider.ID.String()).
			Bool("approve", approve).
			Int("approvals", tally.Approvals).
			Int("quorum", quorum).
			Msg("decider vote recorded")
		if err := s.save(ctx, tx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScheduleExecuted is reported by the chain watcher once the scheduled mint
// ran. A repeated success report for a completed request is a no-op.
func (s *WageAdvanceSaga) ScheduleExecuted(ctx context.Context, scheduledTransactionID string, success bool) (*domain.WageAdvanceRequest, error) {
	scheduledTransactionID = normalizeText(scheduledTransactionID)
	if scheduledTransactionID == "" {
		return nil, apperror.Validation("scheduled transaction id is required")
	}
	found, err := s.repo.GetByScheduledTransactionID(ctx, scheduledTransactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get by scheduled transaction: %w", err))
	}
	if found == nil {
		return nil, apperror.ErrNotFound("wage advance request")
	}

	var out *domain.WageAdvanceRequest
	err = s.guard.run(ctx, found.Ref(), func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockRequest(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		switch {
		case success && req.Status == domain.WageAdvanceCompleted:
			out = req
			return nil
		case req.Status != domain.WageAdvanceApproved:
			return apperror.ErrInvalidState(fmt.Sprintf("request is %s, expected approved", req.Status))
		}

		if success {
			req.CompletedAt = timePtr(s.now())
			s.setStatus(ctx, req, domain.WageAdvanceCompleted)
		} else {
			req.RejectionReason = stringPtr(domain.RejectionScheduleFailed)
			s.setStatus(ctx, req, domain.WageAdvanceRejected)
		}
		if err := s.save(ctx, tx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a wage-advance request by id.
func (s *WageAdvanceSaga) Get(ctx context.Context, requestID uuid.UUID) (*domain.WageAdvanceRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wage advance: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("wage advance request")
	}
	return req, nil
}

// --- reconciler continuation ---

// LockParent implements ports.SagaContinuation.
func (s *WageAdvanceSaga) LockParent(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) error {
	_, err := s.lockRequest(ctx, tx, parentID)
	return err
}

// OnSubmitted implements ports.SagaContinuation. The request stays where it
// is until the watcher confirms.
func (s *WageAdvanceSaga) OnSubmitted(_ context.Context, _ pgx.Tx, op *domain.Operation) error {
	s.log.Debug().
		Str("operation_id", op.ID.String()).
		Str("parent_ref", op.ParentRef.String()).
		Msg("awaiting confirmation")
	return nil
}

// OnFailed implements ports.SagaContinuation. The request stays in its
// current state for a retry until the step's attempt budget is spent.
func (s *WageAdvanceSaga) OnFailed(ctx context.Context, tx pgx.Tx, op *domain.Operation, cause domain.FailureCause) error {
	req, err := s.lockRequest(ctx, tx, op.ParentRef.ID)
	if err != nil {
		return err
	}

	var (
		maxAttempts int
		reason      string
	)
	switch {
	case op.Type == domain.OperationTokenAssociate && req.Status == domain.WageAdvanceAssociating:
		maxAttempts, reason = s.cfg.AssociationMaxAttempts, domain.RejectionAssociationFailed
	case op.Type == domain.OperationScheduleCreate && req.Status == domain.WageAdvanceScheduling:
		maxAttempts, reason = s.cfg.ScheduleMaxAttempts, domain.RejectionScheduleFailed
	default:
		s.log.Warn().
			Str("operation_id", op.ID.String()).
			Str("request_status", string(req.Status)).
			Msg("failure for an operation the request no longer waits on")
		return nil
	}

	failures, err := s.ledger.CountFailed(ctx, tx, req.Ref(), op.Type)
	if err != nil {
		return err
	}
	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("cause", string(cause)).
		Int("failures", failures).
		Int("max_attempts", maxAttempts).
		Msg("step failed")
	if failures < maxAttempts {
		return nil
	}

	req.RejectionReason = stringPtr(reason)
	s.setStatus(ctx, req, domain.WageAdvanceRejected)
	return s.save(ctx, tx, req)
}

// OnConfirmed implements ports.SagaContinuation.
func (s *WageAdvanceSaga) OnConfirmed(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	req, err := s.lockRequest(ctx, tx, op.ParentRef.ID)
	if err != nil {
		return err
	}

	switch {
	case op.Type == domain.OperationTokenAssociate && req.Status == domain.WageAdvanceAssociating:
		s.setStatus(ctx, req, domain.WageAdvanceScheduling)
	case op.Type == domain.OperationScheduleCreate && req.Status == domain.WageAdvanceScheduling:
		txID := op.TransactionID
		if txID == nil {
			if prepared, ok := preparedTransactionID(op.UnsignedTransaction); ok {
				txID = &prepared
			}
		}
		req.ScheduledTransactionID = txID
		s.setStatus(ctx, req, domain.WageAdvanceAwaitingApproval)
	default:
		s.log.Warn().
			Str("operation_id", op.ID.String()).
			Str("operation_type", string(op.Type)).
			Str("request_status", string(req.Status)).
			Msg("confirmation does not advance the request")
		return nil
	}
	return s.save(ctx, tx, req)
}

// requestPolicy loads the policy of the request's enterprise through the
// pool. Call it before entering the parent guard.
func (s *WageAdvanceSaga) requestPolicy(ctx context.Context, requestID uuid.UUID) (*domain.EnterprisePolicy, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.policy(ctx, req.EnterpriseID)
}

func (s *WageAdvanceSaga) lockRequest(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WageAdvanceRequest, error) {
	req, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wage advance: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("wage advance request")
	}
	return req, nil
}

func (s *WageAdvanceSaga) setStatus(ctx context.Context, req *domain.WageAdvanceRequest, to domain.WageAdvanceStatus) {
	req.Status = to
	req.UpdatedAt = s.now()
	reason := ""
	if req.RejectionReason != nil {
		reason = *req.RejectionReason
	}
	s.transitioned(ctx, req.EnterpriseID, req.Ref(), string(to), reason, to.IsTerminal())
}

func (s *WageAdvanceSaga) save(ctx context.Context, tx pgx.Tx, req *domain.WageAdvanceRequest) error {
	if err := s.repo.Update(ctx, tx, req); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return apperror.ErrConcurrentUpdate()
		}
		return apperror.InternalError(fmt.Errorf("update wage advance: %w", err))
	}
	return nil
}
