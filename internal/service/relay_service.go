package service

import (
	"context"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const relayActor = "relay"

// RelayServiceImpl implements ports.RelayService.
type RelayServiceImpl struct {
	ledger     ports.LedgerService
	reconciler ports.ReconcilerService
	timeout    time.Duration
	metrics    ports.EngineMetrics
	log        zerolog.Logger
}

// NewRelayService creates a new RelayServiceImpl. timeout bounds each signer call.
func NewRelayService(
	ledger ports.LedgerService,
	reconciler ports.ReconcilerService,
	timeout time.Duration,
	metrics ports.EngineMetrics,
	log zerolog.Logger,
) *RelayServiceImpl {
	return &RelayServiceImpl{
		ledger:     ledger,
		reconciler: reconciler,
		timeout:    timeout,
		metrics:    metrics,
		log:        logger.Component(log, "relay"),
	}
}

type signResult struct {
	outcome domain.Outcome
	err     error
}

// Relay hands the operation's unsigned bytes to signer and forwards the result
// to the reconciler. When the signer does not answer in time nothing is
// recorded and the operation stays PENDING_SIGNATURE.
func (s *RelayServiceImpl) Relay(ctx context.Context, signer ports.Signer, operationID uuid.UUID) (*domain.Operation, error) {
	if signer == nil {
		return nil, apperror.ErrSignerDisabled()
	}

	op, err := s.ledger.GetOperation(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if op.Status != domain.OperationPendingSignature {
		return nil, apperror.ErrInvalidState("operation is not awaiting a signature")
	}

	signCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan signResult, 1)
	go func() {
		outcome, err := signer.Sign(signCtx, op.SignerAccountID, op.UnsignedTransaction)
		done <- signResult{outcome: outcome, err: err}
	}()

	var res signResult
	select {
	case res = <-done:
	case <-signCtx.Done():
		s.metrics.SignerCall("timeout", time.Since(start))
		s.log.Warn().
			Str("operation_id", op.ID.String()).
			Dur("timeout", s.timeout).
			Msg("signer did not return, operation left pending signature")
		return nil, apperror.ErrSignerUnavailable(signCtx.Err())
	}

	if res.err != nil {
		s.metrics.SignerCall("error", time.Since(start))
		s.log.Warn().Err(res.err).Str("operation_id", op.ID.String()).Msg("signer failed")
		return nil, apperror.ErrSignerUnavailable(res.err)
	}

	result := "submitted"
	if res.outcome.Cancelled {
		result = "cancelled"
	}
	s.metrics.SignerCall(result, time.Since(start))

	return s.reconciler.ReportOutcome(ctx, op.ID, res.outcome, relayActor)
}
