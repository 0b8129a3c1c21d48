package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type relayTestDeps struct {
	svc        *RelayServiceImpl
	ledger     *mocks.MockLedgerService
	reconciler *mocks.MockReconcilerService
	signer     *mocks.MockSigner
	ctrl       *gomock.Controller
}

func setupRelayService(t *testing.T, timeout time.Duration) *relayTestDeps {
	ctrl := gomock.NewController(t)
	d := &relayTestDeps{
		ledger:     mocks.NewMockLedgerService(ctrl),
		reconciler: mocks.NewMockReconcilerService(ctrl),
		signer:     mocks.NewMockSigner(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewRelayService(d.ledger, d.reconciler, timeout, nopMetrics{}, zerolog.Nop())
	return d
}

func TestRelayService_Relay_NoSigner(t *testing.T) {
	d := setupRelayService(t, time.Second)
	defer d.ctrl.Finish()

	_, err := d.svc.Relay(context.Background(), nil, newTestOperation(domain.OperationPendingSignature).ID)
	assertAppError(t, err, "SYS_004")
}

func TestRelayService_Relay_NotAwaitingSignature(t *testing.T) {
	d := setupRelayService(t, time.Second)
	defer d.ctrl.Finish()

	op := newTestOperation(domain.OperationPendingConfirmation)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)

	_, err := d.svc.Relay(context.Background(), d.signer, op.ID)
	assertAppError(t, err, "TRANSITION_002")
}

func TestRelayService_Relay_ForwardsOutcome(t *testing.T) {
	d := setupRelayService(t, time.Second)
	defer d.ctrl.Finish()

	op := newTestOperation(domain.OperationPendingSignature)
	outcome := domain.Outcome{TransactionID: "0.0.1001@1700000000.000000000"}
	submitted := op.Clone()
	submitted.Status = domain.OperationPendingConfirmation

	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.signer.EXPECT().Sign(gomock.Any(), "0.0.1001", op.UnsignedTransaction).Return(outcome, nil)
	d.reconciler.EXPECT().ReportOutcome(gomock.Any(), op.ID, outcome, relayActor).Return(submitted, nil)

	got, err := d.svc.Relay(context.Background(), d.signer, op.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationPendingConfirmation, got.Status)
}

func TestRelayService_Relay_ForwardsCancellation(t *testing.T) {
	d := setupRelayService(t, time.Second)
	defer d.ctrl.Finish()

	op := newTestOperation(domain.OperationPendingSignature)
	failed := op.Clone()
	failed.Status = domain.OperationFailed

	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Outcome{Cancelled: true}, nil)
	d.reconciler.EXPECT().ReportOutcome(gomock.Any(), op.ID, domain.Outcome{Cancelled: true}, relayActor).Return(failed, nil)

	got, err := d.svc.Relay(context.Background(), d.signer, op.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationFailed, got.Status)
}

func TestRelayService_Relay_SignerError(t *testing.T) {
	d := setupRelayService(t, time.Second)
	defer d.ctrl.Finish()

	op := newTestOperation(domain.OperationPendingSignature)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Outcome{}, errors.New("wallet disconnected"))

	_, err := d.svc.Relay(context.Background(), d.signer, op.ID)
	assertAppError(t, err, "SYS_003")
}

func TestRelayService_Relay_SignerNeverReturns(t *testing.T) {
	d := setupRelayService(t, 50*time.Millisecond)
	defer d.ctrl.Finish()

	op := newTestOperation(domain.OperationPendingSignature)
	release := make(chan struct{})
	defer close(release)

	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.signer.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ []byte) (domain.Outcome, error) {
			// Ignores ctx like a signer that hangs.
			<-release
			return domain.Outcome{TransactionID: "late"}, nil
		},
	)
	// No ReportOutcome expectation: a timed-out call must not touch the ledger.

	start := time.Now()
	_, err := d.svc.Relay(context.Background(), d.signer, op.ID)
	assertAppError(t, err, "SYS_003")
	assert.Less(t, time.Since(start), time.Second)
}
