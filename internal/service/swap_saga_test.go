package service

import (
	"context"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type swapTestDeps struct {
	*sagaFixture
	saga *SwapSaga
	repo *mocks.MockSwapIntentRepository
}

func setupSwapSaga(t *testing.T) *swapTestDeps {
	f := newSagaFixture(t)
	repo := mocks.NewMockSwapIntentRepository(f.ctrl)
	saga := NewSwapSaga(repo, f.deps(), 10*time.Minute, zerolog.Nop())
	saga.now = func() time.Time { return f.now }
	return &swapTestDeps{sagaFixture: f, saga: saga, repo: repo}
}

func (d *swapTestDeps) intent(status domain.SwapIntentStatus, expiresAt time.Time) *domain.SwapIntent {
	return &domain.SwapIntent{
		ID:           uuid.New(),
		UserID:       d.employee.ID,
		EnterpriseID: d.enterpriseID,
		AccountID:    d.employee.AccountID,
		TokenID:      "0.0.5005",
		ContractID:   "0.0.7007",
		Amount:       1000,
		Status:       status,
		ExpiresAt:    expiresAt,
		CreatedAt:    d.now.Add(-time.Minute),
		UpdatedAt:    d.now.Add(-time.Minute),
	}
}

func TestSwap_CreateSwapIntent(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	d.identities.EXPECT().GetUser(gomock.Any(), d.shop.ID).Return(d.shop, nil)
	d.expectPolicy()
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	intent, err := d.saga.CreateSwapIntent(context.Background(), d.shop.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapIntentPending, intent.Status)
	assert.Equal(t, "0.0.7007", intent.ContractID)
	assert.Equal(t, d.shop.AccountID, intent.AccountID)
	assert.Equal(t, d.now.Add(10*time.Minute), intent.ExpiresAt)
}

func TestSwap_CreateSwapIntent_DeciderRefused(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	d.identities.EXPECT().GetUser(gomock.Any(), d.decider.ID).Return(d.decider, nil)

	_, err := d.saga.CreateSwapIntent(context.Background(), d.decider.ID, 1000)
	assertAppError(t, err, "AUTH_005")
}

func TestSwap_PrepareSwap(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	intent := d.intent(domain.SwapIntentPending, d.now.Add(time.Minute))
	payload := d.requiredPayload(domain.IntentContractSwap, domain.SwapDetails{
		AccountID: "0.0.1001", TokenID: "0.0.5005", ContractID: "0.0.7007", Amount: 1000,
	})
	op := newTestOperation(domain.OperationPendingSignature)

	d.expectGuard(intent.Ref())
	d.repo.EXPECT().GetByIDForUpdate(gomock.Any(), d.tx, intent.ID).Return(intent, nil)
	d.ledger.EXPECT().FindOutstanding(gomock.Any(), d.tx, intent.Ref()).Return(nil, nil)
	d.preparer.EXPECT().Prepare(gomock.Any(), domain.IntentContractSwap, domain.PrepareParams{
		AccountID:  "0.0.1001",
		TokenID:    "0.0.5005",
		ContractID: "0.0.7007",
		Amount:     1000,
	}).Return(payload, nil)
	d.ledger.EXPECT().CreateOperation(gomock.Any(), d.tx, gomock.Any()).Return(op, nil)

	res, err := d.saga.PrepareSwap(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, op, res.Operation)
	assert.Equal(t, payload, res.Payload)
}

func TestSwap_PrepareSwap_Expired(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	intent := d.intent(domain.SwapIntentPending, d.now)
	d.expectGuard(intent.Ref())
	d.repo.EXPECT().GetByIDForUpdate(gomock.Any(), d.tx, intent.ID).Return(intent, nil)
	d.repo.EXPECT().Update(gomock.Any(), d.tx, intent).Return(nil)
	d.expectNotify(t, intent.Ref(), string(domain.SwapIntentExpired))

	_, err := d.saga.PrepareSwap(context.Background(), intent.ID)
	assertAppError(t, err, "EXPIRED_001")
	assert.Equal(t, domain.SwapIntentExpired, intent.Status)
}

func TestSwap_PrepareSwap_AlreadySwapped(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	intent := d.intent(domain.SwapIntentSwapped, d.now.Add(time.Minute))
	d.expectGuard(intent.Ref())
	d.repo.EXPECT().GetByIDForUpdate(gomock.Any(), d.tx, intent.ID).Return(intent, nil)

	_, err := d.saga.PrepareSwap(context.Background(), intent.ID)
	assertAppError(t, err, "TRANSITION_002")
}

func TestSwap_OnConfirmed(t *testing.T) {
	d := setupSwapSaga(t)
	defer d.ctrl.Finish()

	intent := d.intent(domain.SwapIntentPending, d.now.Add(time.Minute))
	op := newTestOperation(domain.OperationSuccess)
	op.Type = domain.OperationSwap
	op.ParentRef = intent.Ref()

	d.repo.EXPECT().GetByIDForUpdate(gomock.Any(), d.tx, intent.ID).Return(intent, nil).Times(2)
	d.repo.EXPECT().Update(gomock.Any(), d.tx, intent).Return(nil)
	d.expectNotify(t, intent.Ref(), string(domain.SwapIntentSwapped))

	require.NoError(t, d.saga.OnConfirmed(context.Background(), d.tx, op))
	assert.Equal(t, domain.SwapIntentSwapped, intent.Status)
	assert.Equal(t, "0.0.1001@1700000000.000000000", *intent.TransactionID)

	// Confirming twice leaves the intent untouched.
	require.NoError(t, d.saga.OnConfirmed(context.Background(), d.tx, op))
}
