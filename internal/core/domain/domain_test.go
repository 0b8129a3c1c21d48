package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OperationStatus
		to   OperationStatus
		want bool
	}{
		{"signature to confirmation", OperationPendingSignature, OperationPendingConfirmation, true},
		{"signature to failed", OperationPendingSignature, OperationFailed, true},
		{"confirmation to success", OperationPendingConfirmation, OperationSuccess, true},
		{"confirmation to failed", OperationPendingConfirmation, OperationFailed, true},
		{"signature to success", OperationPendingSignature, OperationSuccess, false},
		{"success to failed", OperationSuccess, OperationFailed, false},
		{"failed to confirmation", OperationFailed, OperationPendingConfirmation, false},
		{"success to success", OperationSuccess, OperationSuccess, false},
		{"confirmation to signature", OperationPendingConfirmation, OperationPendingSignature, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOperationStatus_Outstanding(t *testing.T) {
	assert.True(t, OperationPendingSignature.IsOutstanding())
	assert.True(t, OperationPendingConfirmation.IsOutstanding())
	assert.False(t, OperationSuccess.IsOutstanding())
	assert.False(t, OperationFailed.IsOutstanding())
	assert.True(t, OperationFailed.IsTerminal())
}

func TestParentRef_RoundTrip(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	ref := NewParentRef(ParentWageAdvance, id)
	assert.Equal(t, "wage_advance:550e8400-e29b-41d4-a716-446655440000", ref.String())

	parsed, err := ParseParentRef(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref, parsed)
}

func TestParseParentRef_Invalid(t *testing.T) {
	for _, s := range []string{"", "wage_advance", "invoice:550e8400-e29b-41d4-a716-446655440000", "swap_intent:not-a-uuid"} {
		_, err := ParseParentRef(s)
		assert.Error(t, err, s)
	}
}

func TestDetails_EncodeDecode(t *testing.T) {
	in := PaymentTransferDetails{
		PayerID:        uuid.NewString(),
		PayerAccountID: "0.0.1001",
		ShopAccountID:  "0.0.2002",
		TokenID:        "0.0.5005",
		Amount:         1500,
		Memo:           "coffee",
	}
	raw, err := EncodeDetails(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"PAYMENT_TRANSFER_PREPARED"`)

	out, err := DecodeDetails(OperationPaymentTransfer, raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDetails_DecodeRejectsMismatch(t *testing.T) {
	raw, err := EncodeDetails(TokenAssociateDetails{AccountID: "0.0.1", TokenID: "0.0.2"})
	require.NoError(t, err)

	_, err = DecodeDetails(OperationSwap, raw)
	assert.ErrorContains(t, err, "does not match")

	_, err = DecodeDetails("MINT", []byte(`{"type":"MINT","payload":{}}`))
	assert.ErrorContains(t, err, "unknown operation type")

	_, err = EncodeDetails(nil)
	assert.Error(t, err)
}

func TestTally(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	tests := []struct {
		name         string
		votes        []DeciderVote
		wantApproval int
		wantRejected bool
	}{
		{"empty", nil, 0, false},
		{"two distinct approvals", []DeciderVote{{DeciderID: a, Approved: true}, {DeciderID: b, Approved: true}}, 2, false},
		{"duplicate approval counted once", []DeciderVote{{DeciderID: a, Approved: true}, {DeciderID: a, Approved: true}}, 1, false},
		{"rejection is sticky", []DeciderVote{{DeciderID: a, Approved: false, Reason: "no"}, {DeciderID: a, Approved: true}, {DeciderID: b, Approved: true}}, 2, true},
		{"rejection by other decider", []DeciderVote{{DeciderID: a, Approved: true}, {DeciderID: c, Approved: false, Timestamp: now}}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.votes)
			assert.Equal(t, tt.wantApproval, got.Approvals)
			assert.Equal(t, tt.wantRejected, got.Rejected)
		})
	}
}

func TestTally_RecordsFirstRejector(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := Tally([]DeciderVote{
		{DeciderID: a, Approved: false, Reason: "over limit"},
		{DeciderID: b, Approved: false, Reason: "later"},
	})
	assert.Equal(t, a, got.RejectedBy)
	assert.Equal(t, "over limit", got.Reason)
}

func TestPaymentRequest_IsExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		status PaymentRequestStatus
		expiry time.Time
		want   bool
	}{
		{"pending future", PaymentRequestPending, now.Add(time.Minute), false},
		{"pending past", PaymentRequestPending, now.Add(-time.Minute), true},
		{"already expired", PaymentRequestExpired, now.Add(time.Minute), true},
		{"paid past", PaymentRequestPaid, now.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaymentRequest{Status: tt.status, ExpiresAt: tt.expiry}
			assert.Equal(t, tt.want, p.IsExpired(now))
		})
	}
}

func TestSwapIntent_IsExpired(t *testing.T) {
	now := time.Now()
	s := &SwapIntent{Status: SwapIntentPending, ExpiresAt: now}
	assert.True(t, s.IsExpired(now))
	s.Status = SwapIntentSwapped
	assert.False(t, s.IsExpired(now))
}

func TestIntentType_OperationType(t *testing.T) {
	assert.Equal(t, OperationTokenAssociate, IntentAssociateToken.OperationType())
	assert.Equal(t, OperationScheduleCreate, IntentScheduleMint.OperationType())
	assert.Equal(t, OperationShopAcceptToken, IntentShopAcceptToken.OperationType())
	assert.Equal(t, OperationPaymentTransfer, IntentPaymentTransfer.OperationType())
	assert.Equal(t, OperationSwap, IntentContractSwap.OperationType())
	assert.Equal(t, OperationType(""), IntentType("NOPE").OperationType())
}

func TestOperation_CloneIsDeep(t *testing.T) {
	txID := "0.0.1@1.2"
	op := &Operation{UnsignedTransaction: []byte{1, 2}, TransactionID: &txID}
	c := op.Clone()
	c.UnsignedTransaction[0] = 9
	*c.TransactionID = "other"
	assert.Equal(t, byte(1), op.UnsignedTransaction[0])
	assert.Equal(t, "0.0.1@1.2", *op.TransactionID)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleDecider.Valid())
	assert.False(t, Role("root").Valid())
}
