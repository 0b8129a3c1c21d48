package domain

import "time"

// IntentType selects what the preparer builds.
type IntentType string

const (
	IntentAssociateToken  IntentType = "ASSOCIATE_TOKEN"
	IntentScheduleMint    IntentType = "SCHEDULE_MINT"
	IntentShopAcceptToken IntentType = "SHOP_ACCEPT_TOKEN"
	IntentPaymentTransfer IntentType = "PAYMENT_TRANSFER"
	IntentContractSwap    IntentType = "CONTRACT_SWAP"
)

// OperationType returns the ledger type recorded for a payload of this intent.
func (t IntentType) OperationType() OperationType {
	switch t {
	case IntentAssociateToken:
		return OperationTokenAssociate
	case IntentScheduleMint:
		return OperationScheduleCreate
	case IntentShopAcceptToken:
		return OperationShopAcceptToken
	case IntentPaymentTransfer:
		return OperationPaymentTransfer
	case IntentContractSwap:
		return OperationSwap
	}
	return ""
}

// PrepareParams is the union of inputs accepted by the preparer.
// Each intent reads only the fields it needs.
type PrepareParams struct {
	AccountID         string
	CounterpartyID    string // shop account for transfers
	TreasuryAccountID string
	TokenID           string
	ContractID        string
	Amount            int64
	Memo              string
}

// UnsignedPayload is what the client hands to a signer.
// Required=false means there is nothing to sign and no operation is recorded.
type UnsignedPayload struct {
	Required         bool             `json:"required"`
	IntentType       IntentType       `json:"intent_type"`
	SignerAccountID  string           `json:"signer_account_id,omitempty"`
	TransactionID    string           `json:"transaction_id,omitempty"`
	TransactionBytes []byte           `json:"transaction_bytes,omitempty"`
	BodyHash         string           `json:"body_hash,omitempty"`
	ValidStart       time.Time        `json:"valid_start"`
	Details          OperationDetails `json:"-"`
}

// Outcome is what a signer reports back: a submitted transaction id or a cancellation.
type Outcome struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Cancelled     bool   `json:"cancelled,omitempty"`
}

// FailureCause tells a saga why one of its operations failed.
type FailureCause string

const (
	CauseCancelled     FailureCause = FailureCancelled
	CauseChainRejected FailureCause = FailureChainRejected
)
