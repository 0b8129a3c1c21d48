package domain

import (
	"encoding/json"
	"fmt"
)

// OperationDetails is the type-specific payload of an operation.
// Each OperationType has exactly one implementation.
type OperationDetails interface {
	OperationType() OperationType
}

// TokenAssociateDetails: an account associates itself with the enterprise token.
type TokenAssociateDetails struct {
	AccountID string `json:"account_id"`
	TokenID   string `json:"token_id"`
}

func (TokenAssociateDetails) OperationType() OperationType { return OperationTokenAssociate }

// ScheduleCreateDetails: a scheduled mint + transfer of the advance amount.
// ScheduleID is filled in when the schedule is confirmed on-chain.
type ScheduleCreateDetails struct {
	AccountID         string  `json:"account_id"`
	TreasuryAccountID string  `json:"treasury_account_id"`
	TokenID           string  `json:"token_id"`
	Amount            int64   `json:"amount"`
	Memo              string  `json:"memo"`
	ScheduleID        *string `json:"schedule_id,omitempty"`
}

func (ScheduleCreateDetails) OperationType() OperationType { return OperationScheduleCreate }

// ShopAcceptTokenDetails: a shop associates with a token before it can be paid in it.
type ShopAcceptTokenDetails struct {
	ShopAccountID string `json:"shop_account_id"`
	TokenID       string `json:"token_id"`
}

func (ShopAcceptTokenDetails) OperationType() OperationType { return OperationShopAcceptToken }

// PaymentTransferDetails: payer -> shop token transfer settling a payment request.
type PaymentTransferDetails struct {
	PayerID        string `json:"payer_id"`
	PayerAccountID string `json:"payer_account_id"`
	ShopAccountID  string `json:"shop_account_id"`
	TokenID        string `json:"token_id"`
	Amount         int64  `json:"amount"`
	Memo           string `json:"memo"`
}

func (PaymentTransferDetails) OperationType() OperationType { return OperationPaymentTransfer }

// SwapDetails: contract call swapping enterprise token for stablecoin.
type SwapDetails struct {
	AccountID  string `json:"account_id"`
	TokenID    string `json:"token_id"`
	ContractID string `json:"contract_id"`
	Amount     int64  `json:"amount"`
	CallData   string `json:"call_data"` // hex
	Gas        int64  `json:"gas"`
}

func (SwapDetails) OperationType() OperationType { return OperationSwap }

type detailsEnvelope struct {
	Type    OperationType   `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeDetails serialises details as {"type":..,"payload":..}.
func EncodeDetails(d OperationDetails) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("encode details: nil details")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}
	return json.Marshal(detailsEnvelope{Type: d.OperationType(), Payload: payload})
}

// DecodeDetails parses an envelope produced by EncodeDetails and checks it
// matches the operation type it is stored under.
func DecodeDetails(opType OperationType, raw []byte) (OperationDetails, error) {
	var env detailsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	if env.Type != opType {
		return nil, fmt.Errorf("decode details: envelope type %q does not match operation type %q", env.Type, opType)
	}

	var d OperationDetails
	switch env.Type {
	case OperationTokenAssociate:
		var v TokenAssociateDetails
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		d = v
	case OperationScheduleCreate:
		var v ScheduleCreateDetails
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		d = v
	case OperationShopAcceptToken:
		var v ShopAcceptTokenDetails
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		d = v
	case OperationPaymentTransfer:
		var v PaymentTransferDetails
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		d = v
	case OperationSwap:
		var v SwapDetails
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		d = v
	default:
		return nil, fmt.Errorf("decode details: unknown operation type %q", env.Type)
	}
	return d, nil
}
