package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRequestStatus is the state of a shop payment request.
type PaymentRequestStatus string

const (
	PaymentRequestPending PaymentRequestStatus = "pending"
	PaymentRequestExpired PaymentRequestStatus = "expired"
	PaymentRequestPaid    PaymentRequestStatus = "paid"
)

// PaymentRequest is issued by a shop and settled by a single token transfer.
type PaymentRequest struct {
	ID            uuid.UUID            `json:"id"`
	ShopID        uuid.UUID            `json:"shop_id"`
	EnterpriseID  uuid.UUID            `json:"enterprise_id"`
	ShopAccountID string               `json:"shop_account_id"`
	TokenID       string               `json:"token_id"`
	Amount        int64                `json:"amount"`
	Memo          string               `json:"memo"`
	Status        PaymentRequestStatus `json:"status"`
	PaidBy        *uuid.UUID           `json:"paid_by,omitempty"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	ExpiresAt     time.Time            `json:"expires_at"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

// Ref returns the parent reference used by operations of this request.
func (p *PaymentRequest) Ref() ParentRef {
	return NewParentRef(ParentPaymentRequest, p.ID)
}

// IsExpired reports whether the request can no longer be prepared at now.
// A paid request never expires.
func (p *PaymentRequest) IsExpired(now time.Time) bool {
	if p.Status == PaymentRequestExpired {
		return true
	}
	return p.Status == PaymentRequestPending && !now.Before(p.ExpiresAt)
}

// Clone returns a deep copy.
func (p *PaymentRequest) Clone() *PaymentRequest {
	c := *p
	c.TransactionID = cloneString(p.TransactionID)
	if p.PaidBy != nil {
		id := *p.PaidBy
		c.PaidBy = &id
	}
	if p.PaidAt != nil {
		t := *p.PaidAt
		c.PaidAt = &t
	}
	return &c
}
