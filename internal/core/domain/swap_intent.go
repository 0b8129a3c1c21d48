package domain

import (
	"time"

	"github.com/google/uuid"
)

// SwapIntentStatus is the state of an enterprise-token to stablecoin swap.
type SwapIntentStatus string

const (
	SwapIntentPending SwapIntentStatus = "pending"
	SwapIntentExpired SwapIntentStatus = "expired"
	SwapIntentSwapped SwapIntentStatus = "swapped"
)

// SwapIntent is settled by a single contract call.
type SwapIntent struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	EnterpriseID  uuid.UUID        `json:"enterprise_id"`
	AccountID     string           `json:"account_id"`
	TokenID       string           `json:"token_id"`
	ContractID    string           `json:"contract_id"`
	Amount        int64            `json:"amount"`
	Status        SwapIntentStatus `json:"status"`
	TransactionID *string          `json:"transaction_id,omitempty"`
	ExpiresAt     time.Time        `json:"expires_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	SwappedAt     *time.Time       `json:"swapped_at,omitempty"`
}

// Ref returns the parent reference used by operations of this intent.
func (s *SwapIntent) Ref() ParentRef {
	return NewParentRef(ParentSwapIntent, s.ID)
}

// IsExpired reports whether the intent can no longer be prepared at now.
func (s *SwapIntent) IsExpired(now time.Time) bool {
	if s.Status == SwapIntentExpired {
		return true
	}
	return s.Status == SwapIntentPending && !now.Before(s.ExpiresAt)
}

// Clone returns a deep copy.
func (s *SwapIntent) Clone() *SwapIntent {
	c := *s
	c.TransactionID = cloneString(s.TransactionID)
	if s.SwappedAt != nil {
		t := *s.SwappedAt
		c.SwappedAt = &t
	}
	return &c
}
