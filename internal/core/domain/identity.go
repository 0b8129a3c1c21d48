package domain

import "github.com/google/uuid"

// Role of a portal user as resolved by the identity lookup.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleDecider  Role = "decider"
	RoleShop     Role = "shop"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleDecider, RoleShop, RoleAdmin:
		return true
	}
	return false
}

// User is the read-only identity record the engine acts on behalf of.
type User struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	AccountID    string    `json:"account_id" yaml:"account_id"`
	Role         Role      `json:"role" yaml:"role"`
	EnterpriseID uuid.UUID `json:"enterprise_id" yaml:"enterprise_id"`
	Name         string    `json:"name,omitempty" yaml:"name"`
}

// EnterprisePolicy is read from the enterprise policy store.
type EnterprisePolicy struct {
	EnterpriseID      uuid.UUID `json:"enterprise_id" yaml:"enterprise_id"`
	ApprovalQuorum    int       `json:"approval_quorum" yaml:"approval_quorum"`
	SettlementDay     int       `json:"settlement_day" yaml:"settlement_day"`
	TokenID           string    `json:"token_id" yaml:"token_id"`
	SwapContractID    string    `json:"swap_contract_id" yaml:"swap_contract_id"`
	TreasuryAccountID string    `json:"treasury_account_id" yaml:"treasury_account_id"`
	MaxAdvanceAmount  int64     `json:"max_advance_amount" yaml:"max_advance_amount"` // 0 = unlimited
	WebhookURL        string    `json:"webhook_url,omitempty" yaml:"webhook_url"`
}
