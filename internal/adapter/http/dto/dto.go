package dto

import "dlt-orchestrator/internal/core/domain"

// CreateWageAdvanceRequest is the body of POST /wage-advances.
type CreateWageAdvanceRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// AssociationRequest names the account that must hold the enterprise token.
type AssociationRequest struct {
	AccountID string `json:"account_id" binding:"required,account_id"`
}

// CastApprovalRequest is a decider's vote.
type CastApprovalRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Reason  string `json:"reason" binding:"max=4000"`
}

// ReportOutcomeRequest carries what the wallet returned for an operation.
// Exactly one of TransactionID and Cancelled must be set.
type ReportOutcomeRequest struct {
	TransactionID string `json:"transaction_id" binding:"omitempty,max=100,transaction_id"`
	Cancelled     bool   `json:"cancelled"`
}

// CreatePaymentRequest is the body of POST /payment-requests.
type CreatePaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Memo   string `json:"memo" binding:"memo"`
}

// CreateSwapRequest is the body of POST /swaps.
type CreateSwapRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ConfirmRequest is the watcher's verdict on a submitted operation.
type ConfirmRequest struct {
	Success *bool  `json:"success" binding:"required"`
	Reason  string `json:"reason" binding:"max=500"`
}

// ScheduleExecutedRequest reports the on-chain execution of a scheduled mint.
type ScheduleExecutedRequest struct {
	Success *bool `json:"success" binding:"required"`
}

// ForceCompleteRequest is the operator's repair request.
type ForceCompleteRequest struct {
	Evidence string `json:"evidence" binding:"required,max=4000"`
}

// OperationResponse is an operation together with its audit trail.
type OperationResponse struct {
	Operation *domain.Operation        `json:"operation"`
	Audit     []*domain.OperationAudit `json:"audit"`
}

// StaleOperationsResponse lists operations still awaiting a signature.
type StaleOperationsResponse struct {
	OlderThan string              `json:"older_than"`
	Items     []*domain.Operation `json:"items"`
}

// HistoryListResponse wraps a page of an enterprise's advance history.
type HistoryListResponse struct {
	Items      []domain.HistoryEntry `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}
