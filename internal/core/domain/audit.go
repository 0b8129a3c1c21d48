package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited API call.
type AuditAction string

const (
	AuditActionCreateAdvance    AuditAction = "CREATE_ADVANCE"
	AuditActionAssociation      AuditAction = "PREPARE_ASSOCIATION"
	AuditActionCreateSchedule   AuditAction = "CREATE_SCHEDULE"
	AuditActionCastApproval     AuditAction = "CAST_APPROVAL"
	AuditActionReportOutcome    AuditAction = "REPORT_OUTCOME"
	AuditActionRelay            AuditAction = "RELAY"
	AuditActionCreatePayment    AuditAction = "CREATE_PAYMENT_REQUEST"
	AuditActionAcceptToken      AuditAction = "ACCEPT_TOKEN"
	AuditActionPay              AuditAction = "PAY"
	AuditActionCreateSwap       AuditAction = "CREATE_SWAP"
	AuditActionPrepareSwap      AuditAction = "PREPARE_SWAP"
	AuditActionConfirm          AuditAction = "WATCHER_CONFIRM"
	AuditActionScheduleExecuted AuditAction = "SCHEDULE_EXECUTED"
	AuditActionForceComplete    AuditAction = "FORCE_COMPLETE"
)

// AuditLog records a single audited API call.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}

// HistoryEntry is one line of an enterprise's advance history.
type HistoryEntry struct {
	Request    *WageAdvanceRequest `json:"request"`
	Operations []*Operation        `json:"operations"`
}

// SagaEvent is delivered to enterprise webhooks when a saga reaches a terminal state.
type SagaEvent struct {
	ID           uuid.UUID `json:"id"`
	EnterpriseID uuid.UUID `json:"enterprise_id"`
	Parent       ParentRef `json:"parent"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
