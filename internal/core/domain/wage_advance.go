package domain

import (
	"time"

	"github.com/google/uuid"
)

// WageAdvanceStatus is the state of the employee-advance saga.
type WageAdvanceStatus string

const (
	WageAdvancePending          WageAdvanceStatus = "pending"
	WageAdvanceAssociating      WageAdvanceStatus = "associating"
	WageAdvanceScheduling       WageAdvanceStatus = "scheduling"
	WageAdvanceAwaitingApproval WageAdvanceStatus = "awaiting_approval"
	WageAdvanceApproved         WageAdvanceStatus = "approved"
	WageAdvanceRejected         WageAdvanceStatus = "rejected"
	WageAdvanceCompleted        WageAdvanceStatus = "completed"
)

// IsTerminal reports whether no further transition is possible.
func (s WageAdvanceStatus) IsTerminal() bool {
	return s == WageAdvanceRejected || s == WageAdvanceCompleted
}

// Rejection reason codes stored on rejected requests.
const (
	RejectionAssociationFailed = "association_failed"
	RejectionScheduleFailed    = "schedule_failed"
	RejectionDeciderRejected   = "decider_rejected"
)

// DeciderVote is one entry of the append-only approval log.
type DeciderVote struct {
	DeciderID uuid.UUID `json:"decider_id"`
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WageAdvanceRequest is the saga instance for an employee wage advance.
type WageAdvanceRequest struct {
	ID                     uuid.UUID         `json:"id"`
	EmployeeID             uuid.UUID         `json:"employee_id"`
	EnterpriseID           uuid.UUID         `json:"enterprise_id"`
	RequestedAmount        int64             `json:"requested_amount"` // minor units
	AccountID              *string           `json:"account_id,omitempty"`
	Status                 WageAdvanceStatus `json:"status"`
	DeciderApprovals       []DeciderVote     `json:"decider_approvals"`
	ScheduledTransactionID *string           `json:"scheduled_transaction_id,omitempty"`
	RejectionReason        *string           `json:"rejection_reason,omitempty"`
	RejectionNote          *string           `json:"rejection_note,omitempty"`
	RejectedBy             *uuid.UUID        `json:"rejected_by,omitempty"`
	Version                int64             `json:"version"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
	CompletedAt            *time.Time        `json:"completed_at,omitempty"`
}

// Ref returns the parent reference used by operations of this request.
func (r *WageAdvanceRequest) Ref() ParentRef {
	return NewParentRef(ParentWageAdvance, r.ID)
}

// Clone returns a deep copy.
func (r *WageAdvanceRequest) Clone() *WageAdvanceRequest {
	c := *r
	c.DeciderApprovals = append([]DeciderVote(nil), r.DeciderApprovals...)
	c.AccountID = cloneString(r.AccountID)
	c.ScheduledTransactionID = cloneString(r.ScheduledTransactionID)
	c.RejectionReason = cloneString(r.RejectionReason)
	c.RejectionNote = cloneString(r.RejectionNote)
	if r.RejectedBy != nil {
		id := *r.RejectedBy
		c.RejectedBy = &id
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// VoteTally is the outcome of counting the last vote per decider.
type VoteTally struct {
	Approvals  int
	Rejected   bool
	RejectedBy uuid.UUID
	Reason     string
}

// Tally counts approvals using the last vote of every decider.
// A rejection found anywhere in the log is sticky and reported even if the
// same decider later approved.
func Tally(votes []DeciderVote) VoteTally {
	var t VoteTally
	last := make(map[uuid.UUID]bool, len(votes))
	for _, v := range votes {
		if !v.Approved && !t.Rejected {
			t.Rejected = true
			t.RejectedBy = v.DeciderID
			t.Reason = v.Reason
		}
		last[v.DeciderID] = v.Approved
	}
	for _, approved := range last {
		if approved {
			t.Approvals++
		}
	}
	return t
}
