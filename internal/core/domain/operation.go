package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperationType is the closed set of blockchain-bound side effects.
// The type determines the shape of Operation.Details.
type OperationType string

const (
	OperationTokenAssociate  OperationType = "TOKEN_ASSOCIATE_PREPARED"
	OperationScheduleCreate  OperationType = "SCHEDULE_CREATE"
	OperationShopAcceptToken OperationType = "SHOP_ACCEPT_TOKEN_PREPARED"
	OperationPaymentTransfer OperationType = "PAYMENT_TRANSFER_PREPARED"
	OperationSwap            OperationType = "SWAP_PREPARED"
)

// Valid reports whether t belongs to the closed set.
func (t OperationType) Valid() bool {
	switch t {
	case OperationTokenAssociate, OperationScheduleCreate, OperationShopAcceptToken,
		OperationPaymentTransfer, OperationSwap:
		return true
	}
	return false
}

// OperationStatus represents the lifecycle state of an operation.
type OperationStatus string

const (
	OperationPendingSignature    OperationStatus = "PENDING_SIGNATURE"
	OperationPendingConfirmation OperationStatus = "PENDING_CONFIRMATION"
	OperationSuccess             OperationStatus = "SUCCESS"
	OperationFailed              OperationStatus = "FAILED"
)

// Failure reasons recorded on FAILED operations.
const (
	FailureCancelled     = "cancelled"
	FailureChainRejected = "chain_rejected"
)

var operationEdges = map[OperationStatus][]OperationStatus{
	OperationPendingSignature:    {OperationPendingConfirmation, OperationFailed},
	OperationPendingConfirmation: {OperationSuccess, OperationFailed},
}

// CanTransition reports whether from -> to is one of the allowed edges.
// No edge leaves SUCCESS or FAILED.
func CanTransition(from, to OperationStatus) bool {
	for _, next := range operationEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsOutstanding reports whether the status still blocks new operations for the parent.
func (s OperationStatus) IsOutstanding() bool {
	return s == OperationPendingSignature || s == OperationPendingConfirmation
}

// IsTerminal reports whether the status is final.
func (s OperationStatus) IsTerminal() bool {
	return s == OperationSuccess || s == OperationFailed
}

// Operation is the system-of-record entry for one blockchain-bound action.
type Operation struct {
	ID                  uuid.UUID        `json:"id"`
	Seq                 int64            `json:"seq"`
	Type                OperationType    `json:"type"`
	Status              OperationStatus  `json:"status"`
	ParentRef           ParentRef        `json:"parent_ref"`
	Details             OperationDetails `json:"-"`
	UnsignedTransaction []byte           `json:"unsigned_transaction,omitempty"`
	SignerAccountID     string           `json:"signer_account_id"`
	TransactionID       *string          `json:"transaction_id,omitempty"`
	FailureReason       *string          `json:"failure_reason,omitempty"`
	Evidence            *string          `json:"evidence,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	CompletedAt         *time.Time       `json:"completed_at,omitempty"`
}

// IsOutstanding reports whether the operation blocks its parent.
func (o *Operation) IsOutstanding() bool {
	return o.Status.IsOutstanding()
}

// Clone returns a deep copy, used for audit snapshots and memory storage.
func (o *Operation) Clone() *Operation {
	c := *o
	if o.UnsignedTransaction != nil {
		c.UnsignedTransaction = append([]byte(nil), o.UnsignedTransaction...)
	}
	c.TransactionID = cloneString(o.TransactionID)
	c.FailureReason = cloneString(o.FailureReason)
	c.Evidence = cloneString(o.Evidence)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// OperationPatch carries the fields a ledger patch may change.
// Nil fields are left untouched.
type OperationPatch struct {
	Status        OperationStatus
	TransactionID *string
	FailureReason *string
	Evidence      *string
	CompletedAt   *time.Time
}

// OperationAudit is one append-only entry of an operation's history.
// Snapshot holds the record as it was before the change.
type OperationAudit struct {
	ID          uuid.UUID       `json:"id"`
	OperationID uuid.UUID       `json:"operation_id"`
	FromStatus  OperationStatus `json:"from_status,omitempty"`
	ToStatus    OperationStatus `json:"to_status"`
	Snapshot    []byte          `json:"snapshot,omitempty"`
	Actor       string          `json:"actor"`
	Evidence    *string         `json:"evidence,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
