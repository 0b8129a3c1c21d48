package ports

import (
	"context"
	"time"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
	SignWebhook(secretKey string, timestamp int64, body []byte) string
}

// TokenService validates portal-issued session tokens.
type TokenService interface {
	Generate(userID uuid.UUID, accountID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID    uuid.UUID
	AccountID string
}

// AuditService records audited API calls.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// CreateOperationInput is what a saga step records after preparing a payload.
type CreateOperationInput struct {
	Type                domain.OperationType
	ParentRef           domain.ParentRef
	Details             domain.OperationDetails
	UnsignedTransaction []byte
	SignerAccountID     string
	Actor               string
}

// LedgerService is the system of record for operations.
type LedgerService interface {
	CreateOperation(ctx context.Context, tx pgx.Tx, in CreateOperationInput) (*domain.Operation, error)
	// PatchOperation applies a normal-edge transition. changed is false when
	// the operation already had the requested status.
	PatchOperation(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch domain.OperationPatch, actor string) (op *domain.Operation, changed bool, err error)
	// ForceSuccess moves an outstanding operation straight to SUCCESS.
	// changed is false when the operation was already SUCCESS.
	ForceSuccess(ctx context.Context, tx pgx.Tx, id uuid.UUID, evidence, actor string) (op *domain.Operation, changed bool, err error)
	// FindOutstanding and LockOperation read through tx, holding row locks
	// until it ends.
	FindOutstanding(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) (*domain.Operation, error)
	LockOperation(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Operation, error)
	GetOperation(ctx context.Context, id uuid.UUID) (*domain.Operation, error)
	ListByParent(ctx context.Context, ref domain.ParentRef) ([]*domain.Operation, error)
	AuditTrail(ctx context.Context, id uuid.UUID) ([]*domain.OperationAudit, error)
	ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.Operation, error)
	CountFailed(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, opType domain.OperationType) (int, error)
}

// PreparerService builds unsigned payloads. It never writes to the ledger.
type PreparerService interface {
	Prepare(ctx context.Context, intent domain.IntentType, params domain.PrepareParams) (*domain.UnsignedPayload, error)
}

// ReconcilerService applies signer and watcher outcomes to operations and parents.
type ReconcilerService interface {
	Register(kind domain.ParentKind, cont SagaContinuation)
	ReportOutcome(ctx context.Context, operationID uuid.UUID, outcome domain.Outcome, actor string) (*domain.Operation, error)
	Confirm(ctx context.Context, operationID uuid.UUID, success bool, reason string) (*domain.Operation, error)
	ForceComplete(ctx context.Context, operationID uuid.UUID, evidence, actor string) (*domain.Operation, error)
}

// RelayService hands an operation's unsigned bytes to a signer supplied per call.
type RelayService interface {
	Relay(ctx context.Context, signer Signer, operationID uuid.UUID) (*domain.Operation, error)
}

// StepResult is returned by saga steps that may hand a payload to the client.
// Operation and Payload are nil when nothing needs signing.
type StepResult struct {
	Parent    any                     `json:"parent"`
	Operation *domain.Operation       `json:"operation,omitempty"`
	Payload   *domain.UnsignedPayload `json:"payload,omitempty"`
}

// WageAdvanceService drives the wage-advance saga.
type WageAdvanceService interface {
	CreateRequest(ctx context.Context, employeeID uuid.UUID, amount int64) (*domain.WageAdvanceRequest, error)
	GetAssociationRequirement(ctx context.Context, requestID uuid.UUID, accountID string) (*StepResult, error)
	CreateSchedule(ctx context.Context, requestID uuid.UUID) (*StepResult, error)
	CastApproval(ctx context.Context, requestID, deciderID uuid.UUID, approve bool, reason string) (*domain.WageAdvanceRequest, error)
	ScheduleExecuted(ctx context.Context, scheduledTransactionID string, success bool) (*domain.WageAdvanceRequest, error)
	Get(ctx context.Context, requestID uuid.UUID) (*domain.WageAdvanceRequest, error)
}

// PaymentService drives the shop payment saga.
type PaymentService interface {
	CreatePaymentRequest(ctx context.Context, shopID uuid.UUID, amount int64, memo string) (*domain.PaymentRequest, error)
	PrepareShopAcceptance(ctx context.Context, paymentRequestID uuid.UUID) (*StepResult, error)
	PreparePayment(ctx context.Context, paymentRequestID, payerID uuid.UUID) (*StepResult, error)
	Get(ctx context.Context, paymentRequestID uuid.UUID) (*domain.PaymentRequest, error)
}

// SwapService drives the token swap saga.
type SwapService interface {
	CreateSwapIntent(ctx context.Context, userID uuid.UUID, amount int64) (*domain.SwapIntent, error)
	PrepareSwap(ctx context.Context, intentID uuid.UUID) (*StepResult, error)
	Get(ctx context.Context, intentID uuid.UUID) (*domain.SwapIntent, error)
}

// HistoryService serves an enterprise's wage-advance history.
type HistoryService interface {
	GetHistory(ctx context.Context, params HistoryListParams) ([]domain.HistoryEntry, int64, error)
}
