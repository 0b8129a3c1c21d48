package ports

import (
	"context"
	"errors"
	"time"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrLockNotAcquired is returned by ParentLocker when the wait budget is spent.
var ErrLockNotAcquired = errors.New("parent lock not acquired")

// Signer turns unsigned transaction bytes into a submitted transaction.
// It is opaque and may never return; callers bound it with ctx.
type Signer interface {
	Sign(ctx context.Context, accountID string, unsigned []byte) (domain.Outcome, error)
}

// ChainReader answers read-only questions about ledger state on the network.
type ChainReader interface {
	TokenExists(ctx context.Context, tokenID string) (bool, error)
	ContractExists(ctx context.Context, contractID string) (bool, error)
	IsAssociated(ctx context.Context, accountID, tokenID string) (bool, error)
	TokenBalance(ctx context.Context, accountID, tokenID string) (int64, error)
}

// PolicyStore supplies enterprise policy. Returns (nil, nil) when unknown.
type PolicyStore interface {
	GetPolicy(ctx context.Context, enterpriseID uuid.UUID) (*domain.EnterprisePolicy, error)
}

// IdentityLookup resolves users. Returns (nil, nil) when unknown.
type IdentityLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByAccount(ctx context.Context, accountID string) (*domain.User, error)
}

// ParentLocker serialises writers per parent reference.
// The returned unlock func must be called exactly once.
type ParentLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// SagaContinuation is how the reconciler hands operation outcomes back to
// the saga owning the parent. Every method runs inside the reconciler's
// transaction with the parent already locked through LockParent.
type SagaContinuation interface {
	LockParent(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) error
	OnSubmitted(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
	OnFailed(ctx context.Context, tx pgx.Tx, op *domain.Operation, cause domain.FailureCause) error
	OnConfirmed(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
}

// EngineMetrics records engine counters.
type EngineMetrics interface {
	OperationCreated(opType domain.OperationType)
	OperationTransitioned(opType domain.OperationType, from, to domain.OperationStatus)
	ParentTransitioned(kind domain.ParentKind, to string)
	SignerCall(result string, elapsed time.Duration)
	LockWait(acquired bool, elapsed time.Duration)
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// Notifier delivers saga events to enterprise webhooks.
type Notifier interface {
	Notify(ctx context.Context, event domain.SagaEvent) error
}
