package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// StepResult is what a saga step hands back to the client.
type StepResult = ports.StepResult

// parentGuard serialises every write to one parent: a ParentLocker around a
// single database transaction.
type parentGuard struct {
	locker     ports.ParentLocker
	transactor ports.DBTransactor
	metrics    ports.EngineMetrics
}

// run acquires the parent lock, begins a transaction, calls fn and commits
// when fn succeeds. fn is expected to read the parent row FOR UPDATE first.
// Hooks registered with afterCommit on fn's ctx run once the commit succeeded.
func (g parentGuard) run(ctx context.Context, ref domain.ParentRef, fn func(ctx context.Context, tx pgx.Tx) error) error {
	start := time.Now()
	unlock, err := g.locker.Lock(ctx, ref.String())
	g.metrics.LockWait(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, ports.ErrLockNotAcquired) || errors.Is(err, context.DeadlineExceeded) {
			return apperror.ErrLockWaitExhausted(err)
		}
		return apperror.ErrLockUnavailable(err)
	}
	defer unlock()

	dbTx, err := g.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	hooks := &commitHooks{}
	fnErr := fn(context.WithValue(ctx, commitHooksKey{}, hooks), dbTx)
	var keep commitAndFail
	if fnErr != nil && !errors.As(fnErr, &keep) {
		return fnErr
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	for _, hook := range hooks.fns {
		hook()
	}
	if fnErr != nil {
		return keep.err
	}
	return nil
}

type commitHooksKey struct{}

type commitHooks struct {
	fns []func()
}

// afterCommit defers fn until the surrounding parentGuard transaction commits.
// Outside a guard fn runs immediately.
func afterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

// commitAndFail makes parentGuard.run commit the transaction and still
// return err, e.g. when an expired parent is flipped before refusing.
type commitAndFail struct{ err error }

func (c commitAndFail) Error() string { return c.err.Error() }
func (c commitAndFail) Unwrap() error { return c.err }

// SagaDeps bundles the collaborators shared by the saga services.
type SagaDeps struct {
	Ledger     ports.LedgerService
	Preparer   ports.PreparerService
	Policies   ports.PolicyStore
	Identities ports.IdentityLookup
	Notifier   ports.Notifier
	Locker     ports.ParentLocker
	Transactor ports.DBTransactor
	Metrics    ports.EngineMetrics
}

// sagaBase holds what every saga step needs around its own repository.
type sagaBase struct {
	ledger     ports.LedgerService
	preparer   ports.PreparerService
	policies   ports.PolicyStore
	identities ports.IdentityLookup
	notifier   ports.Notifier
	metrics    ports.EngineMetrics
	guard      parentGuard
	now        func() time.Time
	log        zerolog.Logger
}

func newSagaBase(deps SagaDeps, log zerolog.Logger) sagaBase {
	return sagaBase{
		ledger:     deps.Ledger,
		preparer:   deps.Preparer,
		policies:   deps.Policies,
		identities: deps.Identities,
		notifier:   deps.Notifier,
		metrics:    deps.Metrics,
		guard:      parentGuard{locker: deps.Locker, transactor: deps.Transactor, metrics: deps.Metrics},
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

func (b *sagaBase) policy(ctx context.Context, enterpriseID uuid.UUID) (*domain.EnterprisePolicy, error) {
	p, err := b.policies.GetPolicy(ctx, enterpriseID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get policy: %w", err))
	}
	if p == nil {
		return nil, apperror.ErrNotFound("enterprise policy")
	}
	return p, nil
}

func (b *sagaBase) user(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := b.identities.GetUser(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if u == nil {
		return nil, apperror.ErrUnknownAccount()
	}
	return u, nil
}

// requireNoOutstanding refuses to prepare while the parent still has an
// operation awaiting signature or confirmation. Callers hold the parent lock
// and read through the guard's tx.
func (b *sagaBase) requireNoOutstanding(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) error {
	op, err := b.ledger.FindOutstanding(ctx, tx, ref)
	if err != nil {
		return asAppError(err, "find outstanding")
	}
	if op != nil {
		return apperror.ErrOutstandingOperation()
	}
	return nil
}

// record stores the operation for a payload that is about to be handed out.
func (b *sagaBase) record(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, payload *domain.UnsignedPayload, details domain.OperationDetails, actor string) (*domain.Operation, error) {
	if details == nil {
		details = payload.Details
	}
	return b.ledger.CreateOperation(ctx, tx, ports.CreateOperationInput{
		Type:                payload.IntentType.OperationType(),
		ParentRef:           ref,
		Details:             details,
		UnsignedTransaction: payload.TransactionBytes,
		SignerAccountID:     payload.SignerAccountID,
		Actor:               actor,
	})
}

// transitioned records a parent status change once the transaction commits,
// and notifies the enterprise when the status is terminal.
func (b *sagaBase) transitioned(ctx context.Context, enterpriseID uuid.UUID, ref domain.ParentRef, status, reason string, terminal bool) {
	b.log.Info().
		Str("parent_ref", ref.String()).
		Str("to", status).
		Str("reason", reason).
		Msg("parent transitioned")
	afterCommit(ctx, func() {
		b.metrics.ParentTransitioned(ref.Kind, status)
		if !terminal || b.notifier == nil {
			return
		}
		event := domain.SagaEvent{
			ID:           uuid.New(),
			EnterpriseID: enterpriseID,
			Parent:       ref,
			Status:       status,
			Reason:       reason,
			OccurredAt:   b.now(),
		}
		if err := b.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
			b.log.Warn().Err(err).Str("parent_ref", ref.String()).Msg("saga notification not queued")
		}
	})
}

// asAppError keeps AppErrors as they are and wraps anything else as internal.
func asAppError(err error, op string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
