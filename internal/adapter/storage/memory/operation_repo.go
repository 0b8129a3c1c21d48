package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OperationRepo implements ports.OperationRepository.
type OperationRepo struct {
	store *Store
}

func NewOperationRepo(store *Store) *OperationRepo {
	return &OperationRepo{store: store}
}

// Create enforces one outstanding operation per parent, like the
// partial unique index of the postgres driver.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	return r.store.write(tx, func() (func(), error) {
		if _, ok := r.store.ops[op.ID]; ok {
			return nil, fmt.Errorf("operation %s already exists", op.ID)
		}
		if op.Status.IsOutstanding() {
			for _, existing := range r.store.ops {
				if existing.ParentRef == op.ParentRef && existing.Status.IsOutstanding() {
					return nil, ports.ErrOutstandingOperation
				}
			}
		}
		r.store.opSeq++
		op.Seq = r.store.opSeq
		r.store.ops[op.ID] = op.Clone()
		id := op.ID
		return func() { delete(r.store.ops, id) }, nil
	})
}

func (r *OperationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	op, ok := r.store.ops[id]
	if !ok {
		return nil, nil
	}
	return op.Clone(), nil
}

func (r *OperationRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Operation, error) {
	return r.GetByID(ctx, id)
}

func (r *OperationRepo) Update(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.ops[op.ID]
		if !ok {
			return nil, fmt.Errorf("operation not found: %s", op.ID)
		}
		r.store.ops[op.ID] = op.Clone()
		return func() { r.store.ops[prev.ID] = prev }, nil
	})
}

func (r *OperationRepo) FindOutstandingForUpdate(ctx context.Context, tx pgx.Tx, ref domain.ParentRef) (*domain.Operation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, op := range r.store.ops {
		if op.ParentRef == ref && op.Status.IsOutstanding() {
			return op.Clone(), nil
		}
	}
	return nil, nil
}

func (r *OperationRepo) ListByParent(ctx context.Context, ref domain.ParentRef) ([]*domain.Operation, error) {
	return r.filter(func(op *domain.Operation) bool { return op.ParentRef == ref }, 0), nil
}

func (r *OperationRepo) CountFailed(ctx context.Context, tx pgx.Tx, ref domain.ParentRef, opType domain.OperationType) (int, error) {
	ops := r.filter(func(op *domain.Operation) bool {
		return op.ParentRef == ref && op.Type == opType && op.Status == domain.OperationFailed
	}, 0)
	return len(ops), nil
}

func (r *OperationRepo) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Operation, error) {
	return r.filter(func(op *domain.Operation) bool {
		return op.Status == domain.OperationPendingSignature && op.CreatedAt.Before(olderThan)
	}, limit), nil
}

// filter returns matching operations in creation order, at most limit when limit > 0.
func (r *OperationRepo) filter(match func(*domain.Operation) bool, limit int) []*domain.Operation {
	r.store.mu.RLock()
	var out []*domain.Operation
	for _, op := range r.store.ops {
		if match(op) {
			out = append(out, op.Clone())
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OperationAuditRepo implements ports.OperationAuditRepository.
type OperationAuditRepo struct {
	store *Store
}

func NewOperationAuditRepo(store *Store) *OperationAuditRepo {
	return &OperationAuditRepo{store: store}
}

func (r *OperationAuditRepo) Append(ctx context.Context, tx pgx.Tx, entry *domain.OperationAudit) error {
	return r.store.write(tx, func() (func(), error) {
		e := *entry
		e.Snapshot = append([]byte(nil), entry.Snapshot...)
		r.store.opAudits = append(r.store.opAudits, &e)
		return func() {
			for i, a := range r.store.opAudits {
				if a == &e {
					r.store.opAudits = append(r.store.opAudits[:i], r.store.opAudits[i+1:]...)
					return
				}
			}
		}, nil
	})
}

func (r *OperationAuditRepo) ListByOperation(ctx context.Context, operationID uuid.UUID) ([]*domain.OperationAudit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domain.OperationAudit
	for _, e := range r.store.opAudits {
		if e.OperationID == operationID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}
