package memory

import (
	"context"
	"fmt"
	"sort"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Wage advance requests ---

// WageAdvanceRepo implements ports.WageAdvanceRepository.
type WageAdvanceRepo struct {
	store *Store
}

func NewWageAdvanceRepo(store *Store) *WageAdvanceRepo {
	return &WageAdvanceRepo{store: store}
}

func (r *WageAdvanceRepo) Create(ctx context.Context, req *domain.WageAdvanceRequest) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.advances[req.ID]; ok {
			return nil, fmt.Errorf("wage advance request %s already exists", req.ID)
		}
		r.store.advances[req.ID] = req.Clone()
		return nil, nil
	})
}

func (r *WageAdvanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WageAdvanceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	req, ok := r.store.advances[id]
	if !ok {
		return nil, nil
	}
	return req.Clone(), nil
}

func (r *WageAdvanceRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WageAdvanceRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *WageAdvanceRepo) GetByScheduledTransactionID(ctx context.Context, txID string) (*domain.WageAdvanceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, req := range r.store.advances {
		if req.ScheduledTransactionID != nil && *req.ScheduledTransactionID == txID {
			return req.Clone(), nil
		}
	}
	return nil, nil
}

// Update stores req when the stored version matches and bumps req.Version.
func (r *WageAdvanceRepo) Update(ctx context.Context, tx pgx.Tx, req *domain.WageAdvanceRequest) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.advances[req.ID]
		if !ok {
			return nil, fmt.Errorf("wage advance request not found: %s", req.ID)
		}
		if prev.Version != req.Version {
			return nil, ports.ErrVersionConflict
		}
		next := req.Clone()
		next.Version++
		r.store.advances[req.ID] = next
		req.Version = next.Version
		return func() { r.store.advances[prev.ID] = prev }, nil
	})
}

func (r *WageAdvanceRepo) ListByEnterprise(ctx context.Context, params ports.HistoryListParams) ([]*domain.WageAdvanceRequest, int64, error) {
	r.store.mu.RLock()
	var all []*domain.WageAdvanceRequest
	for _, req := range r.store.advances {
		if req.EnterpriseID != params.EnterpriseID {
			continue
		}
		if params.Status != nil && req.Status != *params.Status {
			continue
		}
		all = append(all, req.Clone())
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))

	offset := (params.Page - 1) * params.PageSize
	if offset < 0 || offset >= len(all) {
		return nil, total, nil
	}
	end := offset + params.PageSize
	if params.PageSize <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// --- Payment requests ---

// PaymentRequestRepo implements ports.PaymentRequestRepository.
type PaymentRequestRepo struct {
	store *Store
}

func NewPaymentRequestRepo(store *Store) *PaymentRequestRepo {
	return &PaymentRequestRepo{store: store}
}

func (r *PaymentRequestRepo) Create(ctx context.Context, p *domain.PaymentRequest) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.payments[p.ID]; ok {
			return nil, fmt.Errorf("payment request %s already exists", p.ID)
		}
		r.store.payments[p.ID] = p.Clone()
		return nil, nil
	})
}

func (r *PaymentRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.payments[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *PaymentRequestRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *PaymentRequestRepo) Update(ctx context.Context, tx pgx.Tx, p *domain.PaymentRequest) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.payments[p.ID]
		if !ok {
			return nil, fmt.Errorf("payment request not found: %s", p.ID)
		}
		r.store.payments[p.ID] = p.Clone()
		return func() { r.store.payments[prev.ID] = prev }, nil
	})
}

// --- Swap intents ---

// SwapIntentRepo implements ports.SwapIntentRepository.
type SwapIntentRepo struct {
	store *Store
}

func NewSwapIntentRepo(store *Store) *SwapIntentRepo {
	return &SwapIntentRepo{store: store}
}

func (r *SwapIntentRepo) Create(ctx context.Context, s *domain.SwapIntent) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.swaps[s.ID]; ok {
			return nil, fmt.Errorf("swap intent %s already exists", s.ID)
		}
		r.store.swaps[s.ID] = s.Clone()
		return nil, nil
	})
}

func (r *SwapIntentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapIntent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.swaps[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (r *SwapIntentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SwapIntent, error) {
	return r.GetByID(ctx, id)
}

func (r *SwapIntentRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.SwapIntent) error {
	return r.store.write(tx, func() (func(), error) {
		prev, ok := r.store.swaps[s.ID]
		if !ok {
			return nil, fmt.Errorf("swap intent not found: %s", s.ID)
		}
		r.store.swaps[s.ID] = s.Clone()
		return func() { r.store.swaps[prev.ID] = prev }, nil
	})
}

// --- HTTP audit log ---

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	store *Store
}

func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	return r.store.write(nil, func() (func(), error) {
		l := *log
		r.store.logs = append(r.store.logs, &l)
		return nil, nil
	})
}

// List returns every recorded audit log, oldest first.
func (r *AuditRepo) List() []domain.AuditLog {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.AuditLog, 0, len(r.store.logs))
	for _, l := range r.store.logs {
		out = append(out, *l)
	}
	return out
}
