package service

import (
	"context"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
)

// historyService implements ports.HistoryService.
type historyService struct {
	wageRepo ports.WageAdvanceRepository
	ledger   ports.LedgerService
}

// NewHistoryService creates a new history service.
func NewHistoryService(wageRepo ports.WageAdvanceRepository, ledger ports.LedgerService) ports.HistoryService {
	return &historyService{
		wageRepo: wageRepo,
		ledger:   ledger,
	}
}

// GetHistory returns a page of an enterprise's wage advances, newest first,
// each with the operations recorded for it.
func (s *historyService) GetHistory(ctx context.Context, params ports.HistoryListParams) ([]domain.HistoryEntry, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.PageSize <= 0:
		params.PageSize = defaultHistoryPageSize
	case params.PageSize > maxHistoryPageSize:
		return nil, 0, apperror.Validation("page_size must be at most 100")
	}

	reqs, total, err := s.wageRepo.ListByEnterprise(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}

	entries := make([]domain.HistoryEntry, 0, len(reqs))
	for _, req := range reqs {
		ops, err := s.ledger.ListByParent(ctx, req.Ref())
		if err != nil {
			return nil, 0, asAppError(err, "list operations")
		}
		entries = append(entries, domain.HistoryEntry{Request: req, Operations: ops})
	}
	return entries, total, nil
}
