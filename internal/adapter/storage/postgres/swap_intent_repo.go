package postgres

import (
	"context"
	"errors"
	"fmt"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const swapIntentColumns = `id, user_id, enterprise_id, account_id, token_id, contract_id, amount, status,
	transaction_id, expires_at, created_at, updated_at, swapped_at`

// SwapIntentRepo implements ports.SwapIntentRepository.
type SwapIntentRepo struct {
	pool Pool
}

// NewSwapIntentRepo creates a new SwapIntentRepo.
func NewSwapIntentRepo(pool Pool) *SwapIntentRepo {
	return &SwapIntentRepo{pool: pool}
}

func (r *SwapIntentRepo) Create(ctx context.Context, s *domain.SwapIntent) error {
	query := `INSERT INTO swap_intents (` + swapIntentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID, s.EnterpriseID, s.AccountID, s.TokenID, s.ContractID, s.Amount, s.Status,
		s.TransactionID, s.ExpiresAt, s.CreatedAt, s.UpdatedAt, s.SwappedAt,
	)
	if err != nil {
		return fmt.Errorf("insert swap intent: %w", err)
	}
	return nil
}

func (r *SwapIntentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapIntent, error) {
	query := `SELECT ` + swapIntentColumns + ` FROM swap_intents WHERE id = $1`
	return scanSwapIntent(r.pool.QueryRow(ctx, query, id))
}

func (r *SwapIntentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SwapIntent, error) {
	query := `SELECT ` + swapIntentColumns + ` FROM swap_intents WHERE id = $1 FOR UPDATE`
	return scanSwapIntent(tx.QueryRow(ctx, query, id))
}

func (r *SwapIntentRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.SwapIntent) error {
	query := `UPDATE swap_intents SET status = $1, transaction_id = $2, updated_at = $3, swapped_at = $4
		WHERE id = $5`

	tag, err := tx.Exec(ctx, query, s.Status, s.TransactionID, s.UpdatedAt, s.SwappedAt, s.ID)
	if err != nil {
		return fmt.Errorf("update swap intent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("swap intent not found: %s", s.ID)
	}
	return nil
}

func scanSwapIntent(row pgx.Row) (*domain.SwapIntent, error) {
	s := &domain.SwapIntent{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.EnterpriseID, &s.AccountID, &s.TokenID, &s.ContractID, &s.Amount, &s.Status,
		&s.TransactionID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt, &s.SwappedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan swap intent: %w", err)
	}
	return s, nil
}
