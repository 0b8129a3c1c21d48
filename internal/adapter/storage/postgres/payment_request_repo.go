package postgres

import (
	"context"
	"errors"
	"fmt"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentRequestColumns = `id, shop_id, enterprise_id, shop_account_id, token_id, amount, memo, status,
	paid_by, transaction_id, expires_at, created_at, updated_at, paid_at`

// PaymentRequestRepo implements ports.PaymentRequestRepository.
type PaymentRequestRepo struct {
	pool Pool
}

// NewPaymentRequestRepo creates a new PaymentRequestRepo.
func NewPaymentRequestRepo(pool Pool) *PaymentRequestRepo {
	return &PaymentRequestRepo{pool: pool}
}

func (r *PaymentRequestRepo) Create(ctx context.Context, p *domain.PaymentRequest) error {
	query := `INSERT INTO payment_requests (` + paymentRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ShopID, p.EnterpriseID, p.ShopAccountID, p.TokenID, p.Amount, p.Memo, p.Status,
		p.PaidBy, p.TransactionID, p.ExpiresAt, p.CreatedAt, p.UpdatedAt, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment request: %w", err)
	}
	return nil
}

func (r *PaymentRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE id = $1`
	return scanPaymentRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *PaymentRequestRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE id = $1 FOR UPDATE`
	return scanPaymentRequest(tx.QueryRow(ctx, query, id))
}

func (r *PaymentRequestRepo) Update(ctx context.Context, tx pgx.Tx, p *domain.PaymentRequest) error {
	query := `UPDATE payment_requests SET status = $1, paid_by = $2, transaction_id = $3,
		updated_at = $4, paid_at = $5 WHERE id = $6`

	tag, err := tx.Exec(ctx, query, p.Status, p.PaidBy, p.TransactionID, p.UpdatedAt, p.PaidAt, p.ID)
	if err != nil {
		return fmt.Errorf("update payment request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment request not found: %s", p.ID)
	}
	return nil
}

func scanPaymentRequest(row pgx.Row) (*domain.PaymentRequest, error) {
	p := &domain.PaymentRequest{}
	err := row.Scan(
		&p.ID, &p.ShopID, &p.EnterpriseID, &p.ShopAccountID, &p.TokenID, &p.Amount, &p.Memo, &p.Status,
		&p.PaidBy, &p.TransactionID, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt, &p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment request: %w", err)
	}
	return p, nil
}
