package postgres

import (
	"context"
	"errors"
	"fmt"

	"dlt-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DirectoryRepo reads enterprise policy and users from PostgreSQL.
// It implements ports.PolicyStore and ports.IdentityLookup.
type DirectoryRepo struct {
	pool Pool
}

// NewDirectoryRepo creates a new DirectoryRepo.
func NewDirectoryRepo(pool Pool) *DirectoryRepo {
	return &DirectoryRepo{pool: pool}
}

func (r *DirectoryRepo) GetPolicy(ctx context.Context, enterpriseID uuid.UUID) (*domain.EnterprisePolicy, error) {
	query := `SELECT enterprise_id, approval_quorum, settlement_day, token_id, swap_contract_id,
		treasury_account_id, max_advance_amount, webhook_url
		FROM enterprise_policies WHERE enterprise_id = $1`

	p := &domain.EnterprisePolicy{}
	err := r.pool.QueryRow(ctx, query, enterpriseID).Scan(
		&p.EnterpriseID, &p.ApprovalQuorum, &p.SettlementDay, &p.TokenID, &p.SwapContractID,
		&p.TreasuryAccountID, &p.MaxAdvanceAmount, &p.WebhookURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enterprise policy: %w", err)
	}
	return p, nil
}

func (r *DirectoryRepo) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, account_id, role, enterprise_id, name FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *DirectoryRepo) GetUserByAccount(ctx context.Context, accountID string) (*domain.User, error) {
	query := `SELECT id, account_id, role, enterprise_id, name FROM users WHERE account_id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, accountID))
}

// UpsertPolicy writes a policy row, used by the seed command.
func (r *DirectoryRepo) UpsertPolicy(ctx context.Context, p *domain.EnterprisePolicy) error {
	query := `INSERT INTO enterprise_policies (enterprise_id, approval_quorum, settlement_day, token_id,
		swap_contract_id, treasury_account_id, max_advance_amount, webhook_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (enterprise_id) DO UPDATE SET approval_quorum = EXCLUDED.approval_quorum,
		settlement_day = EXCLUDED.settlement_day, token_id = EXCLUDED.token_id,
		swap_contract_id = EXCLUDED.swap_contract_id, treasury_account_id = EXCLUDED.treasury_account_id,
		max_advance_amount = EXCLUDED.max_advance_amount, webhook_url = EXCLUDED.webhook_url`

	_, err := r.pool.Exec(ctx, query,
		p.EnterpriseID, p.ApprovalQuorum, p.SettlementDay, p.TokenID,
		p.SwapContractID, p.TreasuryAccountID, p.MaxAdvanceAmount, p.WebhookURL,
	)
	if err != nil {
		return fmt.Errorf("upsert enterprise policy: %w", err)
	}
	return nil
}

// UpsertUser writes a user row, used by the seed command.
func (r *DirectoryRepo) UpsertUser(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, account_id, role, enterprise_id, name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET account_id = EXCLUDED.account_id, role = EXCLUDED.role,
		enterprise_id = EXCLUDED.enterprise_id, name = EXCLUDED.name`

	_, err := r.pool.Exec(ctx, query, u.ID, u.AccountID, u.Role, u.EnterpriseID, u.Name)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.AccountID, &u.Role, &u.EnterpriseID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
