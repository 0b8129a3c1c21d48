package postgres

import (
	"context"
	"errors"
	"fmt"
)

// HealthCheck reports the database reachable only once the ledger schema
// is present, so a server started without migrations shows as degraded.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	var ready bool
	err := h.pool.QueryRow(ctx,
		`SELECT to_regclass('operations') IS NOT NULL AND to_regclass('operation_audit') IS NOT NULL`,
	).Scan(&ready)
	if err != nil {
		return fmt.Errorf("query ledger schema: %w", err)
	}
	if !ready {
		return errors.New("ledger schema missing, run opsctl migrate")
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
