package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// sagaTxOptions: every saga step reads its parent with SELECT ... FOR UPDATE,
// so read committed is enough and avoids serialization retries.
var sagaTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.ReadCommitted,
	AccessMode: pgx.ReadWrite,
}

// Transactor opens the transaction a saga step or reconciler call runs in.
type Transactor struct {
	pool Pool
}

func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, sagaTxOptions)
}
