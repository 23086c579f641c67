package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
)

// TransactionCoordinator runs repository operations inside a single database
// transaction.
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithTransaction executes a function within a database transaction.
// The function receives repository instances bound to the transaction.
func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repos application.Repositories) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	repos := &repoSet{
		orders:       &OrderRepository{q: tx},
		transactions: &OrderTransactionRepository{q: tx},
		responses:    &PaymentResponseRepository{q: tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type repoSet struct {
	orders       *OrderRepository
	transactions *OrderTransactionRepository
	responses    *PaymentResponseRepository
}

func (r *repoSet) Orders() application.OrderRepository { return r.orders }

func (r *repoSet) OrderTransactions() application.OrderTransactionRepository { return r.transactions }

func (r *repoSet) PaymentResponses() application.PaymentResponseRepository { return r.responses }

var (
	_ application.UnitOfWork                 = (*TransactionCoordinator)(nil)
	_ application.Repositories               = (*repoSet)(nil)
	_ application.OrderRepository            = (*OrderRepository)(nil)
	_ application.OrderTransactionRepository = (*OrderTransactionRepository)(nil)
	_ application.PaymentResponseRepository  = (*PaymentResponseRepository)(nil)
)
