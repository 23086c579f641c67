package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

type OrderRepository struct {
	q Executor
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{q: db}
}

// FindByID retrieves an order together with its transactions.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findByID(ctx, orderID, false)
}

// FindByIDForUpdate retrieves an order with a row-level lock on the order
// row. Only meaningful inside a transaction.
func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findByID(ctx, orderID, true)
}

func (r *OrderRepository) findByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error) {
	query := `
		SELECT id, order_number, sales_channel_id, price, created_at
		FROM orders WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var m OrderModel
	err := r.q.QueryRow(ctx, query, orderID).Scan(
		&m.ID, &m.OrderNumber, &m.SalesChannelID, &m.Price, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewOrderNotFoundError(orderID)
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	transactions, err := r.loadTransactions(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return toDomainOrder(m, transactions)
}

func (r *OrderRepository) loadTransactions(ctx context.Context, orderID string) ([]*domain.OrderTransaction, error) {
	query := `
		SELECT id, order_id, payment_method_id, state, amount, custom_fields, created_at, updated_at
		FROM order_transactions
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order transactions: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.OrderTransaction, error) {
		var m OrderTransactionModel
		if err := row.Scan(
			&m.ID, &m.OrderID, &m.PaymentMethodID, &m.State,
			&m.Amount, &m.CustomFields, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		return toDomainTransaction(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan order transactions: %w", err)
	}

	return results, nil
}
