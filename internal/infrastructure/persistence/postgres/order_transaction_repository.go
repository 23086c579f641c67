package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
	"github.com/ntzrbtr/adyen-shopware6/internal/scope"
)

var errSystemScopeRequired = errors.New("order transaction mutation requires a system scope")

type OrderTransactionRepository struct {
	q Executor
}

func NewOrderTransactionRepository(db *pgxpool.Pool) *OrderTransactionRepository {
	return &OrderTransactionRepository{q: db}
}

func (r *OrderTransactionRepository) FindByID(ctx context.Context, id string) (*domain.OrderTransaction, error) {
	query := `
		SELECT id, order_id, payment_method_id, state, amount, custom_fields, created_at, updated_at
		FROM order_transactions WHERE id = $1
	`

	var m OrderTransactionModel
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.OrderID, &m.PaymentMethodID, &m.State,
		&m.Amount, &m.CustomFields, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.DomainError{
				Code:    domain.ErrCodeNotFound,
				Message: fmt.Sprintf("order transaction %s not found", id),
			}
		}
		return nil, fmt.Errorf("failed to scan order transaction: %w", err)
	}

	return toDomainTransaction(m)
}

func (r *OrderTransactionRepository) Create(ctx context.Context, sys scope.System, transaction *domain.OrderTransaction) error {
	if !sys.Valid() {
		return errSystemScopeRequired
	}

	m, err := toTransactionModel(transaction)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO order_transactions (
			id, order_id, payment_method_id, state, amount, custom_fields, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.q.Exec(ctx, query,
		m.ID,
		m.OrderID,
		m.PaymentMethodID,
		m.State,
		m.Amount,
		m.CustomFields,
		m.CreatedAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create order transaction: %w", err)
	}

	return nil
}

func (r *OrderTransactionRepository) UpdateState(ctx context.Context, sys scope.System, id string, state domain.TransactionState) error {
	if !sys.Valid() {
		return errSystemScopeRequired
	}

	query := `
		UPDATE order_transactions
		SET state = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, string(state), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order transaction %s not found", id)
	}

	return nil
}

func (r *OrderTransactionRepository) UpdateCustomFields(ctx context.Context, sys scope.System, id string, fields map[string]any) error {
	if !sys.Valid() {
		return errSystemScopeRequired
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode custom fields: %w", err)
	}

	query := `
		UPDATE order_transactions
		SET custom_fields = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, encoded, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction custom fields: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order transaction %s not found", id)
	}

	return nil
}
