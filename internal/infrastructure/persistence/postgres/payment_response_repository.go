package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

const paymentResponseColumns = `
	id, order_transaction_id, order_id, order_number,
	result_code, payment_data, response, created_at, updated_at
`

type PaymentResponseRepository struct {
	q Executor
}

func NewPaymentResponseRepository(db *pgxpool.Pool) *PaymentResponseRepository {
	return &PaymentResponseRepository{q: db}
}

func (r *PaymentResponseRepository) Create(ctx context.Context, response *domain.PaymentResponse) error {
	query := `
		INSERT INTO payment_responses (
			id, order_transaction_id, order_id, order_number,
			result_code, payment_data, response, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	_, err := r.q.Exec(ctx, query,
		response.ID,
		response.OrderTransactionID,
		response.OrderID,
		response.OrderNumber,
		string(response.ResultCode),
		response.PaymentData,
		response.Response,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment response: %w", err)
	}

	return nil
}

// FindByOrderID retrieves the latest payment response for an order.
func (r *PaymentResponseRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.PaymentResponse, error) {
	query := `
		SELECT ` + paymentResponseColumns + `
		FROM payment_responses
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	return scanPaymentResponse(r.q.QueryRow(ctx, query, orderID), orderID)
}

// FindByOrderNumber retrieves the latest payment response for an order by its
// human-facing number (the provider's merchant reference).
func (r *PaymentResponseRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PaymentResponse, error) {
	query := `
		SELECT ` + paymentResponseColumns + `
		FROM payment_responses
		WHERE order_number = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	return scanPaymentResponse(r.q.QueryRow(ctx, query, orderNumber), orderNumber)
}

// FindStaleNonFinal finds responses stuck in a non-final result code since
// before the cutoff.
func (r *PaymentResponseRepository) FindStaleNonFinal(ctx context.Context, cutoff time.Time, limit int) ([]*domain.PaymentResponse, error) {
	query := `
		SELECT ` + paymentResponseColumns + `
		FROM payment_responses
		WHERE result_code NOT IN ('Authorised', 'Refused', 'Cancelled', 'Error')
		  AND updated_at < $1
		ORDER BY updated_at ASC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale payment responses: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.PaymentResponse, error) {
		var m PaymentResponseModel
		if err := row.Scan(
			&m.ID, &m.OrderTransactionID, &m.OrderID, &m.OrderNumber,
			&m.ResultCode, &m.PaymentData, &m.Response, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		return toDomainPaymentResponse(m), nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan stale payment responses: %w", err)
	}

	return results, nil
}

func (r *PaymentResponseRepository) Update(ctx context.Context, response *domain.PaymentResponse) error {
	query := `
		UPDATE payment_responses
		SET result_code = $1, payment_data = $2, response = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.q.Exec(ctx, query,
		string(response.ResultCode),
		response.PaymentData,
		response.Response,
		time.Now(),
		response.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment response: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment response %s not found", response.ID)
	}

	return nil
}

// scanPaymentResponse converts a database row into a domain PaymentResponse.
func scanPaymentResponse(row pgx.Row, ref string) (*domain.PaymentResponse, error) {
	var m PaymentResponseModel
	err := row.Scan(
		&m.ID, &m.OrderTransactionID, &m.OrderID, &m.OrderNumber,
		&m.ResultCode, &m.PaymentData, &m.Response, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentResponseNotFoundError(ref)
		}
		return nil, fmt.Errorf("failed to scan payment response: %w", err)
	}

	return toDomainPaymentResponse(m), nil
}
