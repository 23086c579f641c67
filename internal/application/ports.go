// Package application defines the ports the payment services depend on.
package application

import (
	"context"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
	"github.com/ntzrbtr/adyen-shopware6/internal/scope"
)

// OrderRepository is the port for order persistence. Orders are always loaded
// together with their transactions.
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	// FindByIDForUpdate locks the order row for the duration of the enclosing
	// unit of work, serializing concurrent payment-method changes per order.
	FindByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderTransactionRepository is the port for order-transaction persistence.
// Mutations require a system scope: end-user request scopes carry no write
// permission on transactions.
type OrderTransactionRepository interface {
	FindByID(ctx context.Context, id string) (*domain.OrderTransaction, error)
	Create(ctx context.Context, sys scope.System, transaction *domain.OrderTransaction) error
	UpdateState(ctx context.Context, sys scope.System, id string, state domain.TransactionState) error
	UpdateCustomFields(ctx context.Context, sys scope.System, id string, fields map[string]any) error
}

// PaymentResponseRepository is the port for stored provider payment payloads.
// Rows are only ever created and updated, never deleted.
type PaymentResponseRepository interface {
	Create(ctx context.Context, response *domain.PaymentResponse) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.PaymentResponse, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PaymentResponse, error)
	FindStaleNonFinal(ctx context.Context, cutoff time.Time, limit int) ([]*domain.PaymentResponse, error)
	Update(ctx context.Context, response *domain.PaymentResponse) error
}

// Repositories bundles the repository ports bound to one database handle or
// one open transaction.
type Repositories interface {
	Orders() OrderRepository
	OrderTransactions() OrderTransactionRepository
	PaymentResponses() PaymentResponseRepository
}

// UnitOfWork executes a function atomically: either every repository call
// inside the closure commits, or none do.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
