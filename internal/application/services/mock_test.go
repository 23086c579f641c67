package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
	"github.com/ntzrbtr/adyen-shopware6/internal/scope"
)

// MockOrderRepository
type MockOrderRepository struct {
	orders map[string]*domain.Order

	FindByIDFn          func(ctx context.Context, orderID string) (*domain.Order, error)
	FindByIDForUpdateFn func(ctx context.Context, orderID string) (*domain.Order, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, orderID)
	}
	if order, ok := m.orders[orderID]; ok {
		return order, nil
	}
	return nil, domain.NewOrderNotFoundError(orderID)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.FindByIDForUpdateFn != nil {
		return m.FindByIDForUpdateFn(ctx, orderID)
	}
	return m.FindByID(ctx, orderID)
}

// MockOrderTransactionRepository
type MockOrderTransactionRepository struct {
	transactions map[string]*domain.OrderTransaction

	StateUpdates        []string
	CustomFieldsUpdates []map[string]any

	FindByIDFn           func(ctx context.Context, id string) (*domain.OrderTransaction, error)
	CreateFn             func(ctx context.Context, sys scope.System, transaction *domain.OrderTransaction) error
	UpdateStateFn        func(ctx context.Context, sys scope.System, id string, state domain.TransactionState) error
	UpdateCustomFieldsFn func(ctx context.Context, sys scope.System, id string, fields map[string]any) error
}

func NewMockOrderTransactionRepository() *MockOrderTransactionRepository {
	return &MockOrderTransactionRepository{transactions: make(map[string]*domain.OrderTransaction)}
}

func (m *MockOrderTransactionRepository) AddTransaction(transaction *domain.OrderTransaction) {
	m.transactions[transaction.ID] = transaction
}

func (m *MockOrderTransactionRepository) FindByID(ctx context.Context, id string) (*domain.OrderTransaction, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if transaction, ok := m.transactions[id]; ok {
		return transaction, nil
	}
	return nil, &domain.DomainError{Code: domain.ErrCodeNotFound, Message: "transaction " + id + " not found"}
}

func (m *MockOrderTransactionRepository) Create(ctx context.Context, sys scope.System, transaction *domain.OrderTransaction) error {
	if !sys.Valid() {
		return errors.New("system scope required")
	}
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sys, transaction)
	}
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockOrderTransactionRepository) UpdateState(ctx context.Context, sys scope.System, id string, state domain.TransactionState) error {
	if !sys.Valid() {
		return errors.New("system scope required")
	}
	if m.UpdateStateFn != nil {
		return m.UpdateStateFn(ctx, sys, id, state)
	}
	if transaction, ok := m.transactions[id]; ok {
		transaction.State = state
	}
	m.StateUpdates = append(m.StateUpdates, id)
	return nil
}

func (m *MockOrderTransactionRepository) UpdateCustomFields(ctx context.Context, sys scope.System, id string, fields map[string]any) error {
	if !sys.Valid() {
		return errors.New("system scope required")
	}
	if m.UpdateCustomFieldsFn != nil {
		return m.UpdateCustomFieldsFn(ctx, sys, id, fields)
	}
	if transaction, ok := m.transactions[id]; ok {
		transaction.CustomFields = fields
	}
	m.CustomFieldsUpdates = append(m.CustomFieldsUpdates, fields)
	return nil
}

// MockPaymentResponseRepository
type MockPaymentResponseRepository struct {
	responses map[string]*domain.PaymentResponse

	Updates int

	FindByOrderIDFn     func(ctx context.Context, orderID string) (*domain.PaymentResponse, error)
	FindByOrderNumberFn func(ctx context.Context, orderNumber string) (*domain.PaymentResponse, error)
	UpdateFn            func(ctx context.Context, response *domain.PaymentResponse) error
}

func NewMockPaymentResponseRepository() *MockPaymentResponseRepository {
	return &MockPaymentResponseRepository{responses: make(map[string]*domain.PaymentResponse)}
}

func (m *MockPaymentResponseRepository) AddResponse(response *domain.PaymentResponse) {
	m.responses[response.ID] = response
}

func (m *MockPaymentResponseRepository) Create(ctx context.Context, response *domain.PaymentResponse) error {
	m.responses[response.ID] = response
	return nil
}

func (m *MockPaymentResponseRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.PaymentResponse, error) {
	if m.FindByOrderIDFn != nil {
		return m.FindByOrderIDFn(ctx, orderID)
	}
	var latest *domain.PaymentResponse
	for _, response := range m.responses {
		if response.OrderID != orderID {
			continue
		}
		if latest == nil || response.CreatedAt.After(latest.CreatedAt) {
			latest = response
		}
	}
	if latest == nil {
		return nil, domain.NewPaymentResponseNotFoundError(orderID)
	}
	return latest, nil
}

func (m *MockPaymentResponseRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PaymentResponse, error) {
	if m.FindByOrderNumberFn != nil {
		return m.FindByOrderNumberFn(ctx, orderNumber)
	}
	var latest *domain.PaymentResponse
	for _, response := range m.responses {
		if response.OrderNumber != orderNumber {
			continue
		}
		if latest == nil || response.CreatedAt.After(latest.CreatedAt) {
			latest = response
		}
	}
	if latest == nil {
		return nil, domain.NewPaymentResponseNotFoundError(orderNumber)
	}
	return latest, nil
}

func (m *MockPaymentResponseRepository) FindStaleNonFinal(ctx context.Context, cutoff time.Time, limit int) ([]*domain.PaymentResponse, error) {
	var stale []*domain.PaymentResponse
	for _, response := range m.responses {
		if response.ResultCode.IsFinal() || !response.UpdatedAt.Before(cutoff) {
			continue
		}
		stale = append(stale, response)
		if len(stale) == limit {
			break
		}
	}
	return stale, nil
}

func (m *MockPaymentResponseRepository) Update(ctx context.Context, response *domain.PaymentResponse) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, response)
	}
	m.responses[response.ID] = response
	m.Updates++
	return nil
}

// MockUnitOfWork hands the closure the same repositories the service already
// uses; transactional boundaries are covered by the integration tests.
type MockUnitOfWork struct {
	orders       *MockOrderRepository
	transactions *MockOrderTransactionRepository
	responses    *MockPaymentResponseRepository
}

func NewMockUnitOfWork(
	orders *MockOrderRepository,
	transactions *MockOrderTransactionRepository,
	responses *MockPaymentResponseRepository,
) *MockUnitOfWork {
	return &MockUnitOfWork{orders: orders, transactions: transactions, responses: responses}
}

func (m *MockUnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos application.Repositories) error) error {
	return fn(ctx, m)
}

func (m *MockUnitOfWork) Orders() application.OrderRepository { return m.orders }

func (m *MockUnitOfWork) OrderTransactions() application.OrderTransactionRepository {
	return m.transactions
}

func (m *MockUnitOfWork) PaymentResponses() application.PaymentResponseRepository {
	return m.responses
}

// MockCheckoutAPI
type MockCheckoutAPI struct {
	PaymentMethodsFn func(ctx context.Context, req checkout.PaymentMethodsRequest) (*checkout.PaymentMethodsResponse, error)
	PaymentDetailsFn func(ctx context.Context, req checkout.DetailsRequest) (*checkout.PaymentDetailsResponse, error)

	DetailsCalls []checkout.DetailsRequest
}

func (m *MockCheckoutAPI) PaymentMethods(ctx context.Context, req checkout.PaymentMethodsRequest) (*checkout.PaymentMethodsResponse, error) {
	if m.PaymentMethodsFn != nil {
		return m.PaymentMethodsFn(ctx, req)
	}
	return &checkout.PaymentMethodsResponse{PaymentMethods: []checkout.PaymentMethod{}}, nil
}

func (m *MockCheckoutAPI) PaymentDetails(ctx context.Context, req checkout.DetailsRequest) (*checkout.PaymentDetailsResponse, error) {
	m.DetailsCalls = append(m.DetailsCalls, req)
	if m.PaymentDetailsFn != nil {
		return m.PaymentDetailsFn(ctx, req)
	}
	return &checkout.PaymentDetailsResponse{ResultCode: "Authorised"}, nil
}
