package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

// toDomainTransaction: maps db model to domain entity
func toDomainTransaction(m OrderTransactionModel) (*domain.OrderTransaction, error) {
	var amount domain.CalculatedPrice
	if err := json.Unmarshal(m.Amount, &amount); err != nil {
		return nil, fmt.Errorf("decode transaction amount: %w", err)
	}

	customFields := map[string]any{}
	if len(m.CustomFields) > 0 {
		if err := json.Unmarshal(m.CustomFields, &customFields); err != nil {
			return nil, fmt.Errorf("decode transaction custom fields: %w", err)
		}
	}

	return domain.ReconstituteTransaction(
		m.ID,
		m.OrderID,
		m.PaymentMethodID,
		domain.TransactionState(m.State),
		amount,
		customFields,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// toTransactionModel: maps domain entity to db model
func toTransactionModel(t *domain.OrderTransaction) (*OrderTransactionModel, error) {
	amount, err := json.Marshal(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("encode transaction amount: %w", err)
	}

	customFields, err := json.Marshal(t.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("encode transaction custom fields: %w", err)
	}

	return &OrderTransactionModel{
		ID:              t.ID,
		OrderID:         t.OrderID,
		PaymentMethodID: t.PaymentMethodID,
		State:           string(t.State),
		Amount:          amount,
		CustomFields:    customFields,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}, nil
}

func toDomainOrder(m OrderModel, transactions []*domain.OrderTransaction) (*domain.Order, error) {
	var price domain.CalculatedPrice
	if err := json.Unmarshal(m.Price, &price); err != nil {
		return nil, fmt.Errorf("decode order price: %w", err)
	}

	return &domain.Order{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		SalesChannelID: m.SalesChannelID,
		Price:          price,
		Transactions:   transactions,
	}, nil
}

func toDomainPaymentResponse(m PaymentResponseModel) *domain.PaymentResponse {
	return &domain.PaymentResponse{
		ID:                 m.ID,
		OrderTransactionID: m.OrderTransactionID,
		OrderID:            m.OrderID,
		OrderNumber:        m.OrderNumber,
		ResultCode:         domain.ResultCode(m.ResultCode),
		PaymentData:        m.PaymentData,
		Response:           m.Response,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
