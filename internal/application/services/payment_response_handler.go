// Package services implements the payment orchestration behind the store API:
// payment-methods lookup, payment-details finalization, status polling,
// order-transaction mutation and redirect-result handling.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

// PaymentOutcome is the normalized provider result returned to the storefront.
// The donation token never leaves the service layer.
type PaymentOutcome struct {
	ResultCode    string         `json:"resultCode"`
	IsFinal       bool           `json:"isFinal"`
	PspReference  string         `json:"pspReference,omitempty"`
	RefusalReason string         `json:"refusalReason,omitempty"`
	Action        map[string]any `json:"action,omitempty"`
	DonationToken string         `json:"-"`
}

// PaymentResponseHandler normalizes a provider response, persists it on the
// stored payment-response row and reconciles the order transaction's state
// with the outcome.
type PaymentResponseHandler struct {
	responses  application.PaymentResponseRepository
	reconciler *OrderTransactionService
	logger     *slog.Logger
}

func NewPaymentResponseHandler(
	responses application.PaymentResponseRepository,
	reconciler *OrderTransactionService,
	logger *slog.Logger,
) *PaymentResponseHandler {
	return &PaymentResponseHandler{
		responses:  responses,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Handle applies a provider payment-details response to the stored
// payment-response row and its order transaction.
func (h *PaymentResponseHandler) Handle(
	ctx context.Context,
	stored *domain.PaymentResponse,
	resp *checkout.PaymentDetailsResponse,
) (*PaymentOutcome, error) {
	resultCode := domain.ResultCode(resp.ResultCode)

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal provider response: %w", err)
	}

	stored.ResultCode = resultCode
	stored.Response = raw
	if resp.PaymentData != "" {
		stored.PaymentData = resp.PaymentData
	}
	if err := h.responses.Update(ctx, stored); err != nil {
		return nil, fmt.Errorf("update payment response: %w", err)
	}

	if err := h.reconciler.ApplyOutcome(ctx, stored.OrderTransactionID, resultCode); err != nil {
		h.logger.Error("failed to reconcile transaction with provider outcome",
			"transaction_id", stored.OrderTransactionID,
			"result_code", resp.ResultCode,
			"error", err,
		)
		return nil, err
	}

	return &PaymentOutcome{
		ResultCode:    resp.ResultCode,
		IsFinal:       resultCode.IsFinal(),
		PspReference:  resp.PspReference,
		RefusalReason: resp.RefusalReason,
		Action:        resp.Action,
		DonationToken: resp.DonationToken,
	}, nil
}
