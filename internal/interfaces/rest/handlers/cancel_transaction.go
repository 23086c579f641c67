package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

type CancelOrderTransactionRequest struct {
	OrderID string `json:"orderId" validate:"required" example:"018f2a4c6b7d7e8f"`
}

// HandleCancelOrderTransaction cancels the order's in-progress transaction and
// returns the refreshed payment status.
// @Summary      Cancel the in-progress transaction
// @Description  Moves the order's first in-progress transaction to cancelled, typically after the shopper abandons an external payment flow, and reports the order's payment status afterwards.
// @Tags         store-api
// @Accept       json
// @Produce      json
// @Param        request  body      CancelOrderTransactionRequest  true  "Order reference"
// @Success      200      {object}  services.PaymentStatus         "Refreshed payment status"
// @Failure      400      {object}  APIResponse                    "Invalid request parameters"
// @Failure      404      {object}  APIResponse                    "No in-progress transaction on the order"
// @Failure      500      {object}  APIResponse                    "Internal server error"
// @Router       /store-api/adyen/cancel-order-transaction [post]
func (h *PaymentHandler) HandleCancelOrderTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req CancelOrderTransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, &domain.DomainError{
			Code:    domain.ErrCodeValidation,
			Message: err.Error(),
		})
		return
	}

	if err := h.orderTxnService.CancelInProgress(r.Context(), req.OrderID); err != nil {
		respondWithError(w, err)
		return
	}

	status, err := h.statusService.Status(r.Context(), req.OrderID)
	if err != nil {
		h.logger.Error("payment status lookup failed after cancel", "order_id", req.OrderID, "error", err)
		respondWithPayload(w, http.StatusOK, &services.PaymentStatus{IsFinal: true})
		return
	}

	respondWithPayload(w, http.StatusOK, status)
}
