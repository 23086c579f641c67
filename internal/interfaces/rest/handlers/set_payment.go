package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

type SetPaymentRequest struct {
	OrderID         string `json:"orderId" validate:"required" example:"018f2a4c6b7d7e8f"`
	PaymentMethodID string `json:"paymentMethodId" validate:"required" example:"018f2a4c9c1e4a2b"`
}

// HandleSetPayment switches the order to a new payment method
// @Summary      Set the order's payment method
// @Description  Cancels every open transaction on the order and creates a fresh one for the chosen payment method, priced at the order's current total.
// @Tags         store-api
// @Accept       json
// @Produce      json
// @Param        request  body      SetPaymentRequest  true  "Order and payment method"
// @Success      200      {object}  APIResponse        "Payment method switched"
// @Failure      400      {object}  APIResponse        "Invalid request parameters"
// @Failure      404      {object}  APIResponse        "Order not found"
// @Failure      500      {object}  APIResponse        "Internal server error"
// @Router       /store-api/adyen/set-payment [post]
func (h *PaymentHandler) HandleSetPayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req SetPaymentRequest
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

	if err := h.orderTxnService.SetPaymentMethod(r.Context(), req.PaymentMethodID, req.OrderID); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, nil)
}
