package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

type PaymentStatusRequest struct {
	OrderID string `json:"orderId" validate:"required" example:"018f2a4c6b7d7e8f"`
}

// HandlePaymentStatus reports the current payment status for a polling
// storefront. Lookup failures degrade to a final status so the client's
// polling loop always terminates; only a missing orderId is a client error.
// @Summary      Poll payment status
// @Description  Returns whether the payment reached a final state, plus any action the shopper still has to complete.
// @Tags         store-api
// @Accept       json
// @Produce      json
// @Param        request  body      PaymentStatusRequest    true  "Order reference"
// @Success      200      {object}  services.PaymentStatus  "Current status"
// @Failure      400      {object}  APIResponse             "Missing order reference"
// @Router       /store-api/adyen/payment-status [post]
func (h *PaymentHandler) HandlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req PaymentStatusRequest
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

	status, err := h.statusService.Status(r.Context(), req.OrderID)
	if err != nil {
		h.logger.Error("payment status lookup failed", "orderId", req.OrderID, "error", err)
		respondWithPayload(w, http.StatusOK, &services.PaymentStatus{IsFinal: true})
		return
	}

	respondWithPayload(w, http.StatusOK, status)
}
