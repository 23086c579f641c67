package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

type PaymentDetailsRequest struct {
	OrderID   string         `json:"orderId" validate:"required" example:"018f2a4c6b7d7e8f"`
	StateData map[string]any `json:"stateData"`
}

// HandlePaymentDetails finalizes a payment with the verification details
// collected from the shopper
// @Summary      Submit payment details
// @Description  Completes a pending payment using the shopper's verification details and returns the provider's result.
// @Tags         store-api
// @Accept       json
// @Produce      json
// @Param        sw-sales-channel-id  header    string                 false  "Sales channel the request originates from"
// @Param        request              body      PaymentDetailsRequest  true   "Order reference and collected state data"
// @Success      200                  {object}  services.PaymentOutcome  "Finalization result"
// @Failure      400                  {object}  APIResponse            "Missing or unknown detail fields"
// @Failure      404                  {object}  APIResponse            "No payment response recorded for the order"
// @Failure      500                  {object}  APIResponse            "Provider rejected the finalization"
// @Router       /store-api/adyen/payment-details [post]
func (h *PaymentHandler) HandlePaymentDetails(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req PaymentDetailsRequest
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

	stateData, err := checkout.ValidateStateData(req.StateData)
	if err != nil {
		respondWithError(w, err)
		return
	}

	outcome, err := h.detailsService.Finalize(r.Context(), req.OrderID, stateData, r.Header.Get("sw-sales-channel-id"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithPayload(w, http.StatusOK, outcome)
}
