package handlers

import (
	"net/http"
	"strconv"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
)

// HandlePaymentMethods lists the payment methods available to the session
// @Summary      List payment methods
// @Description  Proxies the provider's payment-methods listing for the current session. Always returns 200; a provider outage yields an empty list.
// @Tags         store-api
// @Produce      json
// @Param        sw-sales-channel-id  header    string  false  "Sales channel the request originates from"
// @Param        countryCode          query     string  false  "Shopper country"  example:"NL"
// @Param        locale               query     string  false  "Shopper locale"   example:"nl-NL"
// @Param        currency             query     string  false  "Cart currency"    example:"EUR"
// @Param        amount               query     int     false  "Cart total in minor units"  example:"2599"
// @Success      200                  {object}  checkout.PaymentMethodsResponse
// @Router       /store-api/adyen/payment-methods [get]
func (h *PaymentHandler) HandlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount, _ := strconv.ParseInt(query.Get("amount"), 10, 64)

	session := services.SessionContext{
		SalesChannelID: r.Header.Get("sw-sales-channel-id"),
		CountryCode:    query.Get("countryCode"),
		Locale:         query.Get("locale"),
		Currency:       query.Get("currency"),
		AmountValue:    amount,
	}

	methods := h.methodsService.GetPaymentMethods(r.Context(), session)
	respondWithPayload(w, http.StatusOK, methods)
}
