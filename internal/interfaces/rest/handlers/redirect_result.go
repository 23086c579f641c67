package handlers

import (
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
)

// HandleRedirectResult processes the provider's redirect back from an
// external payment flow. The provider returns the shopper via GET or, for
// some flows, a form POST; query and body fields are merged. The shopper is
// always redirected somewhere; failures land on the cart rather than an
// error page.
// @Summary      Handle the payment redirect callback
// @Description  Finalizes the payment using the query or form parameters the provider sent with the return, then redirects the shopper to the storefront.
// @Tags         storefront
// @Param        merchantReference  query  string  true   "Order number the payment was created under"
// @Param        redirectResult     query  string  false  "Provider redirect payload"
// @Success      303                "Redirect to the checkout finish page or the cart"
// @Router       /adyen/redirect-result [get]
// @Router       /adyen/redirect-result [post]
func (h *PaymentHandler) HandleRedirectResult(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		// r.Form still carries the query parameters
		h.logger.Warn("unparseable redirect form body", "error", err)
	}
	params := r.Form

	merchantReference := params.Get(services.MerchantReferenceParam)

	details := make(map[string]any, len(params))
	for key, values := range params {
		if key == services.MerchantReferenceParam || len(values) == 0 {
			continue
		}
		details[key] = values[0]
	}

	target := h.redirectService.ProcessResult(r.Context(), merchantReference, details)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
