package services

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/config"
)

// MerchantReferenceParam is the query parameter the provider echoes the order
// number back under on the redirect result.
const MerchantReferenceParam = "merchantReference"

// RedirectResultService consumes the provider's redirect callback: it resolves
// the stored payment data, finalizes the payment and decides where to send the
// shopper. Failures always land on the cart; a completed result lands on the
// order confirmation page.
type RedirectResultService struct {
	responses  application.PaymentResponseRepository
	client     checkout.API
	handler    *PaymentResponseHandler
	cartPath   string
	finishPath string
	logger     *slog.Logger
}

func NewRedirectResultService(
	responses application.PaymentResponseRepository,
	client checkout.API,
	handler *PaymentResponseHandler,
	storefront config.StorefrontConfig,
	logger *slog.Logger,
) *RedirectResultService {
	return &RedirectResultService{
		responses:  responses,
		client:     client,
		handler:    handler,
		cartPath:   storefront.CartPath,
		finishPath: storefront.FinishPath,
		logger:     logger,
	}
}

// ProcessResult handles one redirect callback and returns the storefront path
// to redirect the shopper to. It never returns an error: every failure mode
// maps to the cart.
func (s *RedirectResultService) ProcessResult(
	ctx context.Context,
	merchantReference string,
	details map[string]any,
) string {
	if merchantReference == "" {
		s.logger.Error("redirect result without merchant reference")
		return s.cartPath
	}

	stored, err := s.responses.FindByOrderNumber(ctx, merchantReference)
	if err != nil {
		s.logger.Error("no payment response for redirect result",
			"order_number", merchantReference,
			"error", err,
		)
		return s.cartPath
	}
	if stored.PaymentData == "" {
		s.logger.Error("stored payment response is missing payment data",
			"order_number", merchantReference,
		)
		return s.cartPath
	}

	resp, err := s.client.PaymentDetails(ctx, checkout.DetailsRequest{
		PaymentData: stored.PaymentData,
		Details:     details,
	})
	if err != nil {
		s.logger.Error("provider rejected redirect result details",
			"order_number", merchantReference,
			"error", err,
		)
		return s.cartPath
	}

	if _, err := s.handler.Handle(ctx, stored, resp); err != nil {
		s.logger.Error("failed to reconcile redirect result",
			"order_number", merchantReference,
			"error", err,
		)
		return s.cartPath
	}

	// Failures land on the cart; success lands on the confirmation page.
	return s.finishPath + "?" + url.Values{"orderId": {stored.OrderID}}.Encode()
}
