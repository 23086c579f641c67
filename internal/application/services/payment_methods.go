package services

import (
	"context"
	"log/slog"

	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/config"
)

// SessionContext carries the sales-channel session attributes the provider
// needs to decide which payment methods to offer.
type SessionContext struct {
	SalesChannelID string
	CountryCode    string
	Locale         string
	Currency       string
	AmountValue    int64
}

// PaymentMethodsService proxies the provider's payment-methods listing for
// the current session.
type PaymentMethodsService struct {
	client          checkout.API
	merchantAccount string
	logger          *slog.Logger
}

func NewPaymentMethodsService(client checkout.API, cfg config.CheckoutConfig, logger *slog.Logger) *PaymentMethodsService {
	return &PaymentMethodsService{
		client:          client,
		merchantAccount: cfg.MerchantAccount,
		logger:          logger,
	}
}

// GetPaymentMethods lists the payment methods available to the session. A
// provider fault degrades to an empty list: the storefront must still render
// the checkout page.
func (s *PaymentMethodsService) GetPaymentMethods(ctx context.Context, session SessionContext) *checkout.PaymentMethodsResponse {
	req := checkout.PaymentMethodsRequest{
		MerchantAccount: s.merchantAccount,
		CountryCode:     session.CountryCode,
		ShopperLocale:   session.Locale,
		Channel:         "Web",
	}
	if session.Currency != "" {
		req.Amount = &checkout.Amount{
			Currency: session.Currency,
			Value:    session.AmountValue,
		}
	}

	resp, err := s.client.PaymentMethods(ctx, req)
	if err != nil {
		s.logger.Warn("payment methods lookup failed, returning empty list",
			"sales_channel_id", session.SalesChannelID,
			"error", err,
		)
		return &checkout.PaymentMethodsResponse{PaymentMethods: []checkout.PaymentMethod{}}
	}

	return resp
}
