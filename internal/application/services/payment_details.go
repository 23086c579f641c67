package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

// PaymentDetailsService finalizes a previously-initiated payment with the
// verification details collected by the storefront.
type PaymentDetailsService struct {
	responses application.PaymentResponseRepository
	client    checkout.API
	handler   *PaymentResponseHandler
	logger    *slog.Logger
}

func NewPaymentDetailsService(
	responses application.PaymentResponseRepository,
	client checkout.API,
	handler *PaymentResponseHandler,
	logger *slog.Logger,
) *PaymentDetailsService {
	return &PaymentDetailsService{
		responses: responses,
		client:    client,
		handler:   handler,
		logger:    logger,
	}
}

// Finalize completes the payment for the order using the validated state
// data. The caller surfaces not-found as 404, missing details as 400 and
// finalization failure as 500; the provider's own error detail is logged here
// and never echoed to the client.
func (s *PaymentDetailsService) Finalize(
	ctx context.Context,
	orderID string,
	stateData checkout.StateData,
	salesChannelID string,
) (*PaymentOutcome, error) {
	stored, err := s.responses.FindByOrderID(ctx, orderID)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("look up payment response: %w", err)
	}

	details := stateData.Details()
	if len(details) == 0 {
		return nil, domain.NewMissingDetailsError()
	}

	paymentData := stateData.PaymentData()
	if paymentData == "" {
		paymentData = stored.PaymentData
	}

	resp, err := s.client.PaymentDetails(ctx, checkout.DetailsRequest{
		PaymentData: paymentData,
		Details:     details,
	})
	if err != nil {
		s.logger.Error("provider rejected payment details",
			"order_id", orderID,
			"error", err,
		)
		return nil, domain.NewFinalizationFailedError(err)
	}

	outcome, err := s.handler.Handle(ctx, stored, resp)
	if err != nil {
		return nil, err
	}

	if outcome.DonationToken != "" {
		if err := s.handler.reconciler.ApplyDonationToken(
			ctx,
			stored.OrderTransactionID,
			outcome.DonationToken,
			salesChannelID,
		); err != nil {
			// The payment itself succeeded; losing the donation token must
			// not fail the checkout.
			s.logger.Error("failed to store donation token",
				"order_id", orderID,
				"transaction_id", stored.OrderTransactionID,
				"error", err,
			)
		}
	}

	return outcome, nil
}
