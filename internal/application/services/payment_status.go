package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
)

// PaymentStatus is what polling storefront clients receive. IsFinal stops the
// polling loop; a non-final status may carry the action the shopper still has
// to complete.
type PaymentStatus struct {
	IsFinal    bool           `json:"isFinal"`
	ResultCode string         `json:"resultCode,omitempty"`
	Action     map[string]any `json:"action,omitempty"`
}

// PaymentStatusService reports the current payment status for an order. It
// returns lookup errors honestly; degrading them to a safe final status is
// the HTTP boundary's decision, not this service's.
type PaymentStatusService struct {
	responses application.PaymentResponseRepository
	logger    *slog.Logger
}

func NewPaymentStatusService(responses application.PaymentResponseRepository, logger *slog.Logger) *PaymentStatusService {
	return &PaymentStatusService{
		responses: responses,
		logger:    logger,
	}
}

func (s *PaymentStatusService) Status(ctx context.Context, orderID string) (*PaymentStatus, error) {
	stored, err := s.responses.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("look up payment response for status: %w", err)
	}

	status := &PaymentStatus{
		IsFinal:    stored.ResultCode.IsFinal(),
		ResultCode: string(stored.ResultCode),
	}

	if !status.IsFinal && len(stored.Response) > 0 {
		var payload struct {
			Action map[string]any `json:"action"`
		}
		if err := json.Unmarshal(stored.Response, &payload); err != nil {
			s.logger.Warn("stored payment response is not valid JSON",
				"order_id", orderID,
				"error", err,
			)
		} else {
			status.Action = payload.Action
		}
	}

	return status, nil
}
