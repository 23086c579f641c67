// Package worker runs the background maintenance loops of the service.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
	"github.com/ntzrbtr/adyen-shopware6/internal/scope"
)

// ResponseSweeper fails payments stuck in a non-final result code. A shopper
// who abandons a redirect or 3DS challenge leaves the stored response in
// RedirectShopper or Pending forever; the sweeper moves the order transaction
// to failed and stamps the response so the order can be paid again.
type ResponseSweeper struct {
	responses    application.PaymentResponseRepository
	transactions application.OrderTransactionRepository
	interval     time.Duration
	sweepAge     time.Duration
	batchSize    int
	logger       *slog.Logger
}

func NewResponseSweeper(
	responses application.PaymentResponseRepository,
	transactions application.OrderTransactionRepository,
	interval time.Duration,
	sweepAge time.Duration,
	batchSize int,
	logger *slog.Logger,
) *ResponseSweeper {
	return &ResponseSweeper{
		responses:    responses,
		transactions: transactions,
		interval:     interval,
		sweepAge:     sweepAge,
		batchSize:    batchSize,
		logger:       logger,
	}
}

func (w *ResponseSweeper) Start(ctx context.Context) {
	w.logger.Info("response sweeper started", "interval", w.interval, "sweep_age", w.sweepAge)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.processStaleResponses(ctx); err != nil {
		w.logger.Error("stale response processing failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("response sweeper stopping")
			return
		case <-ticker.C:
			if err := w.processStaleResponses(ctx); err != nil {
				w.logger.Error("stale response processing failed", "error", err)
			}
		}
	}
}

func (w *ResponseSweeper) processStaleResponses(ctx context.Context) error {
	cutoff := time.Now().Add(-w.sweepAge)

	stale, err := w.responses.FindStaleNonFinal(ctx, cutoff, w.batchSize)
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	var processed, swept int

	for _, response := range stale {
		if err := w.sweepResponse(ctx, response); err != nil {
			w.logger.Error("failed to sweep stale response",
				"response_id", response.ID,
				"order_id", response.OrderID,
				"error", err)
		} else {
			swept++
		}
		processed++
	}

	w.logger.Info("processed stale responses",
		"processed", processed,
		"swept", swept)

	return nil
}

func (w *ResponseSweeper) sweepResponse(ctx context.Context, response *domain.PaymentResponse) error {
	transaction, err := w.transactions.FindByID(ctx, response.OrderTransactionID)
	if err != nil {
		return err
	}

	// A transaction that already settled out of band (cancelled through the
	// cancel endpoint, or failed on an earlier pass) has no fail edge left.
	// The response still gets stamped so it is not selected again.
	if err := transaction.Fail(); err == nil {
		if err := w.transactions.UpdateState(ctx, scope.Elevate(), transaction.ID, transaction.State); err != nil {
			return err
		}
	} else {
		w.logger.Info("transaction already settled, stamping response only",
			"transaction_id", transaction.ID,
			"state", transaction.State)
	}

	response.ResultCode = domain.ResultError
	return w.responses.Update(ctx, response)
}
