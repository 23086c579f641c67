package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ntzrbtr/adyen-shopware6/internal/application"
	"github.com/ntzrbtr/adyen-shopware6/internal/config"
	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
	"github.com/ntzrbtr/adyen-shopware6/internal/scope"
)

// OrderTransactionService mutates order transactions: payment-method changes,
// cancellation of the in-progress attempt, outcome reconciliation and donation
// token storage. Every mutation runs under an explicit system scope.
type OrderTransactionService struct {
	uow          application.UnitOfWork
	transactions application.OrderTransactionRepository
	giving       config.GivingConfig
	logger       *slog.Logger
}

func NewOrderTransactionService(
	uow application.UnitOfWork,
	transactions application.OrderTransactionRepository,
	giving config.GivingConfig,
	logger *slog.Logger,
) *OrderTransactionService {
	return &OrderTransactionService{
		uow:          uow,
		transactions: transactions,
		giving:       giving,
		logger:       logger,
	}
}

// ApplyDonationToken stores the donation token in the transaction's custom
// fields. No-op unless the giving feature is enabled for the sales channel.
// Re-applying the same token leaves the stored fields unchanged.
func (s *OrderTransactionService) ApplyDonationToken(
	ctx context.Context,
	transactionID, token, salesChannelID string,
) error {
	if token == "" || !s.giving.EnabledFor(salesChannelID) {
		return nil
	}

	transaction, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("load transaction for donation token: %w", err)
	}

	merged := transaction.MergeCustomFields(map[string]any{
		domain.DonationTokenCustomField: token,
	})

	sys := scope.Elevate()
	if err := s.transactions.UpdateCustomFields(ctx, sys, transactionID, merged); err != nil {
		return fmt.Errorf("persist donation token: %w", err)
	}

	s.logger.Info("stored donation token on transaction",
		"transaction_id", transactionID,
		"sales_channel_id", salesChannelID,
	)
	return nil
}

// SetPaymentMethod cancels every non-cancelled transaction of the order and
// creates one fresh transaction for the new payment method, with an amount
// re-derived from the order's current total. Cancel-then-create runs in a
// single database transaction; the order row lock serializes concurrent
// payment-method changes for the same order.
func (s *OrderTransactionService) SetPaymentMethod(ctx context.Context, paymentMethodID, orderID string) error {
	sys := scope.Elevate()

	return s.uow.WithTransaction(ctx, func(ctx context.Context, repos application.Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		for _, transaction := range order.Transactions {
			if transaction.IsCancelled() {
				continue
			}
			if err := transaction.Cancel(); err != nil {
				// An uncancellable transaction means corrupted state data,
				// not a user mistake.
				s.logger.Error("cannot cancel transaction during payment method change",
					"order_id", orderID,
					"transaction_id", transaction.ID,
					"state", string(transaction.State),
					"error", err,
				)
				return err
			}
			if err := repos.OrderTransactions().UpdateState(ctx, sys, transaction.ID, transaction.State); err != nil {
				return fmt.Errorf("persist cancelled transaction %s: %w", transaction.ID, err)
			}
		}

		transaction, err := domain.NewOrderTransaction(
			uuid.New().String(),
			orderID,
			paymentMethodID,
			order.TransactionAmount(),
		)
		if err != nil {
			return err
		}

		if err := repos.OrderTransactions().Create(ctx, sys, transaction); err != nil {
			return fmt.Errorf("create transaction for new payment method: %w", err)
		}

		s.logger.Info("payment method changed",
			"order_id", orderID,
			"payment_method_id", paymentMethodID,
			"transaction_id", transaction.ID,
		)
		return nil
	})
}

// CancelInProgress cancels the order's in-progress transaction. When no
// transaction is in progress this fails deterministically with a not-found
// error rather than guessing at intent.
func (s *OrderTransactionService) CancelInProgress(ctx context.Context, orderID string) error {
	sys := scope.Elevate()

	return s.uow.WithTransaction(ctx, func(ctx context.Context, repos application.Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		transaction := order.FirstTransactionInState(domain.StateInProgress)
		if transaction == nil {
			return domain.NewTransactionNotFoundError(orderID, domain.StateInProgress)
		}

		if err := transaction.Transition(domain.TransitionCancel); err != nil {
			return err
		}

		return repos.OrderTransactions().UpdateState(ctx, sys, transaction.ID, transaction.State)
	})
}

// ApplyOutcome transitions a transaction according to a final provider result
// code. Non-final codes and already-applied outcomes are no-ops, so repeated
// finalization of the same payment does not mutate anything.
func (s *OrderTransactionService) ApplyOutcome(
	ctx context.Context,
	transactionID string,
	resultCode domain.ResultCode,
) error {
	name, ok := resultCode.Transition()
	if !ok {
		return nil
	}

	transaction, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("load transaction for outcome: %w", err)
	}

	// Outcome already applied; repeated finalization must not mutate.
	if target, ok := domain.TargetOf(name); ok && transaction.State == target {
		return nil
	}

	if err := transaction.Transition(name); err != nil {
		return err
	}

	sys := scope.Elevate()
	return s.transactions.UpdateState(ctx, sys, transactionID, transaction.State)
}
