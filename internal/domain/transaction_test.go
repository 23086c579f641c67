package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

func createTestTransaction(t *testing.T, state domain.TransactionState) *domain.OrderTransaction {
	t.Helper()

	txn, err := domain.NewOrderTransaction("txn-123", "order-456", "pm-789", domain.CalculatedPrice{
		UnitPrice:  25.99,
		TotalPrice: 25.99,
	})
	require.NoError(t, err)

	txn.State = state
	return txn
}

func TestNewOrderTransaction(t *testing.T) {
	t.Run("creates transaction successfully", func(t *testing.T) {
		txn, err := domain.NewOrderTransaction("txn-123", "order-456", "pm-789", domain.CalculatedPrice{
			TotalPrice: 25.99,
		})

		require.NoError(t, err)
		assert.Equal(t, "txn-123", txn.ID)
		assert.Equal(t, "order-456", txn.OrderID)
		assert.Equal(t, "pm-789", txn.PaymentMethodID)
		assert.Equal(t, domain.StateOpen, txn.State)
		assert.NotNil(t, txn.CustomFields)
		assert.NotZero(t, txn.CreatedAt)
	})

	t.Run("rejects empty transaction ID", func(t *testing.T) {
		_, err := domain.NewOrderTransaction("", "order-456", "pm-789", domain.CalculatedPrice{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "transaction ID is required")
	})

	t.Run("rejects empty order ID", func(t *testing.T) {
		_, err := domain.NewOrderTransaction("txn-123", "", "pm-789", domain.CalculatedPrice{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order ID is required")
	})

	t.Run("rejects empty payment method ID", func(t *testing.T) {
		_, err := domain.NewOrderTransaction("txn-123", "order-456", "", domain.CalculatedPrice{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "payment method ID is required")
	})
}

func TestOrderTransaction_StateTransitions(t *testing.T) {
	allowed := []struct {
		from domain.TransactionState
		to   domain.TransactionState
	}{
		{domain.StateOpen, domain.StateInProgress},
		{domain.StateOpen, domain.StateAuthorized},
		{domain.StateOpen, domain.StatePaid},
		{domain.StateOpen, domain.StateFailed},
		{domain.StateOpen, domain.StateCancelled},
		{domain.StateInProgress, domain.StateAuthorized},
		{domain.StateInProgress, domain.StatePaid},
		{domain.StateInProgress, domain.StateFailed},
		{domain.StateInProgress, domain.StateCancelled},
		{domain.StateAuthorized, domain.StatePaid},
		{domain.StateAuthorized, domain.StateFailed},
		{domain.StateAuthorized, domain.StateCancelled},
		{domain.StatePaid, domain.StateRefunded},
		{domain.StateFailed, domain.StateCancelled},
		{domain.StateFailed, domain.StateOpen},
		{domain.StateCancelled, domain.StateOpen},
	}

	for _, tc := range allowed {
		t.Run(string(tc.from)+" -> "+string(tc.to), func(t *testing.T) {
			txn := createTestTransaction(t, tc.from)

			err := txn.Transition(transitionTo(t, tc.to))

			require.NoError(t, err)
			assert.Equal(t, tc.to, txn.State)
		})
	}

	forbidden := []struct {
		from domain.TransactionState
		to   domain.TransactionState
	}{
		{domain.StatePaid, domain.StateOpen},
		{domain.StatePaid, domain.StateCancelled},
		{domain.StateRefunded, domain.StatePaid},
		{domain.StateCancelled, domain.StatePaid},
		{domain.StateFailed, domain.StatePaid},
	}

	for _, tc := range forbidden {
		t.Run(string(tc.from)+" -/-> "+string(tc.to), func(t *testing.T) {
			txn := createTestTransaction(t, tc.from)

			err := txn.Transition(transitionTo(t, tc.to))

			assert.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
			assert.Equal(t, tc.from, txn.State, "state must not change on a rejected transition")
		})
	}

	t.Run("rejects unknown transition name", func(t *testing.T) {
		txn := createTestTransaction(t, domain.StateOpen)

		err := txn.Transition("explode")

		assert.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
	})
}

// transitionTo finds the named edge landing on the target state.
func transitionTo(t *testing.T, target domain.TransactionState) domain.TransitionName {
	t.Helper()

	names := []domain.TransitionName{
		domain.TransitionProcess,
		domain.TransitionAuthorize,
		domain.TransitionPaid,
		domain.TransitionFail,
		domain.TransitionCancel,
		domain.TransitionRefund,
		domain.TransitionReopen,
	}
	for _, name := range names {
		if got, ok := domain.TargetOf(name); ok && got == target {
			return name
		}
	}
	t.Fatalf("no transition targets state %s", target)
	return ""
}

func TestOrderTransaction_MergeCustomFields(t *testing.T) {
	t.Run("merges into empty fields", func(t *testing.T) {
		txn := createTestTransaction(t, domain.StateOpen)

		merged := txn.MergeCustomFields(map[string]any{domain.DonationTokenCustomField: "tok-1"})

		assert.Equal(t, map[string]any{domain.DonationTokenCustomField: "tok-1"}, merged)
		assert.Equal(t, merged, txn.CustomFields)
	})

	t.Run("preserves unrelated keys", func(t *testing.T) {
		txn := createTestTransaction(t, domain.StateOpen)
		txn.CustomFields = map[string]any{"existing": "value"}

		merged := txn.MergeCustomFields(map[string]any{domain.DonationTokenCustomField: "tok-1"})

		assert.Equal(t, "value", merged["existing"])
		assert.Equal(t, "tok-1", merged[domain.DonationTokenCustomField])
	})

	t.Run("re-applying the same update is idempotent", func(t *testing.T) {
		txn := createTestTransaction(t, domain.StateOpen)

		first := txn.MergeCustomFields(map[string]any{domain.DonationTokenCustomField: "tok-1"})
		second := txn.MergeCustomFields(map[string]any{domain.DonationTokenCustomField: "tok-1"})

		assert.Equal(t, first, second)
	})
}

func TestOrder_TransactionAmount(t *testing.T) {
	order := &domain.Order{
		ID: "order-456",
		Price: domain.CalculatedPrice{
			UnitPrice:  10.00,
			TotalPrice: 25.99,
			CalculatedTaxes: []domain.CalculatedTax{
				{Rate: 19, Tax: 4.15, Price: 25.99},
			},
			TaxRules: []domain.TaxRule{
				{Rate: 19, Percentage: 100},
			},
		},
	}

	amount := order.TransactionAmount()

	assert.Equal(t, 25.99, amount.UnitPrice, "unit price follows the order total")
	assert.Equal(t, 25.99, amount.TotalPrice)
	assert.Equal(t, order.Price.CalculatedTaxes, amount.CalculatedTaxes)
	assert.Equal(t, order.Price.TaxRules, amount.TaxRules)

	amount.CalculatedTaxes[0].Tax = 0
	assert.Equal(t, 4.15, order.Price.CalculatedTaxes[0].Tax, "amount must not alias the order's tax slices")
}

func TestOrder_FirstTransactionInState(t *testing.T) {
	first := createTestTransaction(t, domain.StateInProgress)
	first.ID = "txn-1"
	second := createTestTransaction(t, domain.StateInProgress)
	second.ID = "txn-2"

	order := &domain.Order{
		ID:           "order-456",
		Transactions: []*domain.OrderTransaction{first, second},
	}

	t.Run("returns first match in creation order", func(t *testing.T) {
		got := order.FirstTransactionInState(domain.StateInProgress)

		require.NotNil(t, got)
		assert.Equal(t, "txn-1", got.ID)
	})

	t.Run("returns nil when no transaction matches", func(t *testing.T) {
		assert.Nil(t, order.FirstTransactionInState(domain.StatePaid))
	})
}
