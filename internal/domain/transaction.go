package domain

import (
	"errors"
	"maps"
	"slices"
	"time"
)

// TransactionState is the technical name of an order-transaction state.
type TransactionState string

const (
	StateOpen       TransactionState = "open"
	StateInProgress TransactionState = "in_progress"
	StateAuthorized TransactionState = "authorized"
	StatePaid       TransactionState = "paid"
	StateFailed     TransactionState = "failed"
	StateCancelled  TransactionState = "cancelled"
	StateRefunded   TransactionState = "refunded"
)

// InitialTransactionState is the state every new transaction starts in.
const InitialTransactionState = StateOpen

// TransitionName is a named edge in the transaction state machine.
type TransitionName string

const (
	TransitionProcess   TransitionName = "process"
	TransitionAuthorize TransitionName = "authorize"
	TransitionPaid      TransitionName = "paid"
	TransitionFail      TransitionName = "fail"
	TransitionCancel    TransitionName = "cancel"
	TransitionRefund    TransitionName = "refund"
	TransitionReopen    TransitionName = "reopen"
)

// transitionTargets maps named edges to their target state.
var transitionTargets = map[TransitionName]TransactionState{
	TransitionProcess:   StateInProgress,
	TransitionAuthorize: StateAuthorized,
	TransitionPaid:      StatePaid,
	TransitionFail:      StateFailed,
	TransitionCancel:    StateCancelled,
	TransitionRefund:    StateRefunded,
	TransitionReopen:    StateOpen,
}

// TargetOf returns the target state of a named transition.
func TargetOf(name TransitionName) (TransactionState, bool) {
	target, ok := transitionTargets[name]
	return target, ok
}

// DonationTokenCustomField is the custom-fields key under which an optional
// charitable donation token is stored on a transaction.
const DonationTokenCustomField = "donationToken"

// OrderTransaction is a single payment attempt for an order. It carries its
// own state-machine state independent of the order's status.
type OrderTransaction struct {
	ID              string
	OrderID         string
	PaymentMethodID string
	State           TransactionState
	Amount          CalculatedPrice
	CustomFields    map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewOrderTransaction(id, orderID, paymentMethodID string, amount CalculatedPrice) (*OrderTransaction, error) {
	if id == "" {
		return nil, errors.New("transaction ID is required")
	}
	if orderID == "" {
		return nil, errors.New("order ID is required")
	}
	if paymentMethodID == "" {
		return nil, errors.New("payment method ID is required")
	}

	return &OrderTransaction{
		ID:              id,
		OrderID:         orderID,
		PaymentMethodID: paymentMethodID,
		State:           InitialTransactionState,
		Amount:          amount,
		CustomFields:    map[string]any{},
		CreatedAt:       time.Now(),
	}, nil
}

func (t *OrderTransaction) MarkInProgress() error {
	return t.transition(StateInProgress)
}

func (t *OrderTransaction) Authorize() error {
	return t.transition(StateAuthorized)
}

func (t *OrderTransaction) MarkPaid() error {
	return t.transition(StatePaid)
}

func (t *OrderTransaction) Fail() error {
	return t.transition(StateFailed)
}

func (t *OrderTransaction) Cancel() error {
	return t.transition(StateCancelled)
}

// Transition applies a named state-machine edge, the way the platform's
// generic state-machine registry would.
func (t *OrderTransaction) Transition(name TransitionName) error {
	target, ok := transitionTargets[name]
	if !ok {
		return NewUnknownTransitionError(name)
	}
	return t.transition(target)
}

func (t *OrderTransaction) transition(target TransactionState) error {
	if err := t.canTransitionTo(target); err != nil {
		return err
	}
	t.State = target
	return nil
}

// defines the edges of the order-transaction state machine
func (t *OrderTransaction) canTransitionTo(target TransactionState) error {
	switch t.State {
	case StateOpen:
		return t.allow(target, StateInProgress, StateAuthorized, StatePaid, StateFailed, StateCancelled)
	case StateInProgress:
		return t.allow(target, StateAuthorized, StatePaid, StateFailed, StateCancelled)
	case StateAuthorized:
		return t.allow(target, StatePaid, StateFailed, StateCancelled)
	case StatePaid:
		return t.allow(target, StateRefunded)
	case StateFailed:
		return t.allow(target, StateCancelled, StateOpen)
	case StateCancelled:
		return t.allow(target, StateOpen)
	}
	return NewInvalidTransitionError(t.State, target)
}

func (t *OrderTransaction) allow(target TransactionState, allowed ...TransactionState) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(t.State, target)
}

func (t *OrderTransaction) IsCancelled() bool {
	return t.State == StateCancelled
}

// MergeCustomFields merges the given fields into the transaction's custom
// fields. Existing keys are preserved unless overwritten by the update, so
// re-applying the same update is idempotent. Returns the merged mapping.
func (t *OrderTransaction) MergeCustomFields(fields map[string]any) map[string]any {
	merged := map[string]any{}
	maps.Copy(merged, t.CustomFields)
	maps.Copy(merged, fields)
	t.CustomFields = merged
	return merged
}

// Reconstitute - Special constructor for loading from DB
func ReconstituteTransaction(
	id, orderID, paymentMethodID string,
	state TransactionState,
	amount CalculatedPrice,
	customFields map[string]any,
	createdAt, updatedAt time.Time,
) *OrderTransaction {
	if customFields == nil {
		customFields = map[string]any{}
	}
	return &OrderTransaction{
		ID:              id,
		OrderID:         orderID,
		PaymentMethodID: paymentMethodID,
		State:           state,
		Amount:          amount,
		CustomFields:    customFields,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
