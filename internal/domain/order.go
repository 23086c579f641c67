// Package domain encodes the order, order-transaction and payment-response
// entities and the transaction state machine that ties them together.
package domain

// CalculatedTax is one slice of the order total attributed to a tax rate.
type CalculatedTax struct {
	Rate  float64 `json:"rate"`
	Tax   float64 `json:"tax"`
	Price float64 `json:"price"`
}

// TaxRule describes how a tax rate applies to the order total.
type TaxRule struct {
	Rate       float64 `json:"rate"`
	Percentage float64 `json:"percentage"`
}

// CalculatedPrice mirrors the platform's price struct: a total with its tax breakdown.
type CalculatedPrice struct {
	UnitPrice       float64         `json:"unitPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	CalculatedTaxes []CalculatedTax `json:"calculatedTaxes"`
	TaxRules        []TaxRule       `json:"taxRules"`
}

type Order struct {
	ID             string
	OrderNumber    string
	SalesChannelID string
	Price          CalculatedPrice
	Transactions   []*OrderTransaction
}

// TransactionAmount re-derives the amount for a new transaction from the
// order's current total. A payment-method change must never reuse the old
// transaction's amount; the order total may have changed since.
func (o *Order) TransactionAmount() CalculatedPrice {
	taxes := make([]CalculatedTax, len(o.Price.CalculatedTaxes))
	copy(taxes, o.Price.CalculatedTaxes)
	rules := make([]TaxRule, len(o.Price.TaxRules))
	copy(rules, o.Price.TaxRules)

	return CalculatedPrice{
		UnitPrice:       o.Price.TotalPrice,
		TotalPrice:      o.Price.TotalPrice,
		CalculatedTaxes: taxes,
		TaxRules:        rules,
	}
}

// FirstTransactionInState returns the first transaction in the given state,
// or nil. Order of Transactions follows creation order; if more than one
// transaction is in the state the first match wins.
func (o *Order) FirstTransactionInState(state TransactionState) *OrderTransaction {
	for _, t := range o.Transactions {
		if t.State == state {
			return t
		}
	}
	return nil
}
