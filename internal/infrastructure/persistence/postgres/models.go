package postgres

import (
	"time"
)

type OrderModel struct {
	ID             string
	OrderNumber    string
	SalesChannelID string
	Price          []byte
	CreatedAt      time.Time
}

type OrderTransactionModel struct {
	ID              string
	OrderID         string
	PaymentMethodID string
	State           string
	Amount          []byte
	CustomFields    []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PaymentResponseModel struct {
	ID                 string
	OrderTransactionID string
	OrderID            string
	OrderNumber        string
	ResultCode         string
	PaymentData        string
	Response           []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
