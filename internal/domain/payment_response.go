package domain

import "time"

// ResultCode is the provider's normalized outcome of a payment or
// payment-details call.
type ResultCode string

const (
	ResultAuthorised       ResultCode = "Authorised"
	ResultRefused          ResultCode = "Refused"
	ResultCancelled        ResultCode = "Cancelled"
	ResultError            ResultCode = "Error"
	ResultReceived         ResultCode = "Received"
	ResultPending          ResultCode = "Pending"
	ResultRedirectShopper  ResultCode = "RedirectShopper"
	ResultIdentifyShopper  ResultCode = "IdentifyShopper"
	ResultChallengeShopper ResultCode = "ChallengeShopper"
	ResultPresentToShopper ResultCode = "PresentToShopper"
)

// IsFinal reports whether the result code ends the payment flow. Non-final
// codes mean the shopper still has an action to complete.
func (c ResultCode) IsFinal() bool {
	switch c {
	case ResultAuthorised, ResultRefused, ResultCancelled, ResultError:
		return true
	default:
		return false
	}
}

// Transition returns the state-machine edge a final result code maps to.
// Non-final codes map to no transition at all.
func (c ResultCode) Transition() (TransitionName, bool) {
	switch c {
	case ResultAuthorised:
		return TransitionPaid, true
	case ResultRefused, ResultError:
		return TransitionFail, true
	case ResultCancelled:
		return TransitionCancel, true
	default:
		return "", false
	}
}

// PaymentResponse associates an order with the last provider payment payload
// and a non-owning back-reference to the transaction it resulted from.
// Rows are created when a payment is initiated and only ever updated.
type PaymentResponse struct {
	ID                 string
	OrderTransactionID string
	OrderID            string
	OrderNumber        string
	ResultCode         ResultCode
	PaymentData        string
	Response           []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
