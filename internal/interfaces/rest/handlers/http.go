package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/ntzrbtr/adyen-shopware6/internal/application/services"
	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
)

type PaymentMethodsService interface {
	GetPaymentMethods(ctx context.Context, session services.SessionContext) *checkout.PaymentMethodsResponse
}

type PaymentDetailsService interface {
	Finalize(ctx context.Context, orderID string, stateData checkout.StateData, salesChannelID string) (*services.PaymentOutcome, error)
}

type PaymentStatusService interface {
	Status(ctx context.Context, orderID string) (*services.PaymentStatus, error)
}

type OrderTransactionService interface {
	SetPaymentMethod(ctx context.Context, paymentMethodID, orderID string) error
	CancelInProgress(ctx context.Context, orderID string) error
}

type RedirectResultService interface {
	ProcessResult(ctx context.Context, merchantReference string, details map[string]any) string
}

type PaymentHandler struct {
	methodsService  PaymentMethodsService
	detailsService  PaymentDetailsService
	statusService   PaymentStatusService
	orderTxnService OrderTransactionService
	redirectService RedirectResultService
	validate        *validator.Validate
	logger          *slog.Logger
}

func NewPaymentHandler(
	methodsService PaymentMethodsService,
	detailsService PaymentDetailsService,
	statusService PaymentStatusService,
	orderTxnService OrderTransactionService,
	redirectService RedirectResultService,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		methodsService:  methodsService,
		detailsService:  detailsService,
		statusService:   statusService,
		orderTxnService: orderTxnService,
		redirectService: redirectService,
		validate:        validator.New(),
		logger:          logger,
	}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /store-api/adyen/payment-methods", h.HandlePaymentMethods)
	mux.HandleFunc("POST /store-api/adyen/payment-details", h.HandlePaymentDetails)
	mux.HandleFunc("POST /store-api/adyen/payment-status", h.HandlePaymentStatus)
	mux.HandleFunc("POST /store-api/adyen/set-payment", h.HandleSetPayment)
	mux.HandleFunc("POST /store-api/adyen/cancel-order-transaction", h.HandleCancelOrderTransaction)
	mux.HandleFunc("GET /adyen/redirect-result", h.HandleRedirectResult)
	mux.HandleFunc("POST /adyen/redirect-result", h.HandleRedirectResult)
}
