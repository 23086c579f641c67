package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntzrbtr/adyen-shopware6/internal/checkout"
	"github.com/ntzrbtr/adyen-shopware6/internal/config"
)

func newTestClient(serverURL string) *checkout.HTTPClient {
	return checkout.NewClient(config.CheckoutConfig{
		BaseURL:     serverURL,
		APIKey:      "test-key",
		ConnTimeout: 5 * time.Second,
	})
}

func TestHTTPClient_PaymentDetails(t *testing.T) {
	t.Run("sends the request with the API key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v71/payments/details", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req checkout.DetailsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "blob", req.PaymentData)

			_ = json.NewEncoder(w).Encode(checkout.PaymentDetailsResponse{
				ResultCode:   "Authorised",
				PspReference: "psp-883",
			})
		}))
		defer server.Close()

		resp, err := newTestClient(server.URL).PaymentDetails(context.Background(), checkout.DetailsRequest{
			PaymentData: "blob",
			Details:     map[string]any{"redirectResult": "payload"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Authorised", resp.ResultCode)
		assert.Equal(t, "psp-883", resp.PspReference)
	})

	t.Run("surfaces provider errors with their status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errorCode":"171","message":"Unable to parse JSON"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).PaymentDetails(context.Background(), checkout.DetailsRequest{})

		require.Error(t, err)
		var provErr *checkout.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusUnprocessableEntity, provErr.StatusCode)
		assert.False(t, provErr.IsRetryable())
	})

	t.Run("marks 5xx errors retryable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"errorCode":"unavailable","message":"try later"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).PaymentDetails(context.Background(), checkout.DetailsRequest{})

		require.Error(t, err)
		var provErr *checkout.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.True(t, provErr.IsRetryable())
	})
}

func TestHTTPClient_PaymentMethods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v71/paymentMethods", r.URL.Path)

		var req checkout.PaymentMethodsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "TestMerchant", req.MerchantAccount)

		_ = json.NewEncoder(w).Encode(checkout.PaymentMethodsResponse{
			PaymentMethods: []checkout.PaymentMethod{
				{Name: "Cards", Type: "scheme", Brands: []string{"visa", "mc"}},
				{Name: "iDEAL", Type: "ideal"},
			},
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).PaymentMethods(context.Background(), checkout.PaymentMethodsRequest{
		MerchantAccount: "TestMerchant",
	})

	require.NoError(t, err)
	require.Len(t, resp.PaymentMethods, 2)
	assert.Equal(t, "scheme", resp.PaymentMethods[0].Type)
}
