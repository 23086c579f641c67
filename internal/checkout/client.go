// Package checkout talks to the payment provider's hosted checkout API and
// validates the state data the storefront collects for it.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ntzrbtr/adyen-shopware6/internal/config"
)

// API is the surface of the provider's checkout API used by this service.
type API interface {
	PaymentMethods(ctx context.Context, req PaymentMethodsRequest) (*PaymentMethodsResponse, error)
	PaymentDetails(ctx context.Context, req DetailsRequest) (*PaymentDetailsResponse, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.CheckoutConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPClient) PaymentMethods(ctx context.Context, req PaymentMethodsRequest) (*PaymentMethodsResponse, error) {
	url := fmt.Sprintf("%s/v71/paymentMethods", c.baseURL)
	return sendRequest[PaymentMethodsRequest, PaymentMethodsResponse](c, ctx, url, &req)
}

func (c *HTTPClient) PaymentDetails(ctx context.Context, req DetailsRequest) (*PaymentDetailsResponse, error) {
	url := fmt.Sprintf("%s/v71/payments/details", c.baseURL)
	return sendRequest[DetailsRequest, PaymentDetailsResponse](c, ctx, url, &req)
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, url string, reqBody *Req) (*Resp, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var provErrResp providerErrorResponse
		if err := json.Unmarshal(body, &provErrResp); err != nil {
			return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &ProviderError{
			Code:       provErrResp.ErrorCode,
			Message:    provErrResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var provResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&provResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &provResp, nil
}
