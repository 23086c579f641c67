package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/config"
)

type RetryClient struct {
	inner      API
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner API, cfg config.RetryConfig) API {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

// PaymentMethods with retry logic
func (r *RetryClient) PaymentMethods(ctx context.Context, req PaymentMethodsRequest) (*PaymentMethodsResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*PaymentMethodsResponse, error) {
			return r.inner.PaymentMethods(ctx, req)
		},
	)
}

// PaymentDetails with retry logic
func (r *RetryClient) PaymentDetails(ctx context.Context, req DetailsRequest) (*PaymentDetailsResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*PaymentDetailsResponse, error) {
			return r.inner.PaymentDetails(ctx, req)
		},
	)
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.IsRetryable()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
