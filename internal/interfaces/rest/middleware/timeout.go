package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ntzrbtr/adyen-shopware6/internal/interfaces/rest/handlers"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(handlers.APIResponse{
		Error: &handlers.APIError{Code: "TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(next, timeout, string(body))

			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
