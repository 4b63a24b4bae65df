package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/takeshy/reshape/internal/logging"
)

// APIKeyMiddleware wraps an HTTP handler with API key authentication
func APIKeyMiddleware(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check header first
		providedKey := r.Header.Get("X-API-Key")
		if providedKey == "" {
			// Fall back to Authorization header with Bearer token
			providedKey, _ = strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if providedKey == "" {
			// Fall back to query parameter
			providedKey = r.URL.Query().Get("api_key")
		}

		if providedKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			logging.WithContext(r.Context()).Warn("rejected mcp request",
				logging.String("remote", r.RemoteAddr),
				logging.String("path", r.URL.Path))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
