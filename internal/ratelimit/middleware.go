package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"campaign/internal/platform/metrics"
	"campaign/pkg/requestcontext"
)

// Middleware limits requests per client IP. Failures of the limiter backend
// fail open: a broken Redis must not take the signup form down with it.
func Middleware(store Store, limit int, window time.Duration, m *metrics.Metrics, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := store.Allow(ctx, ip, limit, window)
			if err != nil {
				log.Warn("rate limiter unavailable, failing open", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				m.IncSignupRateLimitExceeded()
				log.Info("signup rate limited", "ip", ip)
				retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": "Muitas tentativas. Aguarde um momento e tente novamente.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
