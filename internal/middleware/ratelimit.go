package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/legalia/intake-api/internal/ratelimit"
	"github.com/legalia/intake-api/internal/request"
	"go.uber.org/zap"
)

// rateLimitResponse is the body returned on a rejected request
type rateLimitResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after_seconds"`
	Timestamp  string `json:"timestamp"`
}

// RateLimit gates requests through the given limiter, keyed by client IP.
// Limit metadata headers are set on every response, admitted or not.
// Rejections are expected traffic shaping, not system faults, so they are
// logged at debug level only.
func RateLimit(limiter *ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			clientID := request.ClientIP(r)
			decision := limiter.Admit(clientID, now)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))

			if !decision.Allowed {
				retryAfter := decision.RetryAfterSeconds(now)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				logger.Debug("rate_limit_exceeded",
					zap.String("client_ip", clientID),
					zap.String("path", r.URL.Path),
					zap.Int("retry_after_seconds", retryAfter),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				response := rateLimitResponse{
					Success:    false,
					Error:      "Too Many Requests",
					Message:    "Rate limit exceeded, please retry in " + strconv.Itoa(retryAfter) + " seconds",
					RetryAfter: retryAfter,
					Timestamp:  time.Now().UTC().Format(time.RFC3339),
				}
				if err := json.NewEncoder(w).Encode(response); err != nil {
					logger.Error("failed_to_encode_rate_limit_response", zap.Error(err))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
