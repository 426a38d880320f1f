package cmd

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const headerRequestID = "X-Request-ID"

// requestIDMiddleware tags every request with an X-Request-ID, keeping one
// supplied by the client, and logs the request once served.
func requestIDMiddleware(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(headerRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(headerRequestID, requestID)

			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("http request", "request_id", requestID, "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
		})
	}
}

// rateLimitMiddleware allows rps requests per second per client IP with a
// burst of twice that. A non-positive rps disables limiting.
func rateLimitMiddleware(rps int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limiters := &sync.Map{}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiterInterface, _ := limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rps), rps*2))
			limiter := limiterInterface.(*rate.Limiter)

			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
