package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"pickup/pkg/logger"
)

const actorIDHeader = "X-Actor-Id"

// Middleware ограничивает частоту запросов отдельно для каждого клиента:
// ключ - заголовок X-Actor-Id, а без него адрес клиента.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind, key := clientKey(r)
			if rlimiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", handlerPath),
				logger.NewField("client", key),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath, kind).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			_, err := w.Write([]byte(`{"error":"rate_limited","message":"Rate limit exceeded. Try again later."}`))
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

func clientKey(r *http.Request) (kind, key string) {
	if id := r.Header.Get(actorIDHeader); id != "" {
		return clientKindActor, clientKindActor + ":" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return clientKindAddr, clientKindAddr + ":" + host
}
