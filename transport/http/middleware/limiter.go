package middleware

import (
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client in a fixed Redis window. When Redis cannot be
// reached it falls back to an in-process token bucket with the same average rate.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		limits := a.config.App.RateLimiter
		if !limits.Enable || limits.MaxRequests <= 0 || limits.WindowSeconds <= 0 {
			next.ServeHTTP(writer, request)

			return
		}

		client := shared.BuildCacheKey(clientIP(request), userAgent(request))
		window := time.Duration(limits.WindowSeconds) * time.Second

		count, err := a.cache.Incr(request.Context(), shared.BuildCacheKey(cacheKeyRateLimit, client), window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter falling back to in-process buckets")

			if !a.fallbackLimiter(client).Allow() {
				response.WithRequestLimitExceeded(writer)

				return
			}

			next.ServeHTTP(writer, request)

			return
		}

		writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
		writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limits.MaxRequests)-count), 10))
		writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

		if count > int64(limits.MaxRequests) {
			response.WithRequestLimitExceeded(writer)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (a *appMiddleware) fallbackLimiter(client string) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	limiter, ok := a.limiters[client]
	if !ok {
		limits := a.config.App.RateLimiter
		every := time.Duration(limits.WindowSeconds) * time.Second / time.Duration(limits.MaxRequests)
		limiter = rate.NewLimiter(rate.Every(every), limits.MaxRequests)
		a.limiters[client] = limiter
	}

	return limiter
}

func userAgent(request *http.Request) string {
	ua := request.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return ua
}

func clientIP(request *http.Request) string {
	// X-Forwarded-For can carry a chain; the first hop is the client
	if xff := request.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := request.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
