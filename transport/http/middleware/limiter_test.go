package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	metricsMocks "hotelbook/infras/metrics/mocks"
	otelMocks "hotelbook/infras/otel/mocks"
	cacheMocks "hotelbook/shared/cache/mocks"
	"hotelbook/shared/constant"
	"hotelbook/transport/http/middleware"
)

func limitedHandler(t *testing.T, maxRequests int) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), metricsMocks.NewMetrics(), cfg, redisCache)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	return app.RateLimit(ok), redisCache
}

func request(forwardedFor string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, forwardedFor)
	req.Header.Set(constant.RequestHeaderUserAgent, "frontdesk/1.0")

	return req
}

func TestRateLimit_Window(t *testing.T) {
	tests := []struct {
		name      string
		count     int64
		code      int
		remaining string
	}{
		{name: "first request", count: 1, code: http.StatusOK, remaining: "2"},
		{name: "last allowed", count: 3, code: http.StatusOK, remaining: "0"},
		{name: "over the limit", count: 4, code: http.StatusTooManyRequests, remaining: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, redisCache := limitedHandler(t, 3)

			redisCache.EXPECT().
				Incr(gomock.Any(), "limiter:10.0.0.7:frontdesk/1.0", time.Minute).
				Return(tt.count, nil)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, request("10.0.0.7, 172.16.0.1"))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "3", rec.Header().Get(constant.RequestHeaderRateLimit))
			assert.Equal(t, tt.remaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
			assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
		})
	}
}

func TestRateLimit_FallsBackWhenCacheIsDown(t *testing.T) {
	handler, redisCache := limitedHandler(t, 2)

	redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("connection refused")).
		AnyTimes()

	codes := make([]int, 0, 3)

	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request("10.0.0.8"))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// buckets are per client
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request("10.0.0.9"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	handler, _ := limitedHandler(t, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request("10.0.0.7"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
}
