package mocks

import (
	"hotelbook/infras/metrics"
	"net/http"
	"time"
)

type metricsImpl struct {
}

// ObserveHTTP implements metrics.Metrics.
func (m *metricsImpl) ObserveHTTP(_, _ string, _ int, _ time.Duration) {

}

// ObserveOperation implements metrics.Metrics.
func (m *metricsImpl) ObserveOperation(_, _ string, _ time.Duration) {

}

// ObserveCache implements metrics.Metrics.
func (m *metricsImpl) ObserveCache(_, _ string) {

}

// ObserveEvent implements metrics.Metrics.
func (m *metricsImpl) ObserveEvent(_, _ string) {

}

// Handler implements metrics.Metrics.
func (m *metricsImpl) Handler() http.Handler {
	return http.NotFoundHandler()
}

func NewMetrics() metrics.Metrics {
	return &metricsImpl{}
}
