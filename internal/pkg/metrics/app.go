package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type AppMetrics struct {
	ErrorsTotal   *prometheus.CounterVec
	RequestsTotal *prometheus.CounterVec
}

var (
	appOnce sync.Once
	app     *AppMetrics
)

func App() *AppMetrics {
	appOnce.Do(func() {
		r := Registerer()
		app = &AppMetrics{
			ErrorsTotal: promauto.With(r).NewCounterVec(
				prometheus.CounterOpts{
					Name: "app_errors_total",
					Help: "application errors by category and error code",
				},
				[]string{"category", "code"},
			),
			RequestsTotal: promauto.With(r).NewCounterVec(
				prometheus.CounterOpts{
					Name: "app_requests_total",
					Help: "handled HTTP requests by method and status",
				},
				[]string{"method", "status"},
			),
		}
	})
	return app
}
