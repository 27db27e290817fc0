package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	BookingsTotal    *prometheus.CounterVec
	BookingDuration  prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPRequestsTime *prometheus.HistogramVec
}

// New registers the service metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "room_booker_bookings_total",
			Help: "Room booking attempts by result",
		}, []string{"result"}),

		BookingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "room_booker_booking_duration_seconds",
			Help:    "Time spent validating and persisting a room booking",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "room_booker_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "status"}),

		HTTPRequestsTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "room_booker_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) ObserveBooking(result string, elapsed time.Duration) {
	m.BookingsTotal.WithLabelValues(result).Inc()
	m.BookingDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
