package obs

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	HTTPRequestsTotal *prometheus.CounterVec   // method, status
	HTTPLatencyMS     *prometheus.HistogramVec // method

	ReservationsTotal *prometheus.CounterVec // op=create|confirm|cancel|reject|expire, result=ok|conflict|error
}

func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
		HTTPLatencyMS: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_latency_ms",
				Help:    "Latency of HTTP requests (ms)",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1ms .. ~2048ms
			},
			[]string{"method"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total reservation operations by result",
			},
			[]string{"op", "result"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPLatencyMS,
		m.ReservationsTotal,
	)

	return m
}

// ObserveReservation is nil-safe so handlers can run without metrics wired.
func (m *Metrics) ObserveReservation(op, result string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(op, result).Inc()
}
