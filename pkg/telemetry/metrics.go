package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del PDV (registro global de Prometheus, expuestas en /metrics).
var (
	SalesCommittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdv_sales_committed_total",
		Help: "Ventas confirmadas (checkout o registro directo)",
	})

	SalesRevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdv_sales_revenue_total",
		Help: "Suma de totales de ventas confirmadas (BRL)",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_checkout_failed_total",
		Help: "Checkouts rechazados por motivo",
	}, []string{"reason"})

	CheckoutReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdv_checkout_replayed_total",
		Help: "Checkouts repetidos con la misma idempotency key",
	})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pdv_checkout_latency_seconds",
		Help:    "Duración de la transacción de checkout",
		Buckets: prometheus.DefBuckets,
	})

	StockMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_stock_mutations_total",
		Help: "Mutaciones de estoque por tipo y resultado",
	}, []string{"kind", "result"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_notifications_total",
		Help: "Notificaciones por tipo y resultado (sent|skipped|failed|suppressed)",
	}, []string{"kind", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
