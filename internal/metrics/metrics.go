// Package metrics holds Prometheus collectors for HTTP traffic and the order lifecycle.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Module provides service metrics backed by a dedicated registry.
var Module = fx.Provide(New)

// Metrics groups collectors exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	ordersPlaced      prometheus.Counter
	placementFailures *prometheus.CounterVec
	orderTransitions  *prometheus.CounterVec
}

// New creates metrics registered in a fresh registry along with Go runtime collectors.
func New() *Metrics {
	return newWithRegistry(prometheus.NewRegistry())
}

func newWithRegistry(registry *prometheus.Registry) *Metrics {
	registerCollector[prometheus.Collector](registry, "go", collectors.NewGoCollector())
	registerCollector[prometheus.Collector](registry, "process", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{
		registry: registry,
		httpRequests: registerCollector(registry, "storefront_http_requests_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"})),
		httpDuration: registerCollector(registry, "storefront_http_request_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})),
		ordersPlaced: registerCollector(registry, "storefront_orders_placed_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed successfully",
		})),
		placementFailures: registerCollector(registry, "storefront_order_placement_failures_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_placement_failures_total",
			Help: "Order placements rejected by reason",
		}, []string{"reason"})),
		orderTransitions: registerCollector(registry, "storefront_order_transitions_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_transitions_total",
			Help: "Order status and payment status changes",
		}, []string{"field", "value"})),
	}
}

func registerCollector[T prometheus.Collector](registerer prometheus.Registerer, name string, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

// Handler exposes registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer returns underlying registry for inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderPlaced counts successful placement.
func (m *Metrics) OrderPlaced() {
	m.ordersPlaced.Inc()
}

// OrderPlacementFailed counts rejected placement.
func (m *Metrics) OrderPlacementFailed(reason string) {
	m.placementFailures.WithLabelValues(reason).Inc()
}

// OrderTransition counts status or payment status change.
func (m *Metrics) OrderTransition(field, value string) {
	m.orderTransitions.WithLabelValues(field, value).Inc()
}
