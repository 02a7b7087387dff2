package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics records counters for the ordering flow.
type Metrics struct {
	snapshots       *prometheus.CounterVec
	orders          *prometheus.CounterVec
	serviceRequests *prometheus.CounterVec
	orderValue      prometheus.Histogram
}

// New registers the ordering metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	snapshots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "menu_snapshot_total",
		Help: "Menu snapshot deliveries by result.",
	}, []string{"result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions_total",
		Help: "Order submissions by result.",
	}, []string{"result"})
	serviceRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "service_requests_total",
		Help: "Table service requests by kind and result.",
	}, []string{"kind", "result"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_value_units",
		Help:    "Submitted order totals in smallest currency units.",
		Buckets: prometheus.ExponentialBuckets(50, 2.5, 8),
	})
	reg.MustRegister(snapshots, orders, serviceRequests, orderValue)
	return &Metrics{
		snapshots:       snapshots,
		orders:          orders,
		serviceRequests: serviceRequests,
		orderValue:      orderValue,
	}
}

// ObserveSnapshot counts a snapshot delivery or subscription failure.
func (m *Metrics) ObserveSnapshot(ok bool) {
	if m == nil || m.snapshots == nil {
		return
	}
	m.snapshots.WithLabelValues(resultLabel(ok)).Inc()
}

// ObserveOrder counts an order submission and, on success, its total.
func (m *Metrics) ObserveOrder(ok bool, totalUnits int64) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(resultLabel(ok)).Inc()
	if ok && m.orderValue != nil {
		m.orderValue.Observe(float64(totalUnits))
	}
}

// ObserveServiceRequest counts a table service request.
func (m *Metrics) ObserveServiceRequest(kind string, ok bool) {
	if m == nil || m.serviceRequests == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.serviceRequests.WithLabelValues(kind, resultLabel(ok)).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultFailed
}
