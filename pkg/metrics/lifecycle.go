package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lotmotors/resale-backend/pkg/enums"
)

// LifecycleMetrics tracks vehicle pipeline movement and report activity.
type LifecycleMetrics struct {
	transitions *prometheus.CounterVec
	yardDays    prometheus.Histogram
	reports     *prometheus.CounterVec
	inventory   *prometheus.GaugeVec
}

// NewLifecycleMetrics registers the vehicle lifecycle metrics.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	if reg == nil {
		return &LifecycleMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vehicle_status_transitions_total",
		Help: "Vehicle status transitions by source and target status.",
	}, []string{"from", "to"})
	yardDays := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vehicle_yard_days",
		Help:    "Whole days a vehicle spent in the yard before distribution.",
		Buckets: []float64{1, 3, 7, 14, 30, 60, 90, 180},
	})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_builds_total",
		Help: "Generated reports by kind.",
	}, []string{"kind"})
	inventory := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicles_by_status",
		Help: "Current vehicle count per lifecycle status.",
	}, []string{"status"})
	reg.MustRegister(transitions, yardDays, reports, inventory)
	return &LifecycleMetrics{
		transitions: transitions,
		yardDays:    yardDays,
		reports:     reports,
		inventory:   inventory,
	}
}

// ObserveTransition counts a completed status transition.
func (m *LifecycleMetrics) ObserveTransition(from, to enums.VehicleStatus) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// ObserveYardDays records how long a vehicle sat before distribution.
func (m *LifecycleMetrics) ObserveYardDays(days int) {
	if m == nil || m.yardDays == nil {
		return
	}
	m.yardDays.Observe(float64(days))
}

// SetStatusCount records how many vehicles currently sit in a status.
func (m *LifecycleMetrics) SetStatusCount(status enums.VehicleStatus, count int64) {
	if m == nil || m.inventory == nil {
		return
	}
	m.inventory.WithLabelValues(status.String()).Set(float64(count))
}

// IncReport counts a generated report of the given kind.
func (m *LifecycleMetrics) IncReport(kind string) {
	if m == nil || m.reports == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.reports.WithLabelValues(kind).Inc()
}
