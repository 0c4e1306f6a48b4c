package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanguard_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cleanguard_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LockerOccupied and LockerTotal are refreshed from the locker summary
	LockerOccupied = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cleanguard_lockers_occupied",
			Help: "Occupied lockers per floor and type",
		},
		[]string{"location", "type"},
	)

	LockerTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cleanguard_lockers_total",
			Help: "Lockers per floor and type",
		},
		[]string{"location", "type"},
	)

	// LockerConflicts counts allocations rejected because a locker was taken or unknown
	LockerConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanguard_locker_conflicts_total",
			Help: "Rejected locker allocations by reason",
		},
		[]string{"reason"},
	)

	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanguard_backups_total",
			Help: "Database backups by result",
		},
		[]string{"result"},
	)

	ImportedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanguard_imported_rows_total",
			Help: "Rows processed by bulk imports",
		},
		[]string{"kind", "result"},
	)
)
