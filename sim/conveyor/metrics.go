package conveyor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the goroutine line, served on the probe server's
// /metrics endpoint when one is running.
var (
	itemsProducedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "line_items_produced_total",
		Help: "Items placed on the line buffer, per producer",
	}, []string{"producer"})

	itemsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "line_items_consumed_total",
		Help: "Items taken off the line buffer, per consumer",
	}, []string{"consumer"})

	bufferDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "line_buffer_depth",
		Help: "Items currently waiting in the line buffer",
	})
)
