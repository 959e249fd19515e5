package producer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "outbox",
		Name:      "dispatch_total",
		Help:      "Total number of outbox dispatch attempts.",
	}, []string{"topic", "result"})

	pendingBatch = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "outbox",
		Name:      "pending_batch_size",
		Help:      "Number of due outbox events picked up by the last poll.",
	})
)
