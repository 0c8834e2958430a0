package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskquest_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taskquest_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TasksCompleted counts task completions by collaboration type.
	TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskquest_tasks_completed_total",
		Help: "Total number of task completions by collaboration type",
	}, []string{"collaboration_type"})

	// RewardsGranted counts reward applications by kind (grant, reversal, penalty).
	RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskquest_rewards_granted_total",
		Help: "Total number of reward ledger applications by kind",
	}, []string{"kind"})

	// ConsensusFanOuts counts reward fan-outs fired for shared tasks.
	ConsensusFanOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskquest_consensus_fanouts_total",
		Help: "Total number of collaboration consensus reward fan-outs",
	})

	// EquipOperations counts equip operations by item type.
	EquipOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskquest_equip_operations_total",
		Help: "Total number of equip operations by item type",
	}, []string{"item_type"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
