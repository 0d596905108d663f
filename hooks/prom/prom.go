// Package promhook exports store events as Prometheus counters.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/cachestore"
)

type Hooks struct {
	lookups        *prometheus.CounterVec // result=hit|miss
	decodeFailures prometheus.Counter
	setRejected    prometheus.Counter
	bulkDeletes    *prometheus.CounterVec // result=ok|error
	bulkDeleted    prometheus.Counter
}

var _ cachestore.Hooks = (*Hooks)(nil)

// New registers the collectors on reg under the given namespace, e.g. "app".
// Labels must stay low-cardinality, so keys and patterns are never exported.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	h := &Hooks{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "lookups_total",
			Help:      "Get calls by result.",
		}, []string{"result"}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "decode_failures_total",
			Help:      "Stored payloads that failed to decode.",
		}),
		setRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "set_rejected_total",
			Help:      "Writes dropped by the provider.",
		}),
		bulkDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "bulk_deletes_total",
			Help:      "Del/Clear pattern deletes by result.",
		}, []string{"result"}),
		bulkDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "bulk_deleted_keys_total",
			Help:      "Keys removed by successful pattern deletes.",
		}),
	}
	for _, c := range []prometheus.Collector{h.lookups, h.decodeFailures, h.setRejected, h.bulkDeletes, h.bulkDeleted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Hit(string)                 { h.lookups.WithLabelValues("hit").Inc() }
func (h *Hooks) Miss(string)                { h.lookups.WithLabelValues("miss").Inc() }
func (h *Hooks) DecodeFailed(string, error) { h.decodeFailures.Inc() }
func (h *Hooks) ProviderSetRejected(string) { h.setRejected.Inc() }

func (h *Hooks) BulkDeleted(_ string, n int) {
	h.bulkDeletes.WithLabelValues("ok").Inc()
	h.bulkDeleted.Add(float64(n))
}

func (h *Hooks) BulkDeleteFailed(string, int, error) {
	h.bulkDeletes.WithLabelValues("error").Inc()
}
