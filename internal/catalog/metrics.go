package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelOutcome = "outcome"
	labelResult  = "result"

	outcomeOK     = "ok"
	outcomeError  = "error"
	outcomeStatus = "status"
)

// Metrics groups the client's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Requests     *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
	Retries      prometheus.Counter
	Latency      prometheus.Histogram
}

// NewMetrics builds the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "showcase_catalog_requests_total",
				Help: "Catalog HTTP attempts by outcome",
			},
			[]string{labelOutcome},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "showcase_catalog_cache_lookups_total",
				Help: "Catalog response cache lookups",
			},
			[]string{labelResult},
		),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "showcase_catalog_retries_total",
			Help: "Catalog request retries after a failed attempt",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "showcase_catalog_request_duration_seconds",
			Help: "Catalog HTTP attempt latency",
		}),
	}

	reg.MustRegister(m.Requests, m.CacheLookups, m.Retries, m.Latency)
	return m
}

func (m *Metrics) observeAttempt(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
	m.Latency.Observe(elapsed.Seconds())
}

func (m *Metrics) cacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) retry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}
