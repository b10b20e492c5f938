package dashboard

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"kakao/internal/cache"
)

const namespace = "kakao"

type metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	summarize prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Dashboard request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		summarize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_duration_seconds",
			Help:      "Time spent computing a summary on a cache miss.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.requests,
		m.duration,
		m.summarize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// registerCache exposes the summary cache counters, read at scrape time.
func (m *metrics) registerCache(reg prometheus.Registerer, stats func() cache.Stats) error {
	for _, c := range []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_cache_hits_total",
			Help:      "Summary cache hits.",
		}, func() float64 { return float64(stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_cache_misses_total",
			Help:      "Summary cache misses.",
		}, func() float64 { return float64(stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "summary_cache_entries",
			Help:      "Summaries currently cached.",
		}, func() float64 { return float64(stats().Size) }),
	} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register cache metrics: %w", err)
		}
	}
	return nil
}
