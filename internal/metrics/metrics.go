// Package metrics collects run statistics for the agglom binary on a
// private Prometheus registry and exports them as a node-exporter
// textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric name.
const Namespace = "agglom"

// Collector holds all metrics of one process.
type Collector struct {
	registry *prometheus.Registry

	TreesBuilt  *prometheus.CounterVec   // by linkage
	Merges      *prometheus.CounterVec   // by linkage
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	Failures    prometheus.Counter
	Duration    *prometheus.HistogramVec // build seconds, by linkage
	Leaves      prometheus.Histogram
}

// New creates a collector with its own registry. withRuntime also registers
// the Go runtime and process collectors.
func New(withRuntime bool) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		TreesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "trees_built_total",
			Help:      "Trees built by agglomeration.",
		}, []string{"linkage"}),
		Merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "merges_total",
			Help:      "Cluster joins performed.",
		}, []string{"linkage"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Trees served from the store.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_misses_total",
			Help:      "Store lookups that required a build.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "failures_total",
			Help:      "Inputs that failed to read, build or write.",
		}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of agglom.Build.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"linkage"}),
		Leaves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "tree_leaves",
			Help:      "Number of taxa per input.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
		}),
	}
	c.registry.MustRegister(c.TreesBuilt, c.Merges, c.CacheHits, c.CacheMisses, c.Failures, c.Duration, c.Leaves)
	if withRuntime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveBuild records one completed build.
func (c *Collector) ObserveBuild(linkage string, leaves int, took time.Duration) {
	c.TreesBuilt.WithLabelValues(linkage).Inc()
	c.Merges.WithLabelValues(linkage).Add(float64(max(leaves-1, 0)))
	c.Duration.WithLabelValues(linkage).Observe(took.Seconds())
	c.Leaves.Observe(float64(leaves))
}

// WriteTextfile writes all metrics to path in the text exposition format,
// atomically (temp file plus rename).
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}
