package metrics

import (
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "typosquat"

// Collector exposes pipeline progress and DNS traffic as Prometheus metrics
// on a private registry.
type Collector struct {
	registry *prometheus.Registry

	domainsTotal    prometheus.Gauge
	domainsDone     *prometheus.GaugeVec
	variantsWritten prometheus.Gauge
	variantsByAlgo  *prometheus.CounterVec
	activeWorkers   prometheus.Gauge
	totalWorkers    prometheus.Gauge
	dnsQueries      *prometheus.CounterVec
	dnsDuration     prometheus.Histogram
	domainDuration  prometheus.Histogram
}

// NewCollector creates a collector with all metrics registered
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		domainsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "domains_total",
			Help:      "Number of input domains dispatched.",
		}),
		domainsDone: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "domains_processed",
			Help:      "Number of input domains processed, by outcome.",
		}, []string{"outcome"}),
		variantsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "variants_written",
			Help:      "Number of variant lines written to result files.",
		}),
		variantsByAlgo: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "variants_total",
			Help:      "Variants persisted, by generating algorithm.",
		}, []string{"algorithm"}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers_active",
			Help:      "Number of workers currently processing a domain.",
		}),
		totalWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers_total",
			Help:      "Size of the worker pool.",
		}),
		dnsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dns_queries_total",
			Help:      "DNS queries sent, by record type and response code.",
		}, []string{"type", "rcode"}),
		dnsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dns_query_duration_seconds",
			Help:      "DNS query latency including rate limiting.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		domainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "domain_duration_seconds",
			Help:      "Time spent on one input domain.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(
		c.domainsTotal,
		c.domainsDone,
		c.variantsWritten,
		c.variantsByAlgo,
		c.activeWorkers,
		c.totalWorkers,
		c.dnsQueries,
		c.dnsDuration,
		c.domainDuration,
	)
	return c
}

// Registry returns the registry backing this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveQuery records a DNS exchange
func (c *Collector) ObserveQuery(query *entity.DNSQuery, duration time.Duration) {
	rcode := query.Rcode
	if rcode == "" {
		rcode = "ERROR"
	}
	c.dnsQueries.WithLabelValues(query.Type, rcode).Inc()
	c.dnsDuration.Observe(duration.Seconds())
}

// OnMetricsUpdate mirrors a pipeline snapshot into the gauges
func (c *Collector) OnMetricsUpdate(m *entity.Metrics) {
	c.domainsTotal.Set(float64(m.TotalDomains))
	c.domainsDone.WithLabelValues("success").Set(float64(m.Succeeded))
	c.domainsDone.WithLabelValues(entity.FailureInvalidURL.String()).Set(float64(m.InvalidURL))
	c.domainsDone.WithLabelValues(entity.FailureNoMXRecord.String()).Set(float64(m.NoMX))
	c.variantsWritten.Set(float64(m.VariantsWritten))
	c.activeWorkers.Set(float64(m.ActiveWorkers))
	c.totalWorkers.Set(float64(m.TotalWorkers))
}

// OnDomainCompleted records the time spent on a finished domain and the
// algorithms behind its variants
func (c *Collector) OnDomainCompleted(result *entity.DomainResult) {
	c.domainDuration.Observe(result.Duration.Seconds())
	for _, variant := range result.Variants {
		c.variantsByAlgo.WithLabelValues(variant.Algorithm).Inc()
	}
}
