package vec

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics describing the memory held by all
// containers of the process.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics. Overrides the namespace of every options field.
	Namespace string
	// Subsystem of the metrics. Overrides the subsystem of every options field.
	Subsystem string
	// Options for the allocations counter.
	Allocations prometheus.CounterOpts
	// Options for the reallocations counter.
	Reallocations prometheus.CounterOpts
	// Options for the releases counter.
	Releases prometheus.CounterOpts
	// Options for the allocation failures counter.
	Failures prometheus.CounterOpts
	// Options for the live bytes gauge.
	LiveBytes prometheus.GaugeOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  "vec",
		Subsystem:  "alloc",
		Allocations: prometheus.CounterOpts{
			Name: "allocations",
			Help: "Number of storage allocations made by containers",
		},
		Reallocations: prometheus.CounterOpts{
			Name: "reallocations",
			Help: "Number of times container storage was grown",
		},
		Releases: prometheus.CounterOpts{
			Name: "releases",
			Help: "Number of times container storage was released",
		},
		Failures: prometheus.CounterOpts{
			Name: "failures",
			Help: "Number of failed storage allocations",
		},
		LiveBytes: prometheus.GaugeOpts{
			Name: "live_bytes",
			Help: "Number of bytes currently allocated by containers",
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// Register registers the metrics with the registerer of the config. It panics if any of the
// metrics can't be registered, and does nothing if the registerer is nil.
func (c *PrometheusConfig) Register() {
	if c.registerer == nil {
		return
	}
	c.registerer.MustRegister(c.metrics().collectors()...)
}

func (c *PrometheusConfig) metrics() *metrics {
	counter := func(opts prometheus.CounterOpts, value func() float64) prometheus.CounterFunc {
		opts.Namespace = c.Namespace
		opts.Subsystem = c.Subsystem
		return prometheus.NewCounterFunc(opts, value)
	}

	live := c.LiveBytes
	live.Namespace = c.Namespace
	live.Subsystem = c.Subsystem

	m := metrics{
		allocations: counter(c.Allocations, func() float64 {
			return float64(readStats().Allocations)
		}),
		reallocations: counter(c.Reallocations, func() float64 {
			return float64(readStats().Reallocations)
		}),
		releases: counter(c.Releases, func() float64 {
			return float64(readStats().Releases)
		}),
		failures: counter(c.Failures, func() float64 {
			return float64(readStats().Failures)
		}),
		liveBytes: prometheus.NewGaugeFunc(live, func() float64 {
			return float64(readStats().LiveBytes)
		}),
	}

	return &m
}
