package vec

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teenjuna/vec/internal/alloc"
)

var readStats = alloc.ReadStats

type metrics struct {
	allocations   prometheus.CounterFunc
	reallocations prometheus.CounterFunc
	releases      prometheus.CounterFunc
	failures      prometheus.CounterFunc
	liveBytes     prometheus.GaugeFunc
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.allocations,
		m.reallocations,
		m.releases,
		m.failures,
		m.liveBytes,
	}
}
