package vec_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/internal/alloc"
	"github.com/teenjuna/vec/internal/testing/require"
)

func gather(t *testing.T, registry *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := registry.Gather()
	require.Nil(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[f.GetName()] = c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				values[f.GetName()] = g.GetValue()
			}
		}
	}
	return values
}

func TestPrometheus(t *testing.T) {
	registry := prometheus.NewRegistry()
	vec.Prometheus(registry).Register()

	v := fromSlice(seq(10))
	stats := alloc.ReadStats()
	values := gather(t, registry)

	require.Equal(t, values, map[string]float64{
		"vec_alloc_allocations":   float64(stats.Allocations),
		"vec_alloc_reallocations": float64(stats.Reallocations),
		"vec_alloc_releases":      float64(stats.Releases),
		"vec_alloc_failures":      float64(stats.Failures),
		"vec_alloc_live_bytes":    float64(stats.LiveBytes),
	})

	v.Drop()
	after := gather(t, registry)
	require.Equal(t, after["vec_alloc_releases"], values["vec_alloc_releases"]+1)
	require.Equal(t, after["vec_alloc_live_bytes"], values["vec_alloc_live_bytes"]-16*8)
}

func TestPrometheusConfig(t *testing.T) {
	registry := prometheus.NewRegistry()
	vec.Prometheus(registry, nil, func(c *vec.PrometheusConfig) {
		c.Namespace = "app"
		c.Subsystem = "storage"
		c.LiveBytes.Name = "bytes"
	}).Register()

	values := gather(t, registry)
	require.Equal(t, len(values), 5)
	_, ok := values["app_storage_bytes"]
	require.True(t, ok)
	_, ok = values["app_storage_allocations"]
	require.True(t, ok)

	// Registering twice with the same registerer fails.
	require.Panics(t, vec.Prometheus(registry, func(c *vec.PrometheusConfig) {
		c.Namespace = "app"
		c.Subsystem = "storage"
		c.LiveBytes.Name = "bytes"
	}).Register)

	require.NotPanics(t, vec.Prometheus(nil).Register)
}

func TestConcurrentOwners(t *testing.T) {
	const (
		owners = 16
		items  = 1000
	)

	before := alloc.ReadStats()

	group, _ := errgroup.WithContext(context.Background())
	for range owners {
		group.Go(func() error {
			v := vec.New[int]()
			for i := range items {
				v.Push(i)
			}
			for i := range items / 2 {
				v.Remove(i)
			}
			it := v.IntoIter()
			for range it.Values() {
			}
			it.Drop()
			return nil
		})
	}
	require.Nil(t, group.Wait())

	after := alloc.ReadStats()
	require.Equal(t, after.Allocations-before.Allocations, uint64(owners))
	require.Equal(t, after.Releases-before.Releases, uint64(owners))
	require.Equal(t, after.Reallocations-before.Reallocations, uint64(owners*10))
	require.Equal(t, after.LiveBytes, before.LiveBytes)
}
