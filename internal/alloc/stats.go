package alloc

import "sync/atomic"

var stats struct {
	allocations   atomic.Uint64
	reallocations atomic.Uint64
	releases      atomic.Uint64
	failures      atomic.Uint64
	liveBytes     atomic.Int64
}

// Stats is a snapshot of the process-wide allocation statistics.
type Stats struct {
	// Allocations is the number of successful calls to [Allocate].
	Allocations uint64
	// Reallocations is the number of successful calls to [Grow].
	Reallocations uint64
	// Releases is the number of calls to [Release] with a live region.
	Releases uint64
	// Failures is the number of allocation requests that returned nil.
	Failures uint64
	// LiveBytes is the number of bytes currently allocated and not yet released.
	LiveBytes int64
}

// ReadStats returns the current allocation statistics.
//
// Counters are read one by one, so a snapshot taken while other goroutines allocate may be
// slightly inconsistent.
func ReadStats() Stats {
	return Stats{
		Allocations:   stats.allocations.Load(),
		Reallocations: stats.reallocations.Load(),
		Releases:      stats.releases.Load(),
		Failures:      stats.failures.Load(),
		LiveBytes:     stats.liveBytes.Load(),
	}
}
