package tree

import "time"

// Metrics is a point-in-time copy of the tree's performance counters.
// Counters are bookkeeping only; they never influence control flow.
type Metrics struct {
	Updates           int64
	Computations      int64
	CacheHits         int64
	CacheMisses       int64
	AverageUpdateTime time.Duration
	HistoryEntries    int
}

// metricsState accumulates counters as a side effect of the reconciler and
// the memoization cache.
type metricsState struct {
	updates      int64
	computations int64
	cacheHits    int64
	cacheMisses  int64
	totalUpdate  time.Duration
}

func (m *metricsState) recordUpdate(d time.Duration) {
	m.updates++
	m.totalUpdate += d
}

// GetMetrics returns the current counters. AverageUpdateTime is the running
// mean over committed updates; zero when no update has committed.
func (t *Tree) GetMetrics() Metrics {
	out := Metrics{
		Updates:      t.metrics.updates,
		Computations: t.metrics.computations,
		CacheHits:    t.metrics.cacheHits,
		CacheMisses:  t.metrics.cacheMisses,
	}
	if t.metrics.updates > 0 {
		out.AverageUpdateTime = t.metrics.totalUpdate / time.Duration(t.metrics.updates)
	}
	if t.history != nil {
		out.HistoryEntries = len(t.history.log)
	}
	return out
}
