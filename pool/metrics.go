// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pool

import (
	"slices"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/puzpuzpuz/xsync/v4"
)

var (
	poolGets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lowjson",
		Subsystem: "pool",
		Name:      "gets_total",
		Help:      "Total number of pool Get calls",
	}, []string{"pool"})

	poolReleases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lowjson",
		Subsystem: "pool",
		Name:      "releases_total",
		Help:      "Total number of pool Release calls",
	}, []string{"pool"})

	// A miss is a Get that found the free list empty and had to create a new
	// value. Values created when the pool is constructed are not misses.
	poolMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lowjson",
		Subsystem: "pool",
		Name:      "misses_total",
		Help:      "Total number of pool misses (new values created by Get)",
	}, []string{"pool"})
)

// Metrics records pool activity by pool name. Counts are exported as
// Prometheus counters and are also kept in process for Counts snapshots.
// A Metrics value is safe for concurrent use, even though the pools that
// report to it are not.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	counts *xsync.Map[string, *counters]
}

type counters struct {
	gets, releases, misses atomic.Uint64
}

// NewMetrics constructs an empty Metrics value.
func NewMetrics() *Metrics {
	return &Metrics{counts: xsync.NewMap[string, *counters]()}
}

func (m *Metrics) entry(name string) *counters {
	if c, ok := m.counts.Load(name); ok {
		return c
	}
	c, _ := m.counts.LoadOrStore(name, new(counters))
	return c
}

func (m *Metrics) recordGet(name string) {
	if m != nil {
		m.entry(name).gets.Add(1)
		poolGets.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) recordRelease(name string) {
	if m != nil {
		m.entry(name).releases.Add(1)
		poolReleases.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) recordMiss(name string) {
	if m != nil {
		m.entry(name).misses.Add(1)
		poolMisses.WithLabelValues(name).Inc()
	}
}

// Counts returns the current counts recorded for the named pool.
// It returns zero counts for a name that has recorded nothing.
func (m *Metrics) Counts(name string) Counts {
	if m == nil {
		return Counts{}
	}
	c, ok := m.counts.Load(name)
	if !ok {
		return Counts{}
	}
	return Counts{
		Gets:     c.gets.Load(),
		Releases: c.releases.Load(),
		Misses:   c.misses.Load(),
	}
}

// Names returns the names of all pools that have recorded activity in m,
// in lexicographic order.
func (m *Metrics) Names() []string {
	if m == nil {
		return nil
	}
	var names []string
	m.counts.Range(func(name string, _ *counters) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Counts is a snapshot of the activity of one pool.
type Counts struct {
	Gets     uint64
	Releases uint64
	Misses   uint64
}

// HitRate reports the fraction of Get calls satisfied from the free list.
// It returns 0 if there have been no Get calls.
func (c Counts) HitRate() float64 {
	if c.Gets == 0 {
		return 0
	}
	return float64(c.Gets-c.Misses) / float64(c.Gets)
}
