package game

import (
	"log/slog"
	"sort"
	"time"
)

// PerfStats tracks execution time for each simulation pass.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a new performance stats tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of samples at 60 ticks/s
	}
}

// Record adds a duration sample for the named pass.
func (p *PerfStats) Record(name string, d time.Duration) {
	p.samples[name] = append(p.samples[name], d)
	if len(p.samples[name]) > p.maxSamples {
		p.samples[name] = p.samples[name][1:]
	}
}

// Avg returns the average duration for the named pass.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns pass names sorted by average duration, descending.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}

// logPerfStats emits a perf summary over the sampled passes, slowest first.
func (g *Game) logPerfStats() {
	total := g.perf.Total()
	attrs := make([]any, 0, 2*len(g.perf.samples)+4)
	attrs = append(attrs, "tick", g.tick, "total", total.Round(time.Microsecond).String())
	for _, name := range g.perf.SortedNames() {
		attrs = append(attrs, name, g.perf.Avg(name).Round(time.Microsecond).String())
	}
	slog.Info("perf", attrs...)
}

// timed runs a simulation pass and records its duration.
func (g *Game) timed(name string, fn func()) {
	start := time.Now()
	fn()
	g.perf.Record(name, time.Since(start))
}
