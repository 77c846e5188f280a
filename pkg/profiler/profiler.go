// Package profiler accumulates call timings by name and reports the
// sample count, mean and standard deviation per name.
//
// Start returns a stop function that records the elapsed time when
// called, so one deferred line instruments a method:
//
//	defer prof.Start("store.Save")()
//
// Timings are accumulated with Welford's online algorithm; memory use
// is constant per distinct name regardless of sample count.
package profiler

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Result is the aggregate timing for a single name. Times are in
// milliseconds.
type Result struct {
	Samples int
	Average float64
	StdDev  float64
}

type series struct {
	count int
	mean  float64
	m2    float64
}

func (s *series) add(ms float64) {
	s.count++
	delta := ms - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (ms - s.mean)
}

func (s *series) result() Result {
	return Result{
		Samples: s.count,
		Average: s.mean,
		StdDev:  math.Sqrt(s.m2 / float64(s.count)),
	}
}

// Profiler records call timings by name. Safe for concurrent use.
type Profiler struct {
	mu     sync.Mutex
	series map[string]*series
}

// New creates an empty profiler.
func New() *Profiler {
	return &Profiler{series: make(map[string]*series)}
}

// Start begins timing one call of name and returns the function that
// stops the clock and records the sample. Each Start call owns its own
// interval, so nested and concurrent calls do not interfere.
func (p *Profiler) Start(name string) func() {
	began := time.Now()
	return func() {
		p.Record(name, time.Since(began))
	}
}

// Record adds a single timing sample for name.
func (p *Profiler) Record(name string, d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.series[name]
	if !ok {
		s = &series{}
		p.series[name] = s
	}
	s.add(ms)
}

// ResultFor returns the aggregate for name, or false when no sample
// has been recorded for it.
func (p *Profiler) ResultFor(name string) (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.series[name]
	if !ok {
		return Result{}, false
	}
	return s.result(), true
}

// Snapshot returns the aggregates for every recorded name.
func (p *Profiler) Snapshot() map[string]Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Result, len(p.series))
	for name, s := range p.series {
		out[name] = s.result()
	}
	return out
}

// Names returns the recorded names, sorted.
func (p *Profiler) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.series))
	for name := range p.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset discards every recorded sample.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.series = make(map[string]*series)
}
