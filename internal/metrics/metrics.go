package metrics

import (
	"sync"
	"time"
)

type fetchKey struct {
	provider string
	op       string
}

type fetchStats struct {
	calls         int
	errors        int
	lastLatency   time.Duration
	lastErrorKind string
}

// Recorder captures lightweight, in-memory metrics about upstream fetches and the session loop,
// mirroring them into OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	fetches     map[fetchKey]*fetchStats
	stale       map[string]int
	events      map[string]int
	subscribers int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		fetches: make(map[fetchKey]*fetchStats),
		stale:   make(map[string]int),
		events:  make(map[string]int),
		otel:    otel,
	}
}

// RecordFetchAttempt counts one upstream request for op. errKind is empty on success.
func (r *Recorder) RecordFetchAttempt(provider, op string, duration time.Duration, errKind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureFetch(fetchKey{provider: provider, op: op})
	stats.calls++
	stats.lastLatency = duration
	if errKind != "" {
		stats.errors++
		stats.lastErrorKind = errKind
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFetch(provider, op, duration, errKind)
	}
}

// RecordStaleDiscard counts a response dropped because a newer request superseded it.
func (r *Recorder) RecordStaleDiscard(op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stale[op]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStale(op)
	}
}

// RecordSessionEvent counts an event applied by the session loop.
func (r *Recorder) RecordSessionEvent(event string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events[event]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordEvent(event)
	}
}

// RecordSubscribers adjusts the live view-stream subscriber count.
func (r *Recorder) RecordSubscribers(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.subscribers += delta
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSubscribers(delta)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the fetch stats for one provider and operation.
type Snapshot struct {
	Calls         int
	Errors        int
	LastLatency   time.Duration
	LastErrorKind string
}

func (r *Recorder) Snapshot(provider, op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.fetches[fetchKey{provider: provider, op: op}]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:         stats.calls,
		Errors:        stats.errors,
		LastLatency:   stats.lastLatency,
		LastErrorKind: stats.lastErrorKind,
	}
}

// FetchCalls returns the total attempts recorded for a provider operation.
func (r *Recorder) FetchCalls(provider, op string) int {
	return r.Snapshot(provider, op).Calls
}

// FetchErrors returns the failed attempts recorded for a provider operation.
func (r *Recorder) FetchErrors(provider, op string) int {
	return r.Snapshot(provider, op).Errors
}

// StaleDiscards returns how many responses for op were dropped as superseded.
func (r *Recorder) StaleDiscards(op string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stale[op]
}

// SessionEvents returns how many events of the given name were applied.
func (r *Recorder) SessionEvents(event string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[event]
}

// Subscribers returns the current view-stream subscriber count.
func (r *Recorder) Subscribers() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subscribers
}

// ensureFetch must be called with mu held.
func (r *Recorder) ensureFetch(key fetchKey) *fetchStats {
	stats, ok := r.fetches[key]
	if !ok {
		stats = &fetchStats{}
		r.fetches[key] = stats
	}
	return stats
}
