package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"energyport/pkg/domain"
)

var expvarSeq atomic.Uint64

type outcome struct {
	operation string
	status    string
}

// ExpvarMetricsRecorder publishes operation timings, outcomes and build
// counters through expvar. Durations are totals in milliseconds.
type ExpvarMetricsRecorder struct {
	name string

	mu        sync.Mutex
	durations map[string]float64
	outcomes  map[outcome]int64
	entities  map[string]int64
	issues    map[string]int64
}

// ExpvarMetricsSnapshot is a copy of the recorder state.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	Entities    map[string]int64            `json:"entities_built_total"`
	Issues      map[string]int64            `json:"issues_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder publishes a recorder under name, or under a
// generated energyport_metrics_N name when name is empty.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("energyport_metrics_%d", expvarSeq.Add(1))
	}
	r := &ExpvarMetricsRecorder{
		name:      name,
		durations: map[string]float64{},
		outcomes:  map[outcome]int64{},
		entities:  map[string]int64{},
		issues:    map[string]int64{},
	}
	expvar.Publish(name, expvar.Func(func() any { return r.Snapshot() }))
	return r
}

// Name is the expvar key the recorder is published under.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot copies the current counters.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := make(map[string]map[string]int64)
	for o, n := range r.outcomes {
		if results[o.operation] == nil {
			results[o.operation] = map[string]int64{}
		}
		results[o.operation][o.status] = n
	}
	return ExpvarMetricsSnapshot{
		DurationsMS: maps.Clone(r.durations),
		Results:     results,
		Entities:    maps.Clone(r.entities),
		Issues:      maps.Clone(r.issues),
		RecordedAt:  time.Now().UTC(),
	}
}

// Observe implements MetricsRecorder. Unnamed operations are dropped.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	o := outcome{operation: operation, status: statusLabel(success)}
	r.mu.Lock()
	r.durations[operation] += float64(duration) / float64(time.Millisecond)
	r.outcomes[o]++
	r.mu.Unlock()
}

// EntityBuilt implements EntityCounter.
func (r *ExpvarMetricsRecorder) EntityBuilt(category domain.EntityType) {
	r.bump(r.entities, string(category))
}

// IssueRaised implements EntityCounter.
func (r *ExpvarMetricsRecorder) IssueRaised(severity domain.Severity) {
	r.bump(r.issues, string(severity))
}

func (r *ExpvarMetricsRecorder) bump(m map[string]int64, key string) {
	r.mu.Lock()
	m[key]++
	r.mu.Unlock()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// memoryLog is an append-only list safe for concurrent use.
type memoryLog[T any] struct {
	mu    sync.Mutex
	items []T
}

func (l *memoryLog[T]) add(v T) {
	l.mu.Lock()
	l.items = append(l.items, v)
	l.mu.Unlock()
}

func (l *memoryLog[T]) all() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// JSONTraceEntry is one finished span.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTraceTracer writes finished spans as JSON lines and keeps them for
// Entries.
type JSONTraceTracer struct {
	spans memoryLog[JSONTraceEntry]

	encMu sync.Mutex
	enc   *json.Encoder
}

// NewJSONTracer returns a tracer writing to w. With a nil writer spans are
// only retained.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	t := &JSONTraceTracer{}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Entries returns the finished spans in completion order.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry { return t.spans.all() }

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, operation: operation, started: time.Now().UTC()}
}

func (t *JSONTraceTracer) finish(entry JSONTraceEntry) {
	t.spans.add(entry)
	if t.enc == nil {
		return
	}
	t.encMu.Lock()
	_ = t.enc.Encode(entry)
	t.encMu.Unlock()
}

type jsonTraceSpan struct {
	tracer    *JSONTraceTracer
	operation string
	started   time.Time
}

func (s *jsonTraceSpan) End(err error) {
	ended := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation:  s.operation,
		Status:     statusLabel(err == nil),
		DurationMS: float64(ended.Sub(s.started)) / float64(time.Millisecond),
		StartedAt:  s.started,
		EndedAt:    ended,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	s.tracer.finish(entry)
}

// MemoryAuditLog keeps audit entries in memory. The zero value is ready to
// use.
type MemoryAuditLog struct {
	log memoryLog[AuditEntry]
}

// Record implements AuditRecorder.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) { l.log.add(entry) }

// Entries returns a copy of the recorded entries.
func (l *MemoryAuditLog) Entries() []AuditEntry { return l.log.all() }
