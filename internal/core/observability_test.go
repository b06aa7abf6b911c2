package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"energyport/pkg/domain"
)

func TestPrometheusRecorderCountsAndWritesTextfile(t *testing.T) {
	rec := NewPrometheusRecorder()
	ctx := context.Background()
	rec.Observe(ctx, "build.rooms", true, 3*time.Millisecond)
	rec.Observe(ctx, "build.rooms", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond)
	rec.EntityBuilt(domain.EntityRoom)
	rec.EntityBuilt(domain.EntityRoom)
	rec.IssueRaised(domain.SeverityWarn)

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counts[mf.GetName()] += c.GetValue()
			}
		}
	}
	if counts["energyport_operations_total"] != 2 {
		t.Fatalf("expected the unnamed operation to be ignored, got %v", counts)
	}
	if counts["energyport_entities_built_total"] != 2 || counts["energyport_build_issues_total"] != 1 {
		t.Fatalf("unexpected entity and issue counters %v", counts)
	}

	path := filepath.Join(t.TempDir(), "energyport.prom")
	if err := rec.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, name := range []string{"energyport_build_phase_seconds", `category="room"`, `severity="warn"`} {
		if !strings.Contains(string(data), name) {
			t.Errorf("textfile missing %s", name)
		}
	}
}

func TestPrometheusRecorderObservesBuild(t *testing.T) {
	rec := NewPrometheusRecorder()
	if _, _, err := testBuilder(t, WithBuildMetrics(rec)).Build(context.Background(), loadFixture(t, "two_rooms.json")); err != nil {
		t.Fatalf("build: %v", err)
	}
	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var phases int
	for _, mf := range families {
		if mf.GetName() == "energyport_build_phase_seconds" {
			phases = len(mf.GetMetric())
		}
	}
	if phases != len(Phases()) {
		t.Fatalf("expected a histogram per phase, got %d", phases)
	}
}

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if !strings.HasPrefix(rec.Name(), "energyport_metrics_") {
		t.Fatalf("unexpected generated name %q", rec.Name())
	}
	ctx := context.Background()
	rec.Observe(ctx, OpExtract, true, 2*time.Millisecond)
	rec.Observe(ctx, OpExtract, false, 2*time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond)
	rec.EntityBuilt(domain.EntityFace)
	rec.IssueRaised(domain.SeverityError)

	snap := rec.Snapshot()
	if snap.Results[OpExtract]["success"] != 1 || snap.Results[OpExtract]["error"] != 1 || len(snap.Results) != 1 {
		t.Fatalf("unexpected results %v", snap.Results)
	}
	if snap.DurationsMS[OpExtract] != 4 {
		t.Fatalf("expected 4ms total, got %v", snap.DurationsMS[OpExtract])
	}
	if snap.Entities["face"] != 1 || snap.Issues["error"] != 1 {
		t.Fatalf("unexpected counters %v %v", snap.Entities, snap.Issues)
	}

	snap.Results[OpExtract]["success"] = 99
	if rec.Snapshot().Results[OpExtract]["success"] != 1 {
		t.Fatal("snapshot must not alias recorder state")
	}
}

func TestJSONTracerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	_, span := tracer.Start(context.Background(), OpTranslate)
	span.End(nil)
	_, span = tracer.Start(context.Background(), OpLoadModel)
	span.End(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two JSON lines, got %q", buf.String())
	}
	var entry JSONTraceEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("decode span: %v", err)
	}
	if entry.Operation != OpLoadModel || entry.Status != "error" || entry.Error != "boom" {
		t.Fatalf("unexpected span %+v", entry)
	}
	if got := tracer.Entries(); len(got) != 2 || got[0].Status != "success" {
		t.Fatalf("unexpected retained spans %+v", got)
	}
}

func TestMemoryAuditLogCopiesEntries(t *testing.T) {
	log := &MemoryAuditLog{}
	log.Record(context.Background(), AuditEntry{Operation: OpDeleteModel, Key: "a", Status: AuditStatusSuccess})
	entries := log.Entries()
	entries[0].Key = "changed"
	if got := log.Entries(); len(got) != 1 || got[0].Key != "a" {
		t.Fatalf("unexpected audit entries %+v", got)
	}
}

func TestNoopObservers(t *testing.T) {
	ctx := context.Background()
	var l Logger = noopLogger{}
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	noopMetrics{}.Observe(ctx, OpTranslate, true, time.Second)
	noopAudit{}.Record(ctx, AuditEntry{})
	got, span := noopTracer{}.Start(ctx, OpTranslate)
	if got != ctx {
		t.Fatal("noop tracer must return the incoming context")
	}
	span.End(nil)
	if (systemClock{}).Now().Location() != time.UTC {
		t.Fatal("system clock should report UTC")
	}
}
