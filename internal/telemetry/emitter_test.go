package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

func (r *recordingEmitter) Emit(ctx context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventIdentify, "SUCCESS", "call-1", "+79990001122")
	if e.ID == "" {
		t.Error("ID should be set")
	}
	if e.CallUniqueID != "call-1" || e.CallerNumber != "+79990001122" {
		t.Errorf("call fields = %q/%q", e.CallUniqueID, e.CallerNumber)
	}
	if e.EventType != EventIdentify || e.Status != "SUCCESS" {
		t.Errorf("type/status = %q/%q", e.EventType, e.Status)
	}
	if e.Source != "agi_server" {
		t.Errorf("Source = %q", e.Source)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestEvent_WithMetadata(t *testing.T) {
	e := NewEvent(EventIdentify, "INVALID", "call-1", "").
		WithMetadata(map[string]string{"transcript": "no digits here"})
	var meta map[string]string
	if err := json.Unmarshal(e.Metadata, &meta); err != nil {
		t.Fatalf("metadata not valid JSON: %v", err)
	}
	if meta["transcript"] != "no digits here" {
		t.Errorf("metadata = %v", meta)
	}

	// Unmarshalable payloads leave Metadata empty, not broken.
	e = NewEvent(EventIdentify, "INVALID", "call-1", "").WithMetadata(func() {})
	if e.Metadata != nil {
		t.Errorf("Metadata = %s, want empty", e.Metadata)
	}
}

func TestEmitAsync(t *testing.T) {
	rec := &recordingEmitter{}
	EmitAsync(rec, NewEvent(EventIdentify, "SUCCESS", "call-1", ""))

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if rec.count() != 1 {
		t.Fatalf("events emitted = %d, want 1", rec.count())
	}
}

func TestEmitAsync_NilSafe(t *testing.T) {
	EmitAsync(nil, NewEvent(EventIdentify, "SUCCESS", "call-1", ""))
	EmitAsync(&recordingEmitter{}, nil)
}

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Error("Multi() should be nil with no emitters")
	}
	if Multi(nil, nil) != nil {
		t.Error("Multi(nil, nil) should be nil")
	}

	a := &recordingEmitter{}
	single := Multi(nil, a)
	if single != a {
		t.Error("Multi with a single emitter should return it unwrapped")
	}
	if err := single.Emit(context.Background(), NewEvent(EventIdentify, "SUCCESS", "call-0", "")); err != nil {
		t.Errorf("single Emit: %v", err)
	}

	b := &recordingEmitter{err: errors.New("kafka down")}
	m := Multi(a, b)
	err := m.Emit(context.Background(), NewEvent(EventIdentify, "SUCCESS", "call-1", ""))
	if err == nil {
		t.Error("Emit should surface the failing emitter's error")
	}
	if a.count() != 2 || b.count() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", a.count(), b.count())
	}
}
