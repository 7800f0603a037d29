package telemetry

import (
	"context"
	"log"
	"time"
)

// emitTimeout is the max time allowed for a single async emit.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration is how long to wait after the AGI listener stops
// before shutting down OTel providers, so in-flight async emits can finish.
// Must be >= emitTimeout.
const ShutdownDrainDuration = emitTimeout

// EventEmitter emits verification events (e.g. to Kafka or OTel logs).
// Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}

// EmitAsync runs Emit in a goroutine with a short timeout so the call leg is
// never blocked on telemetry. emitter and event may be nil; then EmitAsync
// returns without starting a goroutine. The goroutine uses a fresh context so
// hangup does not abort an in-flight emit.
func EmitAsync(emitter EventEmitter, event *Event) {
	if emitter == nil || event == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(ctx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}

// Multi returns an emitter that fans out to all non-nil emitters and reports
// the last error. With no emitters it returns nil, which EmitAsync treats as
// disabled telemetry.
func Multi(emitters ...EventEmitter) EventEmitter {
	var active []EventEmitter
	for _, e := range emitters {
		if e != nil {
			active = append(active, e)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return multiEmitter(active)
}

type multiEmitter []EventEmitter

func (m multiEmitter) Emit(ctx context.Context, event *Event) error {
	var lastErr error
	for _, e := range m {
		if err := e.Emit(ctx, event); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
