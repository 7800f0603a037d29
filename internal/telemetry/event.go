// Package telemetry defines verification events and best-effort emitters.
// Events describe what the verification core decided for a call leg; they are
// never on the critical path and failures only produce log lines.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the verification service.
const (
	EventIdentify       = "identify"
	EventCodewordCheck  = "codeword_check"
	EventProblemCapture = "problem_capture"
)

// Event is one verification decision for a call leg, serialized as JSON for
// Kafka and Loki and mirrored into OTel log records.
type Event struct {
	ID           string          `json:"id"`
	CallUniqueID string          `json:"callUniqueid"`
	CallerNumber string          `json:"callerNumber,omitempty"`
	EventType    string          `json:"eventType"`
	Status       string          `json:"status"`
	Source       string          `json:"source"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewEvent returns an Event with a fresh ID and the current UTC timestamp.
func NewEvent(eventType, status, callID, callerNumber string) *Event {
	return &Event{
		ID:           uuid.New().String(),
		CallUniqueID: callID,
		CallerNumber: callerNumber,
		EventType:    eventType,
		Status:       status,
		Source:       "agi_server",
		CreatedAt:    time.Now().UTC(),
	}
}

// WithMetadata attaches a JSON-marshalable payload to the event and returns
// it. Marshal errors leave Metadata empty; the event is still emitted.
func (e *Event) WithMetadata(v any) *Event {
	if v == nil {
		return e
	}
	if raw, err := json.Marshal(v); err == nil {
		e.Metadata = raw
	}
	return e
}
