// Package producer ships verification events to Kafka for the worker to drain.
package producer

import (
	"context"

	"call-verification/backend/internal/telemetry"
)

// Producer emits verification events to a message broker.
type Producer interface {
	Emit(ctx context.Context, event *telemetry.Event) error
	Close() error
}
