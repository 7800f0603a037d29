package repository

import (
	"context"

	"call-verification/backend/internal/attempt/domain"
)

// Repository defines persistence for verification attempts.
//
// Invocations for the same call may arrive from independent processes, so
// uniqueness and the success latch are enforced in SQL, not in memory.
type Repository interface {
	// FindOrCreate returns the attempt for (callID, spokenINN), inserting an
	// unsuccessful row first if none exists. Idempotent under concurrency:
	// the unique index on the pair guarantees a single row.
	FindOrCreate(ctx context.Context, callID, spokenINN, callerNumber string) (*domain.Attempt, error)

	// RecordIdentification upserts the attempt with the matched-client
	// reference (nil when the directory had no active client). It never
	// modifies the success flag.
	RecordIdentification(ctx context.Context, callID, spokenINN, callerNumber string, matchedClientID *int64) error

	// ConfirmCodeword sets success=true and stores the spoken codeword, but
	// only on a row whose success flag is not yet true. Returns whether a row
	// was flipped; an already-successful or missing row both return false.
	ConfirmCodeword(ctx context.Context, callID, spokenINN, spokenCodeword string) (bool, error)

	// AttachProblemText sets the problem description on the most recent
	// attempt for the call, narrowed by spokenINN when non-empty. When the
	// call has no attempt yet, a new unsuccessful row is created.
	AttachProblemText(ctx context.Context, callID, spokenINN, callerNumber, text string) error

	// GetByCallAndINN returns the most recent attempt for (callID, spokenINN),
	// or nil if none exists.
	GetByCallAndINN(ctx context.Context, callID, spokenINN string) (*domain.Attempt, error)
}
