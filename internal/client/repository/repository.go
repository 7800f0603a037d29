package repository

import (
	"context"

	"call-verification/backend/internal/client/domain"
)

// Repository defines the read side of the clients directory.
type Repository interface {
	// GetActiveByINN returns the active client with the given INN, or nil
	// when no such client exists or the client is inactive.
	GetActiveByINN(ctx context.Context, inn int64) (*domain.Client, error)
}
