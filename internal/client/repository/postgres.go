package repository

import (
	"context"
	"database/sql"
	"errors"

	"call-verification/backend/internal/client/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a clients repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetActiveByINN returns the active client for inn, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetActiveByINN(ctx context.Context, inn int64) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, inn, company_name, code_word, phone_number, active, created_at, updated_at
		FROM clients
		WHERE inn = $1 AND active = true`, inn)

	var c domain.Client
	var phone sql.NullString
	err := row.Scan(&c.ID, &c.INN, &c.CompanyName, &c.CodeWord, &phone, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if phone.Valid {
		c.PhoneNumber = phone.String
	}
	return &c, nil
}
