package repository

import (
	"context"
	"database/sql"
	"errors"

	"call-verification/backend/internal/attempt/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an attempt repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const attemptColumns = `id, call_uniqueid, caller_number, spoken_inn, matched_client_id,
	spoken_codeword, success, problem_text, problem_recognized_at, created_at, updated_at`

// FindOrCreate inserts an unsuccessful attempt for (callID, spokenINN) unless
// one already exists, then returns the row. The insert races safely: on a
// concurrent duplicate the unique index makes ON CONFLICT DO NOTHING a no-op
// and the follow-up select sees the winner's row.
func (r *PostgresRepository) FindOrCreate(ctx context.Context, callID, spokenINN, callerNumber string) (*domain.Attempt, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_logs (call_uniqueid, caller_number, spoken_inn, success, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, false, now(), now())
		ON CONFLICT (call_uniqueid, spoken_inn) DO NOTHING`,
		callID, callerNumber, spokenINN)
	if err != nil {
		return nil, err
	}
	return r.GetByCallAndINN(ctx, callID, spokenINN)
}

// RecordIdentification upserts the attempt with the matched-client reference.
// caller_number is only filled in when previously absent; success is untouched.
func (r *PostgresRepository) RecordIdentification(ctx context.Context, callID, spokenINN, callerNumber string, matchedClientID *int64) error {
	matched := sql.NullInt64{}
	if matchedClientID != nil {
		matched = sql.NullInt64{Int64: *matchedClientID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_logs (call_uniqueid, caller_number, spoken_inn, matched_client_id, success, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, false, now(), now())
		ON CONFLICT (call_uniqueid, spoken_inn) DO UPDATE
		SET matched_client_id = EXCLUDED.matched_client_id,
		    caller_number     = COALESCE(verification_logs.caller_number, EXCLUDED.caller_number),
		    updated_at        = now()`,
		callID, callerNumber, spokenINN, matched)
	return err
}

// ConfirmCodeword is the one-way success latch: the conditional update only
// touches rows whose success flag is not yet true, so a second confirmation
// for the same key reports false and changes nothing.
func (r *PostgresRepository) ConfirmCodeword(ctx context.Context, callID, spokenINN, spokenCodeword string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_logs
		SET success = true,
		    spoken_codeword = $3,
		    updated_at = now()
		WHERE call_uniqueid = $1
		  AND spoken_inn = $2
		  AND success IS NOT TRUE`,
		callID, spokenINN, spokenCodeword)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AttachProblemText updates the most recent attempt for the call, narrowed by
// spokenINN when non-empty. When no attempt exists yet a new unsuccessful row
// is created so the problem description is not lost.
func (r *PostgresRepository) AttachProblemText(ctx context.Context, callID, spokenINN, callerNumber, text string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_logs
		SET problem_text = $2,
		    problem_recognized_at = now(),
		    caller_number = COALESCE(caller_number, NULLIF($3, '')),
		    updated_at = now()
		WHERE id = (
			SELECT id FROM verification_logs
			WHERE call_uniqueid = $1 AND ($4 = '' OR spoken_inn = $4)
			ORDER BY id DESC
			LIMIT 1
		)`,
		callID, text, callerNumber, spokenINN)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO verification_logs (call_uniqueid, caller_number, spoken_inn, success, problem_text, problem_recognized_at, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), false, $4, now(), now(), now())`,
		callID, callerNumber, spokenINN, text)
	return err
}

// GetByCallAndINN returns the most recent attempt for (callID, spokenINN), or
// nil if not found. It returns an error only for database failures.
func (r *PostgresRepository) GetByCallAndINN(ctx context.Context, callID, spokenINN string) (*domain.Attempt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+attemptColumns+`
		FROM verification_logs
		WHERE call_uniqueid = $1 AND spoken_inn = $2
		ORDER BY id DESC
		LIMIT 1`,
		callID, spokenINN)
	a, err := scanAttempt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func scanAttempt(row *sql.Row) (*domain.Attempt, error) {
	var a domain.Attempt
	var callerNumber, spokenINN, spokenCodeword, problemText sql.NullString
	var matchedClientID sql.NullInt64
	var problemAt sql.NullTime
	err := row.Scan(&a.ID, &a.CallUniqueID, &callerNumber, &spokenINN, &matchedClientID,
		&spokenCodeword, &a.Success, &problemText, &problemAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if callerNumber.Valid {
		a.CallerNumber = callerNumber.String
	}
	if spokenINN.Valid {
		a.SpokenINN = spokenINN.String
	}
	if matchedClientID.Valid {
		v := matchedClientID.Int64
		a.MatchedClientID = &v
	}
	if spokenCodeword.Valid {
		a.SpokenCodeword = spokenCodeword.String
	}
	if problemText.Valid {
		a.ProblemText = problemText.String
	}
	if problemAt.Valid {
		t := problemAt.Time
		a.ProblemRecognizedAt = &t
	}
	return &a, nil
}
