package domain

import "time"

// Attempt is one persisted record of a single call's verification progress.
// A call is correlated by CallUniqueID; the pair (CallUniqueID, SpokenINN) is
// unique, and Success latches: once true it is never reset.
type Attempt struct {
	ID           int64
	CallUniqueID string
	CallerNumber string
	// SpokenINN is the decoded identifier as a digit string. The canonical
	// string form keeps leading zeros that the BIGINT clients directory
	// cannot represent.
	SpokenINN           string
	MatchedClientID     *int64
	SpokenCodeword      string
	Success             bool
	ProblemText         string
	ProblemRecognizedAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
