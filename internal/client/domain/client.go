package domain

import "time"

// Client is an account in the clients directory, keyed by INN.
// The verification core only reads clients; administration lives elsewhere.
type Client struct {
	ID          int64
	INN         int64
	CompanyName string
	CodeWord    string
	PhoneNumber string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
