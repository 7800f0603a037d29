// Package identifier validates decoded digit strings against the legal
// tax-identifier lengths and carries the canonical form through the system.
package identifier

import (
	"errors"
	"fmt"
	"strconv"

	"call-verification/backend/internal/numeral"
)

// ErrNoIdentifier is returned when no candidate has a legal digit length.
var ErrNoIdentifier = errors.New("no identifier found in transcript")

// Identifier is a validated tax identifier of exactly 10 or 12 digits.
// The canonical form is the digit string, so leading zeros are preserved;
// Value is only for lookups against the BIGINT clients directory, where
// leading zeros are lost by the schema, not by this package.
type Identifier struct {
	digits string
}

// Parse validates a digit string as an Identifier.
func Parse(digits string) (Identifier, error) {
	if len(digits) != numeral.MinIdentifierLen && len(digits) != numeral.MaxIdentifierLen {
		return Identifier{}, fmt.Errorf("identifier must be %d or %d digits, got %d", numeral.MinIdentifierLen, numeral.MaxIdentifierLen, len(digits))
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Identifier{}, fmt.Errorf("identifier contains non-digit %q", digits[i])
		}
	}
	return Identifier{digits: digits}, nil
}

// FromCandidates picks the first candidate, in strategy priority order, whose
// digit length is exactly 10 or 12. Candidates are never truncated or padded.
// Returns ErrNoIdentifier when nothing qualifies.
func FromCandidates(candidates []numeral.Candidate) (Identifier, error) {
	for _, c := range candidates {
		if c.Digits == "" {
			continue
		}
		id, err := Parse(c.Digits)
		if err != nil {
			continue
		}
		return id, nil
	}
	return Identifier{}, ErrNoIdentifier
}

// String returns the canonical digit string.
func (id Identifier) String() string { return id.digits }

// IsZero reports whether the identifier is the zero value (no digits).
func (id Identifier) IsZero() bool { return id.digits == "" }

// Value returns the identifier as an integer for directory lookup.
func (id Identifier) Value() int64 {
	v, _ := strconv.ParseInt(id.digits, 10, 64)
	return v
}
