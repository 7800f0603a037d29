package identifier

import (
	"errors"
	"testing"

	"call-verification/backend/internal/numeral"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"ten digits", "4205128383", false},
		{"twelve digits", "420512838312", false},
		{"leading zeros kept", "0205128383", false},
		{"eleven digits", "42051283831", true},
		{"nine digits", "420512838", true},
		{"empty", "", true},
		{"non-digit", "42051283ab", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if id.String() != tt.in {
				t.Errorf("String() = %q, want %q", id.String(), tt.in)
			}
		})
	}
}

func TestParse_LeadingZeros(t *testing.T) {
	id, err := Parse("0205128383")
	if err != nil {
		t.Fatal(err)
	}
	if id.String() != "0205128383" {
		t.Errorf("String() = %q, leading zero lost", id.String())
	}
	if id.Value() != 205128383 {
		t.Errorf("Value() = %d, want 205128383", id.Value())
	}
}

func TestFromCandidates(t *testing.T) {
	tests := []struct {
		name       string
		candidates []numeral.Candidate
		want       string
		wantErr    bool
	}{
		{
			"first valid wins",
			[]numeral.Candidate{
				{Digits: "4205128383", Strategy: numeral.StrategyDigitRun},
				{Digits: "9999999999", Strategy: numeral.StrategyDigitWords},
			},
			"4205128383", false,
		},
		{
			"invalid lengths skipped",
			[]numeral.Candidate{
				{Digits: "42051283831", Strategy: numeral.StrategyDigitRun}, // 11 digits
				{Digits: "420512838312", Strategy: numeral.StrategyCompound},
			},
			"420512838312", false,
		},
		{
			"empty candidates skipped",
			[]numeral.Candidate{
				{Digits: "", Strategy: numeral.StrategyDigitRun},
				{Digits: "4205128383", Strategy: numeral.StrategyCompound},
			},
			"4205128383", false,
		},
		{"nothing qualifies", []numeral.Candidate{{Digits: "123"}}, "", true},
		{"no candidates", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FromCandidates(tt.candidates)
			if tt.wantErr {
				if !errors.Is(err, ErrNoIdentifier) {
					t.Fatalf("err = %v, want ErrNoIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if id.String() != tt.want {
				t.Errorf("identifier = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	var id Identifier
	if !id.IsZero() {
		t.Error("zero value IsZero() = false")
	}
	id, _ = Parse("4205128383")
	if id.IsZero() {
		t.Error("parsed identifier IsZero() = true")
	}
}
