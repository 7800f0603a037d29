package codeword

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Альтаир", "альтаир"},
		{"альт-аир 2!", "альтаир2"},
		{"  a b c ", "abc"},
		{"...", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name             string
		spoken, expected string
		want             bool
	}{
		{"exact", "альтаир", "альтаир", true},
		{"exact with case and punctuation", "Альт-Аир!", "альтаир", true},
		{"spoken prefix of secret", "альт", "альтаир", true},
		{"spoken substring of secret", "таи", "альтаир", true},
		{"extra trailing speech", "альтаир2", "альтаир", false},
		{"secret inside spoken not matched", "альтаир", "альт", false},
		{"wrong word", "сириус", "альтаир", false},
		{"empty spoken", "", "альтаир", false},
		{"punctuation-only spoken", "?!", "альтаир", false},
		{"empty secret", "альтаир", "", false},
		{"both empty", "", "", false},
		{"latin secret", "Fal-con", "falcon", true},
		{"digits in secret", "код 42", "код42", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.spoken, tt.expected); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.spoken, tt.expected, got, tt.want)
			}
		})
	}
}

func TestMatches_Reflexive(t *testing.T) {
	for _, x := range []string{"альтаир", "falcon", "код42", "a"} {
		if !Matches(x, x) {
			t.Errorf("Matches(%q, %q) = false, want true", x, x)
		}
	}
}
