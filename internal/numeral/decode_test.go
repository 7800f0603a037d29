package numeral

import (
	"strings"
	"testing"

	"call-verification/backend/internal/transcript"
)

func digitsByStrategy(cands []Candidate, s Strategy) []string {
	var out []string
	for _, c := range cands {
		if c.Strategy == s {
			out = append(out, c.Digits)
		}
	}
	return out
}

func TestDecode_Empty(t *testing.T) {
	if got := Decode(""); got != nil {
		t.Errorf("Decode(\"\") = %v, want nil", got)
	}
	if got := Decode("   "); got != nil {
		t.Errorf("Decode(whitespace) = %v, want nil", got)
	}
}

func TestDigitRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single 10-digit run", "4205128383", []string{"4205128383"}},
		{"single 12-digit run", "420512838312", []string{"420512838312"}},
		{"run inside words", "инн 4205128383 кажется", []string{"4205128383"}},
		{"short runs dropped", "420 512 8383", nil},
		{"longest first", "1234567890 123456789012", []string{"123456789012", "1234567890"}},
		{"no digits", "только слова", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := digitsByStrategy(Decode(tt.in), StrategyDigitRun)
			if len(got) != len(tt.want) {
				t.Fatalf("digit runs = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("digit run[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDigitWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means no candidate
	}{
		{
			"ten russian words",
			"четыре два ноль пять один два восемь три восемь три",
			"4205128383",
		},
		{
			"twelve russian words",
			"четыре два ноль пять один два восемь три восемь три один два",
			"420512838312",
		},
		{"ten english words", "four two zero five one two eight three eight three", "4205128383"},
		{"ten bare digits", "4 2 0 5 1 2 8 3 8 3", "4205128383"},
		{"digits mixed with words", "4 два ноль 5 один 2 восемь 3 восемь три", "4205128383"},
		{"alternate spellings", "нуль раз два три четыре пять шесть семь восемь девять", "0123456789"},
		{"wrong count", "один два три", ""},
		{"unmapped token", "четыре два ноль пять один два восемь три восемь стоп", ""},
		{"eleven words rejected", "один один один один один один один один один один один", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := digitsByStrategy(Decode(tt.in), StrategyDigitWords)
			switch {
			case tt.want == "" && len(got) != 0:
				t.Errorf("digit words = %v, want none", got)
			case tt.want != "" && (len(got) != 1 || got[0] != tt.want):
				t.Errorf("digit words = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			// "сорок два" collapses to 42, the rest are lone digits.
			"tens then lone digits",
			"сорок два ноль пять один два восемь три восемь три",
			"4205128383",
		},
		{
			"tens pairs",
			"сорок два пятьдесят один двадцать восемь тридцать восемь сорок три",
			"4251283843",
		},
		{"lone tens word emits two digits", "сорок двенадцать ноль пять один два восемь три", "4012051283"},
		{"teens emit two digits", "двенадцать ноль пять один два восемь три восемь три", "1205128383"},
		{"unknown token aborts", "сорок два банан пять один два восемь три восемь три", ""},
		{"wrong total length", "сорок два ноль пять", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := digitsByStrategy(Decode(tt.in), StrategyCompound)
			switch {
			case tt.want == "" && len(got) != 0:
				t.Errorf("compound = %v, want none", got)
			case tt.want != "" && (len(got) != 1 || got[0] != tt.want):
				t.Errorf("compound = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestCompound_HundredsPadding(t *testing.T) {
	// Four groups of three digits, read as hundreds groups: 420 512 838 312.
	in := "четыреста двадцать пятьсот двенадцать восемьсот тридцать восемь триста двенадцать"
	got := digitsByStrategy(Decode(in), StrategyCompoundGrouped)
	if len(got) != 1 || got[0] != "420512838312" {
		t.Fatalf("grouped compound = %v, want [420512838312]", got)
	}
	// "сто пять" pads the tens position: 105, not 15.
	in = "сто пять сто пять сто пять один"
	got = digitsByStrategy(Decode(in), StrategyCompoundGrouped)
	if len(got) != 1 || got[0] != "1051051051" {
		t.Fatalf("grouped compound = %v, want [1051051051]", got)
	}
}

func TestCompound_GroupedBoundTighter(t *testing.T) {
	// Eleven tokens pass the wide bound but not the grouped one.
	in := "двенадцать один один один один один один один один один один"
	cands := Decode(in)
	if got := digitsByStrategy(cands, StrategyCompound); len(got) != 1 || got[0] != "121111111111" {
		t.Errorf("compound candidates = %v, want [121111111111]", got)
	}
	if got := digitsByStrategy(cands, StrategyCompoundGrouped); len(got) != 0 {
		t.Errorf("grouped candidates = %v, want none above %d tokens", got, groupedMaxTokens)
	}
}

func TestCompound_GreedyNoBacktracking(t *testing.T) {
	// Greedy: "сорок два" always merges to 42 even though treating "два" as a
	// lone digit would give a different reading; twelve tokens collapse to
	// twelve digits only because of the merge.
	in := "сорок два два два два два два два два два два два"
	if got := digitsByStrategy(Decode(in), StrategyCompound); len(got) != 1 || got[0] != "422222222222" {
		t.Errorf("greedy compound = %v, want [422222222222]", got)
	}
}

func TestDecode_StrategyPriorityOrder(t *testing.T) {
	// A transcript that satisfies both the digit-run and word strategies keeps
	// digit runs first.
	in := "4205128383 сорок два ноль пять один два восемь три восемь три"
	cands := Decode(in)
	if len(cands) == 0 || cands[0].Strategy != StrategyDigitRun {
		t.Fatalf("first candidate = %+v, want digit_run", cands)
	}
}

func TestDecode_AfterNormalize(t *testing.T) {
	raw := "Сорок-два, ноль пять! Один два восемь три восемь три."
	cands := Decode(transcript.Normalize(raw))
	got := digitsByStrategy(cands, StrategyCompound)
	if len(got) != 1 || got[0] != "4205128383" {
		t.Fatalf("compound after normalize = %v, want [4205128383]", got)
	}
}

func TestStrategyString(t *testing.T) {
	for s, want := range map[Strategy]string{
		StrategyDigitRun:        "digit_run",
		StrategyDigitWords:      "digit_words",
		StrategyCompound:        "compound",
		StrategyCompoundGrouped: "compound_grouped",
	} {
		if s.String() != want {
			t.Errorf("Strategy(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
	if !strings.HasPrefix(Strategy(99).String(), "strategy(") {
		t.Errorf("unknown strategy String() = %q", Strategy(99).String())
	}
}
