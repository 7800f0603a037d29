// Package numeral turns normalized speech transcripts into candidate digit
// strings. Each strategy is a pure function over the transcript; strategies
// are independent and their output order is the validator's priority order.
package numeral

import (
	"fmt"
	"sort"
	"strings"
)

// Legal identifier lengths. Candidates of any other length are still emitted
// by some strategies (digit runs); the validator filters them.
const (
	MinIdentifierLen = 10
	MaxIdentifierLen = 12
)

// Token-count bounds for the compound grammar. The wide pass covers digit-by-
// digit dictation mixed with tens words; the grouped pass covers readings in
// three-digit groups (three groups of three plus a trailing digit, or four
// groups of three).
const (
	compoundMaxTokens = 12
	groupedMaxTokens  = 10
)

// Strategy identifies which decoding strategy produced a candidate.
type Strategy int

const (
	// StrategyDigitRun extracts maximal ASCII digit runs from the text.
	StrategyDigitRun Strategy = iota
	// StrategyDigitWords maps exactly 10 or 12 single-digit words.
	StrategyDigitWords
	// StrategyCompound walks a greedy hundreds/tens/units grammar.
	StrategyCompound
	// StrategyCompoundGrouped is the compound grammar with the tighter
	// token bound for three-digit group readings.
	StrategyCompoundGrouped
)

// String returns the strategy name for logs and test failures.
func (s Strategy) String() string {
	switch s {
	case StrategyDigitRun:
		return "digit_run"
	case StrategyDigitWords:
		return "digit_words"
	case StrategyCompound:
		return "compound"
	case StrategyCompoundGrouped:
		return "compound_grouped"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Candidate is one unvalidated digit string and the strategy that produced it.
type Candidate struct {
	Digits   string
	Strategy Strategy
}

// Decode runs all strategies against the normalized transcript and returns
// their candidates in strategy priority order. Empty or whitespace-only input
// yields no candidates. The caller picks the first candidate that validates.
func Decode(normalized string) []Candidate {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}
	var out []Candidate
	out = append(out, digitRuns(normalized)...)
	out = append(out, digitWords(normalized)...)
	out = append(out, compound(normalized, compoundMaxTokens, StrategyCompound)...)
	out = append(out, compound(normalized, groupedMaxTokens, StrategyCompoundGrouped)...)
	return out
}

// digitRuns extracts maximal runs of ASCII digits from the text, without
// tokenizing, and keeps runs of at least the minimum legal length, longest
// first. The sort is stable so equal-length runs keep transcript order.
func digitRuns(text string) []Candidate {
	var runs []string
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, text[start:])
	}
	sort.SliceStable(runs, func(i, j int) bool { return len(runs[i]) > len(runs[j]) })
	var out []Candidate
	for _, r := range runs {
		if len(r) >= MinIdentifierLen {
			out = append(out, Candidate{Digits: r, Strategy: StrategyDigitRun})
		}
	}
	return out
}

// digitWords maps a transcript of exactly 10 or 12 tokens where every token
// is a single-digit word or a bare digit. One unmapped token means no
// candidate.
func digitWords(text string) []Candidate {
	tokens := strings.Fields(text)
	if n := len(tokens); n != MinIdentifierLen && n != MaxIdentifierLen {
		return nil
	}
	var b strings.Builder
	b.Grow(len(tokens))
	for _, tok := range tokens {
		d, ok := unitDigit(tok)
		if !ok {
			return nil
		}
		b.WriteByte(byte('0' + d))
	}
	return []Candidate{{Digits: b.String(), Strategy: StrategyDigitWords}}
}

// compound walks the tokens left to right with a greedy longest-match
// hundreds/tens/units grammar and concatenates the emitted digit groups.
// The grammar never backtracks: once a production matches, it is committed,
// even when a different split would have validated. A token outside the
// lexicon aborts the whole strategy. The accumulated digits form a candidate
// only when their length is exactly 10 or 12.
func compound(text string, maxTokens int, strategy Strategy) []Candidate {
	tokens := strings.Fields(text)
	if len(tokens) == 0 || len(tokens) > maxTokens {
		return nil
	}
	var b strings.Builder
	i := 0
	for i < len(tokens) {
		group, consumed, ok := matchGroup(tokens[i:])
		if !ok {
			return nil
		}
		b.WriteString(group)
		i += consumed
	}
	digits := b.String()
	if n := len(digits); n != MinIdentifierLen && n != MaxIdentifierLen {
		return nil
	}
	return []Candidate{{Digits: digits, Strategy: strategy}}
}

// matchGroup matches one number group at the head of tokens and returns its
// digit representation, the number of tokens consumed, and whether anything
// matched. Group width is fixed by the leading word: a hundreds word emits
// three digits (inner positions zero-padded), a tens or teens word emits two,
// a lone unit word emits one.
func matchGroup(tokens []string) (string, int, bool) {
	head := tokens[0]

	if h, ok := hundredsWords[head]; ok {
		value := h
		consumed := 1
		if len(tokens) > consumed {
			if t, ok := teenWords[tokens[consumed]]; ok {
				value += t
				consumed++
			} else if t, ok := tensWords[tokens[consumed]]; ok {
				value += t
				consumed++
				if len(tokens) > consumed {
					if u, ok := unitDigit(tokens[consumed]); ok {
						value += u
						consumed++
					}
				}
			} else if u, ok := unitDigit(tokens[consumed]); ok {
				value += u
				consumed++
			}
		}
		return fmt.Sprintf("%03d", value), consumed, true
	}

	if t, ok := teenWords[head]; ok {
		return fmt.Sprintf("%02d", t), 1, true
	}

	if t, ok := tensWords[head]; ok {
		value := t
		consumed := 1
		if len(tokens) > consumed {
			if u, ok := unitDigit(tokens[consumed]); ok {
				value += u
				consumed++
			}
		}
		return fmt.Sprintf("%02d", value), consumed, true
	}

	if u, ok := unitDigit(head); ok {
		return fmt.Sprintf("%d", u), 1, true
	}

	return "", 0, false
}
