package numeral

// Digit-word lexicons for spoken identifiers. Russian is the primary call
// language; English is kept because the recognizer occasionally flips locale
// mid-utterance. Keys must already be normalized (lower-case, no punctuation).

// unitWords maps single-digit words to their digit value 0..9.
var unitWords = map[string]int{
	// Russian
	"ноль":    0,
	"нуль":    0,
	"один":    1,
	"одна":    1,
	"одно":    1,
	"раз":     1,
	"два":     2,
	"две":     2,
	"три":     3,
	"четыре":  4,
	"пять":    5,
	"шесть":   6,
	"семь":    7,
	"восемь":  8,
	"восем":   8, // frequent recognizer truncation
	"девять":  9,
	// English
	"zero":  0,
	"oh":    0,
	"o":     0,
	"nought": 0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

// teenWords maps 10..19 words to their value. These always emit two digits.
var teenWords = map[string]int{
	"десять":       10,
	"одиннадцать":  11,
	"двенадцать":   12,
	"тринадцать":   13,
	"четырнадцать": 14,
	"пятнадцать":   15,
	"шестнадцать":  16,
	"семнадцать":   17,
	"восемнадцать": 18,
	"девятнадцать": 19,
}

// tensWords maps 20..90 words to their value.
var tensWords = map[string]int{
	"двадцать":    20,
	"тридцать":    30,
	"сорок":       40,
	"пятьдесят":   50,
	"шестьдесят":  60,
	"семьдесят":   70,
	"восемьдесят": 80,
	"девяносто":   90,
}

// hundredsWords maps 100..900 words to their value.
var hundredsWords = map[string]int{
	"сто":       100,
	"двести":    200,
	"триста":    300,
	"четыреста": 400,
	"пятьсот":   500,
	"шестьсот":  600,
	"семьсот":   700,
	"восемьсот": 800,
	"девятьсот": 900,
}

// unitDigit returns the digit for a single-digit word. A bare digit
// character counts too: recognizers emit "4 2 ноль 5" style mixes.
func unitDigit(token string) (int, bool) {
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return int(token[0] - '0'), true
	}
	d, ok := unitWords[token]
	return d, ok
}
