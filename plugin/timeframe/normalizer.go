package timeframe

import (
	"regexp"
	"strconv"
	"strings"
)

// commonFixes maps frequent misspellings of date/time words to their
// correct spelling. Whole-word match only.
var commonFixes = map[string]string{
	"moring":     "morning",
	"tommorrow":  "tomorrow",
	"tommorow":   "tomorrow",
	"wednessday": "wednesday",
	"wednsday":   "wednesday",
	"wednesay":   "wednesday",
	"thuersday":  "thursday",
	"thrusday":   "thursday",
	"firday":     "friday",
	"mnth":       "month",
	"mnths":      "months",
}

// wordNumbers maps spelled-out small numbers to their digit value.
var wordNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
	"forty": 40,
}

var (
	fixPattern        = wordAlternation(keysOf(commonFixes))
	wordNumberPattern = wordAlternation(keysOf(wordNumbers))
	tomorrowPattern   = regexp.MustCompile(`\btomm?orr?ow'?s?\b`)
)

// Normalize lowercases the message, corrects known misspellings, converts
// spelled-out numbers to digits and collapses possessive forms of
// "tomorrow". It is a total function: unmatched text passes through
// unchanged.
func Normalize(message string) string {
	text := strings.ToLower(strings.TrimSpace(message))
	text = fixPattern.ReplaceAllStringFunc(text, func(w string) string {
		if fixed, ok := commonFixes[w]; ok {
			return fixed
		}
		return w
	})
	text = wordNumberPattern.ReplaceAllStringFunc(text, func(w string) string {
		if n, ok := wordNumbers[w]; ok {
			return strconv.Itoa(n)
		}
		return w
	})
	text = tomorrowPattern.ReplaceAllString(text, "tomorrow")
	return text
}

// wordAlternation builds a whole-word alternation pattern from the given
// words, longest first so longer words are not shadowed by their prefixes.
func wordAlternation(words []string) *regexp.Regexp {
	sorted := make([]string, len(words))
	copy(sorted, words)
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	escaped := make([]string, len(sorted))
	for i, w := range sorted {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(escaped, "|") + `)\b`)
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
