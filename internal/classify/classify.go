// Package classify maps free-form replies to a yes/no/unknown result.
package classify

import "strings"

// Result of classifying a reply.
type Result int

const (
	Unknown Result = iota
	Affirmative
	Negative
)

func (r Result) String() string {
	switch r {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// Exact patterns match only when the whole reply equals the pattern. Word
// patterns also match inside longer replies wherever the occurrence ends at
// a word boundary; keeping that set small avoids false hits like "correct"
// inside "incorrect".
var (
	affirmativeExact = []string{
		"yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay",
		"definitely", "absolutely", "correct", "right", "true",
	}
	affirmativeWords = []string{"yes", "yeah"}

	negativeExact = []string{
		"no", "n", "nope", "nah", "never", "not", "negative",
		"incorrect", "wrong", "false",
	}
	negativeWords = []string{"no", "nope", "not"}
)

// Classify normalizes text to lowercase and trims whitespace, then matches it
// against the affirmative and negative pattern sets. Affirmative patterns are
// checked first, so text containing both kinds of pattern classifies as
// Affirmative; that precedence is deliberate and covered by tests.
func Classify(text string) Result {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Unknown
	}
	if matches(text, affirmativeExact, affirmativeWords) {
		return Affirmative
	}
	if matches(text, negativeExact, negativeWords) {
		return Negative
	}
	return Unknown
}

func matches(text string, exact, words []string) bool {
	for _, pattern := range exact {
		if text == pattern {
			return true
		}
	}
	for _, word := range words {
		if containsWord(text, word) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in text ending at a word
// boundary, the equivalent of a word\b match on the lowered text. The
// occurrence may start mid-word: "cannot" carries "not", "eyes" carries
// "yes".
func containsWord(text, word string) bool {
	for i := 0; i+len(word) <= len(text); i++ {
		if text[i:i+len(word)] != word {
			continue
		}
		if end := i + len(word); end < len(text) && isWordChar(text[end]) {
			continue
		}
		return true
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
