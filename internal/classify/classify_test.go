package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAffirmative(t *testing.T) {
	for _, text := range []string{
		"yes", "Yes", "  YES  ", "y", "yeah", "yep", "yup", "sure",
		"ok", "okay", "definitely", "absolutely", "correct", "right", "true",
		"yeah I am", "well, yes please", "yes.",
	} {
		assert.Equal(t, Affirmative, Classify(text), "text %q", text)
	}
}

// Word patterns need only a trailing boundary, so occurrences buried at the
// end of a longer word still count.
func TestClassifyMatchesTrailingWordBoundary(t *testing.T) {
	for _, text := range []string{"eyes on the prize"} {
		assert.Equal(t, Affirmative, Classify(text), "text %q", text)
	}
	for _, text := range []string{"cannot", "i cannot say"} {
		assert.Equal(t, Negative, Classify(text), "text %q", text)
	}
}

func TestClassifyNegative(t *testing.T) {
	for _, text := range []string{
		"no", "No", " n ", "nope", "nah", "never", "negative",
		"incorrect", "wrong", "false", "not really", "nope, sorry", "no thanks",
	} {
		assert.Equal(t, Negative, Classify(text), "text %q", text)
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, text := range []string{
		"", "   ", "maybe", "what do you mean", "hello there",
	} {
		assert.Equal(t, Unknown, Classify(text), "text %q", text)
	}
}

// Text matching both pattern sets deterministically classifies as
// Affirmative because affirmative patterns are checked first.
func TestClassifyAffirmativeWinsTies(t *testing.T) {
	for _, text := range []string{
		"yes, not sure", "yeah no", "no yes",
	} {
		assert.Equal(t, Affirmative, Classify(text), "text %q", text)
	}
}

// Most patterns only count as the whole reply; embedded in a sentence they
// would misfire on ordinary conversation.
func TestClassifyExactPatternsRequireWholeReply(t *testing.T) {
	for _, text := range []string{
		"sure thing", "okay then", "never mind", "that is wrong",
		"hmm", "banana split",
	} {
		assert.Equal(t, Unknown, Classify(text), "text %q", text)
	}
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "affirmative", Affirmative.String())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "unknown", Unknown.String())
}
