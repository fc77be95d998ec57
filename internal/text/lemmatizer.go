package text

import (
	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

// MorphologicalNormalizer reduces a token to its canonical dictionary form.
// Implementations must be total: unknown words come back unchanged.
type MorphologicalNormalizer interface {
	Lemma(word string) string
}

// SnowballLemmatizer approximates lemmatization with a Snowball stemmer for
// the configured language. Stemming runs to a fixed point so that the lemma
// of a lemma is itself, which keeps normalization idempotent. Words in an
// unsupported language pass through unchanged.
type SnowballLemmatizer struct {
	language string
}

func NewSnowballLemmatizer(language string) *SnowballLemmatizer {
	return &SnowballLemmatizer{language: language}
}

func (l *SnowballLemmatizer) Lemma(word string) string {
	// Each stemming pass either shortens the word or leaves it alone, so
	// the loop terminates; the cap is a safety net.
	for i := 0; i < 8; i++ {
		stemmed := l.stem(word)
		if stemmed == word || stemmed == "" {
			return word
		}
		word = stemmed
	}
	return word
}

func (l *SnowballLemmatizer) stem(word string) string {
	switch l.language {
	case LanguageRussian:
		return russian.Stem(word, false)
	case LanguageEnglish:
		return english.Stem(word, false)
	default:
		return word
	}
}

// IdentityLemmatizer returns every word unchanged. Useful in tests and for
// languages without a stemmer.
type IdentityLemmatizer struct{}

func (IdentityLemmatizer) Lemma(word string) string { return word }
