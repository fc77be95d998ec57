// Package text turns raw free text into the canonical token sequences the
// recommendation engine works on.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest token kept after splitting.
const MinTokenLength = 3

// Normalizer maps raw text to a canonical token sequence. It is pure and
// never fails: malformed characters are dropped, not rejected. Construct it
// once at startup and share it; it is immutable after construction.
type Normalizer struct {
	stopWords map[string]struct{}
	morph     MorphologicalNormalizer
}

// NewNormalizer builds a normalizer over a fixed stop-word set and an
// injected morphological normalizer.
func NewNormalizer(stopWords []string, morph MorphologicalNormalizer) *Normalizer {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[w] = struct{}{}
	}
	return &Normalizer{stopWords: set, morph: morph}
}

// Normalize runs the full pipeline: lowercase, strip everything that is not
// a Latin/Cyrillic letter, digit or whitespace, split, drop short tokens and
// stop words, lemmatize the survivors. Empty or whitespace-only input yields
// an empty sequence.
func (n *Normalizer) Normalize(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := stripSymbols(strings.ToLower(text))

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) < MinTokenLength {
			continue
		}
		if _, stop := n.stopWords[word]; stop {
			continue
		}
		tokens = append(tokens, n.morph.Lemma(word))
	}
	return tokens
}

// Join renders a token sequence back to normalized text.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func stripSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	if unicode.IsSpace(r) || unicode.IsDigit(r) {
		return true
	}
	return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r)
}
