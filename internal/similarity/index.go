// Package similarity scores token sequences against each other in a shared
// TF-IDF vector space.
package similarity

import (
	"math"
	"sort"
)

// MaxVocabularySize caps the joint vocabulary. When exceeded, the terms with
// the highest document frequency are retained (ties broken by first-seen
// order), bounding memory and compute for large corpora.
const MaxVocabularySize = 5000

// Score builds a joint unigram+bigram vocabulary over the query document and
// every corpus document, weights terms with smoothed TF-IDF, and returns the
// cosine similarity of each corpus document against the query. Results are
// in [0,1], one per corpus document in input order. An empty corpus or an
// empty query yields all zeros without building any vocabulary.
func Score(queryTokens []string, corpus [][]string) []float64 {
	scores := make([]float64, len(corpus))
	if len(corpus) == 0 || len(queryTokens) == 0 {
		return scores
	}

	docs := make([][]string, 0, len(corpus)+1)
	docs = append(docs, terms(queryTokens))
	for _, tokens := range corpus {
		docs = append(docs, terms(tokens))
	}

	vocab := buildVocabulary(docs)

	totalDocs := float64(len(docs))
	idf := make([]float64, len(vocab.index))
	for term, i := range vocab.index {
		// Smoothed IDF: terms present in every document keep a
		// positive weight instead of collapsing to zero.
		idf[i] = math.Log((1+totalDocs)/(1+float64(vocab.docFreq[term]))) + 1
	}

	query := vectorize(docs[0], vocab.index, idf)
	for i, doc := range docs[1:] {
		scores[i] = dot(query, vectorize(doc, vocab.index, idf))
	}
	return scores
}

// terms expands a token sequence into its unigrams and bigrams.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

type vocabulary struct {
	index   map[string]int
	docFreq map[string]int
}

func buildVocabulary(docs [][]string) vocabulary {
	docFreq := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			if _, known := firstSeen[term]; !known {
				firstSeen[term] = len(order)
				order = append(order, term)
			}
			docFreq[term]++
		}
	}

	if len(order) > MaxVocabularySize {
		sort.SliceStable(order, func(i, j int) bool {
			if docFreq[order[i]] != docFreq[order[j]] {
				return docFreq[order[i]] > docFreq[order[j]]
			}
			return firstSeen[order[i]] < firstSeen[order[j]]
		})
		order = order[:MaxVocabularySize]
	}

	index := make(map[string]int, len(order))
	for i, term := range order {
		index[term] = i
	}
	return vocabulary{index: index, docFreq: docFreq}
}

// vectorize maps a document to a unit-L2 sparse TF-IDF vector. Documents
// with no in-vocabulary terms come back empty and score exactly zero.
func vectorize(doc []string, index map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range doc {
		if i, ok := index[term]; ok {
			vec[i] += idf[i]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, w := range vec {
		vec[i] = w / norm
	}
	return vec
}

func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for i, w := range a {
		if v, ok := b[i]; ok {
			sum += w * v
		}
	}
	return sum
}
