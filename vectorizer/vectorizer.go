// Package vectorizer converts raw text into fixed-length TF-IDF feature vectors.
//
// The vocabulary is built once by Fit and frozen afterwards: tokens are ranked
// by total corpus frequency, capped at MaxFeatures, with ties broken by
// first-seen order. Transform ignores tokens outside the vocabulary and
// L2-normalizes the result, so cosine similarity reduces to a dot product.
package vectorizer

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/hupe1980/lazymode/distance"
)

// ErrNotFitted is returned when Transform is called before Fit.
var ErrNotFitted = errors.New("vectorizer must be fitted before transform")

// DefaultMaxFeatures is the default vocabulary cap.
const DefaultMaxFeatures = 500

// Vectorizer is a TF-IDF text vectorizer with a size-capped vocabulary.
// It is immutable after Fit; concurrent Transform calls are safe.
type Vectorizer struct {
	maxFeatures int
	vocabulary  map[string]int
	idf         []float32 // indexed by vocabulary position
	fitted      bool
}

// New creates a new Vectorizer. maxFeatures <= 0 falls back to
// DefaultMaxFeatures.
func New(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Tokenize lowercases text and splits it into runs of [a-z0-9].
// Everything else is a boundary; empty tokens are dropped.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}

// Fit builds the vocabulary and IDF weights from the training corpus.
// Calling Fit again rebuilds both from scratch.
func (v *Vectorizer) Fit(texts []string) {
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)
	var firstSeen []string

	for _, text := range texts {
		seen := make(map[string]bool)
		for _, token := range Tokenize(text) {
			if totalFreq[token] == 0 {
				firstSeen = append(firstSeen, token)
			}
			totalFreq[token]++
			if !seen[token] {
				seen[token] = true
				docFreq[token]++
			}
		}
	}

	// Rank by total frequency; the stable sort preserves first-seen order
	// among equal counts.
	ranked := make([]string, len(firstSeen))
	copy(ranked, firstSeen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return totalFreq[ranked[i]] > totalFreq[ranked[j]]
	})
	if len(ranked) > v.maxFeatures {
		ranked = ranked[:v.maxFeatures]
	}

	v.vocabulary = make(map[string]int, len(ranked))
	v.idf = make([]float32, len(ranked))
	n := float64(len(texts))
	for i, token := range ranked {
		v.vocabulary[token] = i
		v.idf[i] = float32(math.Log((n+1)/float64(docFreq[token]+1)) + 1)
	}
	v.fitted = true
}

// Transform converts text into an L2-normalized TF-IDF vector of length
// Dimension. Tokens outside the vocabulary contribute nothing; a text with no
// known tokens yields the zero vector.
func (v *Vectorizer) Transform(text string) ([]float32, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}

	vec := make([]float32, len(v.vocabulary))
	for _, token := range Tokenize(text) {
		if idx, ok := v.vocabulary[token]; ok {
			vec[idx] += v.idf[idx]
		}
	}
	distance.NormalizeL2InPlace(vec)
	return vec, nil
}

// FitTransform fits on texts and returns their vectors in input order.
func (v *Vectorizer) FitTransform(texts []string) [][]float32 {
	v.Fit(texts)
	rows := make([][]float32, len(texts))
	for i, text := range texts {
		rows[i], _ = v.Transform(text)
	}
	return rows
}

// Dimension returns the vocabulary size (and thus the vector length).
// It is 0 before Fit.
func (v *Vectorizer) Dimension() int { return len(v.vocabulary) }

// Fitted reports whether Fit has been called.
func (v *Vectorizer) Fitted() bool { return v.fitted }

// MaxFeatures returns the configured vocabulary cap.
func (v *Vectorizer) MaxFeatures() int { return v.maxFeatures }

// Snapshot is the serializable state of a fitted vectorizer.
type Snapshot struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float32      `json:"idf"`
}

// Snapshot captures the fitted state for persistence.
func (v *Vectorizer) Snapshot() Snapshot {
	return Snapshot{
		MaxFeatures: v.maxFeatures,
		Vocabulary:  v.vocabulary,
		IDF:         v.idf,
	}
}

// FromSnapshot restores a fitted vectorizer from persisted state.
func FromSnapshot(s Snapshot) (*Vectorizer, error) {
	if len(s.IDF) != len(s.Vocabulary) {
		return nil, errors.New("vectorizer snapshot: idf/vocabulary size mismatch")
	}
	for token, idx := range s.Vocabulary {
		if idx < 0 || idx >= len(s.IDF) {
			return nil, errors.New("vectorizer snapshot: index out of range for token " + token)
		}
	}
	v := New(s.MaxFeatures)
	v.vocabulary = s.Vocabulary
	v.idf = s.IDF
	v.fitted = true
	return v, nil
}
