// Package lexical maintains a Roaring-bitmap inverted index over training
// input tokens. It is used to restrict cosine search to rows that share at
// least one token with the query: rows with no token overlap have a TF-IDF
// dot product of exactly 0, so pruning never changes the cosine top-k as
// long as at least one candidate exists.
//
// The index is rebuilt from the training inputs on Train and Load; it is
// never persisted.
package lexical

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lazymode/vectorizer"
)

// Index is an in-memory token posting index.
// It is read-only after Build; concurrent Candidates calls are safe.
type Index struct {
	postings map[string]*roaring.Bitmap
	docCount int
}

// New creates an empty Index.
func New() *Index {
	return &Index{postings: make(map[string]*roaring.Bitmap)}
}

// Build creates an Index over the given documents, with row IDs matching
// the slice positions.
func Build(docs []string) *Index {
	idx := New()
	for id, doc := range docs {
		idx.add(uint32(id), doc)
	}
	return idx
}

func (idx *Index) add(id uint32, text string) {
	for _, token := range vectorizer.Tokenize(text) {
		bm, ok := idx.postings[token]
		if !ok {
			bm = roaring.New()
			idx.postings[token] = bm
		}
		bm.Add(id)
	}
	idx.docCount++
}

// Candidates returns the union of posting bitmaps for the query's tokens:
// every row sharing at least one token with text. The bitmap may be empty.
func (idx *Index) Candidates(text string) *roaring.Bitmap {
	out := roaring.New()
	for _, token := range vectorizer.Tokenize(text) {
		if bm, ok := idx.postings[token]; ok {
			out.Or(bm)
		}
	}
	return out
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return idx.docCount }

// Terms returns the number of distinct indexed tokens.
func (idx *Index) Terms() int { return len(idx.postings) }
