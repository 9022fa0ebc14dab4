package keyword

import (
	"math"

	"github.com/poiesic/searchit/core"
)

// Index holds term-frequency and document-frequency statistics over the
// normalized corpus. It is rebuilt wholesale on each index build and is
// read-only afterwards.
type Index struct {
	docTerms  []map[string]int
	docFreq   map[string]int
	totalDocs int
}

// New creates an empty keyword index.
func New() *Index {
	return &Index{
		docFreq: make(map[string]int),
	}
}

// FromStats reconstructs an index from its persisted statistics.
func FromStats(stats core.KeywordStats) *Index {
	docFreq := stats.DocFreq
	if docFreq == nil {
		docFreq = make(map[string]int)
	}
	return &Index{
		docTerms:  stats.DocTerms,
		docFreq:   docFreq,
		totalDocs: stats.TotalDocs,
	}
}

// Add records the token sequence of one document. Documents must be added in
// ID order: docID is expected to equal the current document count.
func (idx *Index) Add(docID int, tokens []string) {
	for len(idx.docTerms) <= docID {
		idx.docTerms = append(idx.docTerms, nil)
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	idx.docTerms[docID] = counts

	for term := range counts {
		idx.docFreq[term]++
	}
	idx.totalDocs++
}

// TermCount returns how often term occurs in the given document.
func (idx *Index) TermCount(term string, docID int) int {
	if docID < 0 || docID >= len(idx.docTerms) {
		return 0
	}
	return idx.docTerms[docID][term]
}

// DocumentFrequency returns the number of documents containing term.
func (idx *Index) DocumentFrequency(term string) int {
	return idx.docFreq[term]
}

// TotalDocs returns the number of documents in the index.
func (idx *Index) TotalDocs() int {
	return idx.totalDocs
}

// TFIDF returns the tf-idf weight of term in the given document:
//
//	count * log(totalDocs / max(1, documentFrequency))
//
// It is 0 for terms never seen in the document or corpus-wide.
func (idx *Index) TFIDF(term string, docID int) float64 {
	count := idx.TermCount(term, docID)
	if count == 0 {
		return 0
	}
	df := idx.docFreq[term]
	if df < 1 {
		df = 1
	}
	return float64(count) * math.Log(float64(idx.totalDocs)/float64(df))
}

// Score returns the accumulated tf-idf sum of terms for the given document.
// The sum is deliberately not length-normalized; see ScoreNormalized for the
// optional normalized variant.
func (idx *Index) Score(terms []string, docID int) float64 {
	var sum float64
	for _, term := range terms {
		sum += idx.TFIDF(term, docID)
	}
	return sum
}

// ScoreNormalized returns Score divided by the document's token count. It is
// an explicit opt-in variant; ranking parity with persisted indexes requires
// the plain sum.
func (idx *Index) ScoreNormalized(terms []string, docID int) float64 {
	if docID < 0 || docID >= len(idx.docTerms) {
		return 0
	}
	var docLen int
	for _, count := range idx.docTerms[docID] {
		docLen += count
	}
	if docLen == 0 {
		return 0
	}
	return idx.Score(terms, docID) / float64(docLen)
}

// Stats returns the persistable form of the index.
func (idx *Index) Stats() core.KeywordStats {
	return core.KeywordStats{
		DocTerms:  idx.docTerms,
		DocFreq:   idx.docFreq,
		TotalDocs: idx.totalDocs,
	}
}
