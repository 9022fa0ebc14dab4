// Package keyword implements the lexical half of hybrid scoring: a
// term-frequency/document-frequency model over normalized text with tf-idf
// weighting. Scoring is an accumulated tf-idf sum per document, not BM25.
package keyword
