// Package search ranks indexed documents against free-text queries.
//
// A Searcher combines three signals per document: cosine similarity between
// the query embedding and the stored content vector, a tf-idf keyword score
// normalized against the best-matching document of the current query, and a
// title signal that averages title vector similarity with Jaro-Winkler string
// similarity. Query expansion, when configured, only widens the keyword term
// set; the semantic side always embeds the normalized original query.
package search
