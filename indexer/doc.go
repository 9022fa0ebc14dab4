// Package indexer builds persisted indexes from JSONL record streams.
//
// A build is a single synchronous pass: decode and validate records, assign
// dense document IDs, normalize text, generate embeddings in bounded batches,
// derive keyword statistics, and persist everything through a storage.Store.
// Per-record problems are logged and skipped; only missing resources and
// storage failures abort a build.
package indexer
