// Package analyze inspects JSONL datasets before indexing: line health,
// per-field coverage, and content length statistics.
package analyze
