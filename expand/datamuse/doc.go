// Package datamuse provides Datamuse-backed implementations of the query
// expansion collaborator interfaces.
package datamuse
