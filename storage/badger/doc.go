// Package badger implements the storage.Store interface on BadgerDB.
//
// An index directory holds two artifacts: the records/ BadgerDB database
// (metadata plus documents keyed by big-endian ID) and the keywords.mus
// statistics file. Loading fails with core.ErrIndexNotFound when either is
// missing.
package badger
