package storage

import (
	"context"

	"github.com/poiesic/searchit/core"
)

// Store persists and loads a complete index. A persisted index consists of
// two artifacts at one location: the primary record store (metadata plus the
// ordered document list) and the keyword-statistics artifact. Both must be
// present at load time; either missing is reported as core.ErrIndexNotFound.
//
// The persisted index is read-only during search. Rebuilding into the same
// location while a search is running is undefined; rebuild into a fresh
// location and swap instead.
type Store interface {
	// SaveIndex writes the full index, replacing any previous contents.
	SaveIndex(ctx context.Context, index *core.Index) error

	// LoadIndex loads the full index.
	// Returns core.ErrIndexNotFound if either artifact is missing.
	LoadIndex(ctx context.Context) (*core.Index, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
