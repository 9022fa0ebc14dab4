// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/storage"
)

// keywordsFileName is the keyword-statistics artifact inside an index
// directory. The record store lives in the records subdirectory; the two
// together form one persisted index.
const (
	keywordsFileName = "keywords.mus"
	recordsDirName   = "records"
)

// Store persists an index as a BadgerDB record store plus a keyword
// statistics file. It implements storage.Store.
type Store struct {
	db       *badger.DB
	dir      string
	inMemory bool
	memStats []byte // keyword artifact when running in memory
	logger   *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// OpenStore opens the index store at the given directory, creating the
// directory if needed. An empty dir opens an in-memory store for testing.
func OpenStore(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:      dir,
		inMemory: dir == "",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	var badgerOpts badger.Options
	if s.inMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		recordsDir := filepath.Join(dir, recordsDirName)
		if err := os.MkdirAll(recordsDir, 0755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(recordsDir)
	}
	badgerOpts.Logger = &badgerLoggerAdapter{logger: s.logger}
	badgerOpts.Compression = options.None

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

// SaveIndex writes the full index, replacing any previous contents of both
// artifacts.
func (s *Store) SaveIndex(ctx context.Context, index *core.Index) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clearing record store: %w", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), storage.MarshalMetadata(&index.Metadata))
	})
	if err != nil {
		return fmt.Errorf("writing index metadata: %w", err)
	}

	// Documents go through a write batch: index builds can exceed the size
	// of a single transaction.
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, doc := range index.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := wb.Set(makeDocumentKey(doc.ID), storage.MarshalDocument(doc)); err != nil {
			return fmt.Errorf("writing document %d: %w", doc.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing documents: %w", err)
	}

	statsData := storage.MarshalKeywordStats(&index.Keywords)
	if s.inMemory {
		s.memStats = statsData
		return nil
	}
	if err := os.WriteFile(filepath.Join(s.dir, keywordsFileName), statsData, 0644); err != nil {
		return fmt.Errorf("writing keyword statistics: %w", err)
	}

	s.logger.Info("index persisted", "dir", s.dir, "documents", len(index.Documents))
	return nil
}

// LoadIndex loads the full index. Either artifact missing is reported as
// core.ErrIndexNotFound naming the location.
func (s *Store) LoadIndex(ctx context.Context) (*core.Index, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	index := &core.Index{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		meta, err := storage.UnmarshalMetadata(data)
		if err != nil {
			return err
		}
		index.Metadata = *meta

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			doc, err := storage.UnmarshalDocument(data)
			if err != nil {
				return err
			}
			index.Documents = append(index.Documents, doc)
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: no record store at %q", core.ErrIndexNotFound, s.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("loading record store: %w", err)
	}

	statsData, err := s.readKeywordArtifact()
	if err != nil {
		return nil, err
	}
	stats, err := storage.UnmarshalKeywordStats(statsData)
	if err != nil {
		return nil, fmt.Errorf("decoding keyword statistics: %w", err)
	}
	index.Keywords = *stats

	return index, nil
}

func (s *Store) readKeywordArtifact() ([]byte, error) {
	if s.inMemory {
		if s.memStats == nil {
			return nil, fmt.Errorf("%w: no keyword statistics", core.ErrIndexNotFound)
		}
		return s.memStats, nil
	}

	path := filepath.Join(s.dir, keywordsFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: no keyword statistics at %q", core.ErrIndexNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading keyword statistics: %w", err)
	}
	return data, nil
}

// Close closes the underlying database. The store should not be used after
// calling Close.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
