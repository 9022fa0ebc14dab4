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

package core

import (
	"encoding/json"
	"time"
)

// Document is a single indexed record. IDs are dense 0-based integers
// assigned in input order to records that pass validation; a record that is
// skipped during indexing never consumes an ID.
type Document struct {
	ID                int
	Title             string
	Content           string
	NormalizedTitle   string
	NormalizedContent string
	ContentVector     []float32
	TitleVector       []float32       // nil unless title boost is enabled and the title is non-empty
	Original          json.RawMessage // raw source record, opaque passthrough
}

// IndexMetadata describes how and when an index was built.
type IndexMetadata struct {
	CreatedAt     time.Time
	Source        string
	ContentField  string
	TitleField    string
	Model         string // logical embedding model name
	TitleBoost    bool
	DocumentCount int
	Dimension     int
}

// KeywordStats is the persisted form of the keyword index: per-document term
// counts, the corpus document-frequency table, and the total document count.
// It is sufficient to reconstruct exact tf-idf values at query time.
type KeywordStats struct {
	DocTerms  []map[string]int // indexed by document ID
	DocFreq   map[string]int
	TotalDocs int
}

// Index is a fully loaded relevance index. It is immutable once persisted;
// a rebuild replaces it wholesale.
type Index struct {
	Metadata  IndexMetadata
	Documents []*Document
	Keywords  KeywordStats
}
