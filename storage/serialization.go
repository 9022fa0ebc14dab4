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

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/searchit/core"
)

// Shared field serializers.
var (
	vectorMUS     = ord.NewSliceSer[float32](raw.Float32)
	termCountsMUS = ord.NewMapSer[string, int](ord.String, varint.Int)
	docTermsMUS   = ord.NewSliceSer[map[string]int](termCountsMUS)
)

// DocumentMUS serializes core.Document values.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v core.Document, bs []byte) (n int) {
	n = varint.Int.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.NormalizedTitle, bs[n:])
	n += ord.String.Marshal(v.NormalizedContent, bs[n:])
	n += vectorMUS.Marshal(v.ContentVector, bs[n:])
	n += vectorMUS.Marshal(v.TitleVector, bs[n:])
	n += ord.String.Marshal(string(v.Original), bs[n:])
	return
}

func (s documentMUS) Unmarshal(bs []byte) (v core.Document, n int, err error) {
	var n1 int
	v.ID, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NormalizedTitle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NormalizedContent, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentVector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TitleVector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var original string
	original, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if original != "" {
		v.Original = json.RawMessage(original)
	}
	return
}

func (s documentMUS) Size(v core.Document) (size int) {
	size = varint.Int.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.NormalizedTitle)
	size += ord.String.Size(v.NormalizedContent)
	size += vectorMUS.Size(v.ContentVector)
	size += vectorMUS.Size(v.TitleVector)
	size += ord.String.Size(string(v.Original))
	return
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// IndexMetadataMUS serializes core.IndexMetadata values. The creation
// timestamp is stored as Unix microseconds.
var IndexMetadataMUS = indexMetadataMUS{}

type indexMetadataMUS struct{}

func (s indexMetadataMUS) Marshal(v core.IndexMetadata, bs []byte) (n int) {
	n = raw.Int64.Marshal(v.CreatedAt.UnixMicro(), bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.ContentField, bs[n:])
	n += ord.String.Marshal(v.TitleField, bs[n:])
	n += ord.String.Marshal(v.Model, bs[n:])
	n += ord.Bool.Marshal(v.TitleBoost, bs[n:])
	n += varint.Int.Marshal(v.DocumentCount, bs[n:])
	n += varint.Int.Marshal(v.Dimension, bs[n:])
	return
}

func (s indexMetadataMUS) Unmarshal(bs []byte) (v core.IndexMetadata, n int, err error) {
	var (
		n1     int
		micros int64
	)
	micros, n, err = raw.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.CreatedAt = time.UnixMicro(micros).UTC()
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentField, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TitleField, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Model, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TitleBoost, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DocumentCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexMetadataMUS) Size(v core.IndexMetadata) (size int) {
	size = raw.Int64.Size(v.CreatedAt.UnixMicro())
	size += ord.String.Size(v.Source)
	size += ord.String.Size(v.ContentField)
	size += ord.String.Size(v.TitleField)
	size += ord.String.Size(v.Model)
	size += ord.Bool.Size(v.TitleBoost)
	size += varint.Int.Size(v.DocumentCount)
	size += varint.Int.Size(v.Dimension)
	return
}

func (s indexMetadataMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// KeywordStatsMUS serializes core.KeywordStats values.
var KeywordStatsMUS = keywordStatsMUS{}

type keywordStatsMUS struct{}

func (s keywordStatsMUS) Marshal(v core.KeywordStats, bs []byte) (n int) {
	n = docTermsMUS.Marshal(v.DocTerms, bs)
	n += termCountsMUS.Marshal(v.DocFreq, bs[n:])
	n += varint.Int.Marshal(v.TotalDocs, bs[n:])
	return
}

func (s keywordStatsMUS) Unmarshal(bs []byte) (v core.KeywordStats, n int, err error) {
	var n1 int
	v.DocTerms, n, err = docTermsMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DocFreq, n1, err = termCountsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalDocs, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s keywordStatsMUS) Size(v core.KeywordStats) (size int) {
	size = docTermsMUS.Size(v.DocTerms)
	size += termCountsMUS.Size(v.DocFreq)
	size += varint.Int.Size(v.TotalDocs)
	return
}

func (s keywordStatsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: document: %v", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalMetadata serializes index metadata to bytes.
func MarshalMetadata(meta *core.IndexMetadata) []byte {
	buf := make([]byte, IndexMetadataMUS.Size(*meta))
	IndexMetadataMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalMetadata deserializes index metadata from bytes.
func UnmarshalMetadata(data []byte) (*core.IndexMetadata, error) {
	meta, _, err := IndexMetadataMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrSerializationFailed, err)
	}
	return &meta, nil
}

// MarshalKeywordStats serializes keyword statistics to bytes.
func MarshalKeywordStats(stats *core.KeywordStats) []byte {
	buf := make([]byte, KeywordStatsMUS.Size(*stats))
	KeywordStatsMUS.Marshal(*stats, buf)
	return buf
}

// UnmarshalKeywordStats deserializes keyword statistics from bytes.
func UnmarshalKeywordStats(data []byte) (*core.KeywordStats, error) {
	stats, _, err := KeywordStatsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword statistics: %v", ErrSerializationFailed, err)
	}
	return &stats, nil
}
