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

import "encoding/binary"

// Key layout for the record store.
const (
	metaKey   = "idx:meta"
	docPrefix = "idx:doc:"
)

// makeDocumentKey generates the key for a document by ID. IDs are written in
// BigEndian order so badger's lexicographic iteration yields documents in ID
// order.
func makeDocumentKey(id int) []byte {
	prefix := []byte(docPrefix)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
