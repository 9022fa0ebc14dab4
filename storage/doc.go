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


// Package storage provides the persistence layer for built indexes.
//
// The Store interface decouples index persistence from the build and search
// logic so different backends can be used interchangeably. The production
// backend lives in storage/badger; tests use its in-memory mode via
// badger.NewMemoryStore.
//
// Serialization uses the MUS binary format. The XxxMUS serializer values in
// this package cover the three persisted types: documents, index metadata,
// and keyword statistics.
package storage
