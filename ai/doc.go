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


// Package ai provides the embedding-client abstraction used by index
// construction and query scoring.
//
// The package defines the Embedder interface, a closed-but-extensible table
// mapping logical model names to provider identifiers, and two decorators:
//
//   - BatchEmbedder: sub-batching, bounded concurrency, and zero-vector
//     substitution for failed provider calls
//   - CachedEmbedder: content-hash memoization of embeddings
//
// Implementation sub-packages:
//
//   - ai/openai: production adapter for OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Embedder handles are constructed explicitly and injected into builders and
// searchers by the caller; there is no ambient provider singleton.
package ai
