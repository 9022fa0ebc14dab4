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

import "errors"

var (
	// ErrIndexNotFound indicates that a persisted index (or one of its two
	// artifacts) is missing at the configured location. Fatal at search time.
	ErrIndexNotFound = errors.New("index not found")

	// ErrModelInit indicates that a logical embedding model name could not be
	// resolved to a provider identifier. Fatal at build and search time.
	ErrModelInit = errors.New("embedding model initialization failed")
)
