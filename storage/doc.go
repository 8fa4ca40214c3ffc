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


// Package storage provides the storage abstraction layer for soundlens.
//
// This package defines repository interfaces that decouple storage implementation
// from the discovery pipeline. It allows different storage backends (BadgerDB,
// in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo, err := badger.NewTrackRepository(backend)  // returns storage.TrackRepository
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: common transaction and lifecycle operations
//   - TrackRepository: catalog operations plus the four retrieval paths the
//     search providers consume (vector similarity, keyword relevance, tag
//     lookup, recency/popularity)
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines; the scatter-gather executor issues provider
// calls against the same repository in parallel.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
