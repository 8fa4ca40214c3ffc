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

// Domain validation errors
var (
	// ErrInvalidQuery indicates a free-text query failed boundary validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyQuery indicates the query is empty after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooLong indicates the query exceeds MaxQueryLength characters.
	ErrQueryTooLong = errors.New("query exceeds maximum length")

	// ErrInvalidSearchContext indicates a SearchContext failed validation.
	ErrInvalidSearchContext = errors.New("invalid search context")

	// ErrInvalidLimit indicates a result-count limit outside [1, MaxLimit].
	ErrInvalidLimit = errors.New("limit out of range")

	// ErrInvalidTrack indicates a Track failed validation.
	ErrInvalidTrack = errors.New("invalid track")

	// ErrEmptyTitle indicates the track Title field is empty.
	ErrEmptyTitle = errors.New("track title cannot be empty")

	// ErrInvalidTrackKind indicates an invalid TrackKind value.
	ErrInvalidTrackKind = errors.New("invalid track kind")
)
