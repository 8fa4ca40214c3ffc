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
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateQuery validates a free-text query at the discovery boundary.
//
// Validation rules:
//   - Query must not be empty after trimming whitespace
//   - Query must not exceed MaxQueryLength characters
//
// Returns the trimmed query so that providers never receive surrounding
// whitespace.
func ValidateQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}
	if utf8.RuneCountInString(trimmed) > MaxQueryLength {
		return "", fmt.Errorf("%w: %w (%d > %d)", ErrInvalidQuery, ErrQueryTooLong,
			utf8.RuneCountInString(trimmed), MaxQueryLength)
	}
	return trimmed, nil
}

// ValidateSearchContext validates a SearchContext according to domain rules.
//
// Validation rules:
//   - Limit must be 0 (use default) or within [1, MaxLimit]
//
// A nil context is valid; callers receive defaults via NormalizeSearchContext.
func ValidateSearchContext(sctx *SearchContext) error {
	if sctx == nil {
		return nil
	}
	if sctx.Limit < 0 || sctx.Limit > MaxLimit {
		return fmt.Errorf("%w: %w (%d)", ErrInvalidSearchContext, ErrInvalidLimit, sctx.Limit)
	}
	return nil
}

// NormalizeSearchContext returns a defensive copy with defaults applied.
// The copy guarantees no shared mutable state between concurrent provider
// invocations.
func NormalizeSearchContext(sctx *SearchContext) *SearchContext {
	normalized := &SearchContext{Limit: DefaultLimit}
	if sctx == nil {
		return normalized
	}

	normalized.Identity = sctx.Identity
	normalized.Mood = sctx.Mood
	normalized.RecentTrackIds = append([]ID(nil), sctx.RecentTrackIds...)
	normalized.LovedTrackIds = append([]ID(nil), sctx.LovedTrackIds...)
	normalized.GenrePreferences = append([]string(nil), sctx.GenrePreferences...)
	if sctx.Limit > 0 {
		normalized.Limit = sctx.Limit
	}
	return normalized
}

// ValidateTrack validates a Track according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Kind must be valid (track or station)
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
//   - ID (computed from the tuple at insert time)
func ValidateTrack(track *Track) error {
	if track == nil {
		return fmt.Errorf("%w: track is nil", ErrInvalidTrack)
	}

	if track.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTrack, ErrEmptyTitle)
	}

	if err := ValidateTrackKind(track.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}

	return nil
}

// ValidateTrackKind validates that a TrackKind has a valid value.
func ValidateTrackKind(kind TrackKind) error {
	if kind != KindTrack && kind != KindStation {
		return fmt.Errorf("%w: value %d", ErrInvalidTrackKind, kind)
	}
	return nil
}
