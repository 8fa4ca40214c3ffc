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

package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
)

const (
	// personalBaseConfidence applies when no listener history is available
	// and results are a pure popularity proxy.
	personalBaseConfidence = 0.6
	// personalTasteConfidence applies when an identified listener supplies
	// taste signals (loved tracks, recent plays, genre preferences).
	personalTasteConfidence = 0.75
)

// PersonalProvider ranks catalog tracks by popularity, personalised by the
// listener's taste signals when an identity is supplied.
type PersonalProvider struct {
	trackRepository storage.TrackRepository
	logger          *slog.Logger
}

// PersonalOption configures a PersonalProvider.
type PersonalOption func(*PersonalProvider) error

// WithPersonalLogger sets a custom logger.
// Default is slog.Default().
func WithPersonalLogger(logger *slog.Logger) PersonalOption {
	return func(p *PersonalProvider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPersonalProvider creates a personal taste provider.
func NewPersonalProvider(trackRepository storage.TrackRepository, opts ...PersonalOption) (*PersonalProvider, error) {
	if trackRepository == nil {
		return nil, ErrTrackRepositoryRequired
	}

	p := &PersonalProvider{
		trackRepository: trackRepository,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Name returns the capability name.
func (p *PersonalProvider) Name() Name { return NamePersonal }

// Description returns the catalog description.
func (p *PersonalProvider) Description() string {
	return "recommends tracks from listening history, loved tracks and overall popularity"
}

// Execute returns popular tracks, reranked by taste overlap when the
// caller is identified. Confidence is fixed: 0.6 for the anonymous
// popularity proxy, 0.75 when taste signals shaped the ranking.
func (p *PersonalProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error) {
	limit := effectiveLimit(sc)

	// Over-fetch to leave headroom for taste reranking.
	candidates, err := p.trackRepository.GetPopularTracks(ctx, limit*2)
	if err != nil {
		p.logger.Error("error fetching popular tracks", "err", err)
		return nil, fmt.Errorf("personal: popular tracks: %w", err)
	}

	personalised := hasTasteSignals(sc)

	var maxPlays uint64
	for _, t := range candidates {
		if t.PlayCount > maxPlays {
			maxPlays = t.PlayCount
		}
	}

	loved := make(map[core.ID]bool)
	recent := make(map[core.ID]bool)
	preferred := make(map[string]bool)
	if personalised {
		for _, id := range sc.LovedTrackIds {
			loved[id] = true
		}
		for _, id := range sc.RecentTrackIds {
			recent[id] = true
		}
		for _, g := range sc.GenrePreferences {
			preferred[strings.ToLower(g)] = true
		}
	}

	items := make([]Item, 0, len(candidates))
	for _, t := range candidates {
		popularity := 0.0
		if maxPlays > 0 {
			popularity = float64(t.PlayCount) / float64(maxPlays)
		}

		score := popularity
		if personalised {
			score = 0.4 * popularity
			if loved[t.Id] {
				score += 0.3
			}
			if recent[t.Id] {
				score += 0.1
			}
			if genreOverlap(t.Genres, preferred) {
				score += 0.2
			}
		}

		items = append(items, Item{Track: t, Score: score})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Track.Id < items[j].Track.Id
	})
	if len(items) > limit {
		items = items[:limit]
	}

	confidence := personalBaseConfidence
	reasoning := fmt.Sprintf("popularity proxy returned %d tracks", len(items))
	if personalised {
		confidence = personalTasteConfidence
		reasoning = fmt.Sprintf("taste-reranked %d popular tracks for identified listener", len(items))
	}

	return &Result{
		Items:      items,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     NamePersonal,
	}, nil
}

// hasTasteSignals reports whether the context identifies the listener and
// carries at least one usable taste signal.
func hasTasteSignals(sc *core.SearchContext) bool {
	if sc == nil || sc.Identity == "" {
		return false
	}
	return len(sc.LovedTrackIds) > 0 || len(sc.RecentTrackIds) > 0 || len(sc.GenrePreferences) > 0
}

func genreOverlap(genres []string, preferred map[string]bool) bool {
	for _, g := range genres {
		if preferred[strings.ToLower(g)] {
			return true
		}
	}
	return false
}
