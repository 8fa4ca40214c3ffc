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
	// acousticMatchConfidence applies when the query yielded at least one
	// mood/tempo/energy attribute to match on.
	acousticMatchConfidence = 0.7
	// acousticFallbackConfidence applies when no attribute could be
	// extracted and recent tracks are returned instead.
	acousticFallbackConfidence = 0.3
)

// acousticVocabulary maps query words to the canonical tag stored on tracks.
// Mood, energy and tempo words all normalise into the same tag space.
var acousticVocabulary = map[string]string{
	"chill":      "chill",
	"chilled":    "chill",
	"relax":      "chill",
	"relaxed":    "chill",
	"relaxing":   "chill",
	"calm":       "chill",
	"mellow":     "mellow",
	"smooth":     "mellow",
	"soft":       "mellow",
	"upbeat":     "upbeat",
	"happy":      "upbeat",
	"cheerful":   "upbeat",
	"energetic":  "energetic",
	"energy":     "energetic",
	"pumped":     "energetic",
	"intense":    "energetic",
	"sad":        "melancholic",
	"melancholy": "melancholic",
	"moody":      "melancholic",
	"dark":       "dark",
	"dreamy":     "dreamy",
	"ambient":    "ambient",
	"atmosphere": "ambient",
	"fast":       "fast",
	"driving":    "fast",
	"slow":       "slow",
	"dance":      "danceable",
	"danceable":  "danceable",
	"groovy":     "danceable",
	"acoustic":   "acoustic",
	"unplugged":  "acoustic",
	"instrumental": "instrumental",
}

// AcousticProvider matches mood, energy and tempo vocabulary in the query
// against attribute tags stored on tracks.
type AcousticProvider struct {
	trackRepository storage.TrackRepository
	logger          *slog.Logger
}

// AcousticOption configures an AcousticProvider.
type AcousticOption func(*AcousticProvider) error

// WithAcousticLogger sets a custom logger.
// Default is slog.Default().
func WithAcousticLogger(logger *slog.Logger) AcousticOption {
	return func(p *AcousticProvider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewAcousticProvider creates an acoustic attribute provider.
func NewAcousticProvider(trackRepository storage.TrackRepository, opts ...AcousticOption) (*AcousticProvider, error) {
	if trackRepository == nil {
		return nil, ErrTrackRepositoryRequired
	}

	p := &AcousticProvider{
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
func (p *AcousticProvider) Name() Name { return NameAcoustic }

// Description returns the catalog description.
func (p *AcousticProvider) Description() string {
	return "finds tracks by mood, energy and tempo attributes mentioned in the query"
}

// Execute extracts acoustic attributes from the query and matches them
// against stored track tags. Per-track score is the fraction of extracted
// attributes the track carries. Confidence is 0.7 when at least one
// attribute was extracted, 0.3 for the recent-tracks fallback.
func (p *AcousticProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error) {
	limit := effectiveLimit(sc)

	attributes := extractAcousticAttributes(query)
	if sc != nil && sc.Mood != "" {
		if tag, ok := acousticVocabulary[strings.ToLower(sc.Mood)]; ok && !containsString(attributes, tag) {
			attributes = append(attributes, tag)
		}
	}

	if len(attributes) == 0 {
		return p.fallbackRecent(ctx, limit)
	}

	// Count how many extracted attributes each track carries.
	matchCounts := make(map[core.ID]int)
	tracks := make(map[core.ID]*core.Track)
	for _, attr := range attributes {
		tagged, err := p.trackRepository.GetTracksByTag(ctx, attr, limit)
		if err != nil {
			p.logger.Error("error fetching tracks by tag", "tag", attr, "err", err)
			return nil, fmt.Errorf("acoustic: tracks by tag %q: %w", attr, err)
		}
		for _, t := range tagged {
			matchCounts[t.Id]++
			tracks[t.Id] = t
		}
	}

	items := make([]Item, 0, len(tracks))
	for id, t := range tracks {
		items = append(items, Item{
			Track: t,
			Score: float64(matchCounts[id]) / float64(len(attributes)),
		})
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

	return &Result{
		Items:      items,
		Confidence: acousticMatchConfidence,
		Reasoning:  fmt.Sprintf("matched attributes %s against %d tracks", strings.Join(attributes, ", "), len(items)),
		Source:     NameAcoustic,
	}, nil
}

func (p *AcousticProvider) fallbackRecent(ctx context.Context, limit int) (*Result, error) {
	recent, err := p.trackRepository.GetRecentTracks(ctx, limit)
	if err != nil {
		p.logger.Error("error fetching recent tracks", "err", err)
		return nil, fmt.Errorf("acoustic: recent tracks: %w", err)
	}

	items := make([]Item, 0, len(recent))
	for _, t := range recent {
		items = append(items, Item{Track: t, Score: 0.5})
	}

	return &Result{
		Items:      items,
		Confidence: acousticFallbackConfidence,
		Reasoning:  "no acoustic attributes in query, returning recent additions",
		Source:     NameAcoustic,
	}, nil
}

// extractAcousticAttributes maps query words into the canonical tag space.
// Duplicates collapse; order follows first appearance in the query.
func extractAcousticAttributes(query string) []string {
	seen := make(map[string]bool)
	var attributes []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		tag, ok := acousticVocabulary[word]
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		attributes = append(attributes, tag)
	}
	return attributes
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
