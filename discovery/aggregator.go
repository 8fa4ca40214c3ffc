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

package discovery

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/planner"
	"github.com/poiesic/soundlens/provider"
)

// maxRankedItems caps the merged result list.
const maxRankedItems = 50

// RankedItem is a merged, cross-provider ranked result.
type RankedItem struct {
	Track       *core.Track
	Score       float64
	Sources     []provider.Name // In sighting order
	Confidences []float64       // Parallel to Sources
}

// SourceSummary reports how one provider contributed to a response.
type SourceSummary struct {
	Source     provider.Name
	Succeeded  bool
	ItemCount  int
	Confidence float64
	Reasoning  string
	Error      string
	Elapsed    time.Duration
}

// Response is the result of one discovery call.
type Response struct {
	NeedsClarification  bool
	ClarifyingQuestions []string
	Plan                *planner.Plan
	Items               []RankedItem
	Sources             []SourceSummary
	Confidence          float64
	Reasoning           string
	Elapsed             time.Duration
}

// mergeEntry accumulates the running score for one track across providers.
type mergeEntry struct {
	track       *core.Track
	score       float64
	sources     []provider.Name
	confidences []float64
	seen        map[provider.Name]bool
}

// aggregate merges provider outcomes into a single ranked list.
//
// Each provider's items are position-weighted: an item at index i of n gets
// positionScore 1-(i/n)*0.5, multiplied by the provider's confidence. The
// first sighting of a track sets its running score; every further sighting
// by a different provider corroborates it, adding 1.5x its weighted score.
// Repeat sightings by the same provider are ignored.
func aggregate(outcomes []*provider.Outcome) ([]RankedItem, []SourceSummary, float64, string) {
	sources := make([]SourceSummary, 0, len(outcomes))
	merged := make(map[core.ID]*mergeEntry)
	var succeeded int
	var confidenceSum float64

	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}

		summary := SourceSummary{Source: outcome.Source, Elapsed: outcome.Elapsed}
		if !outcome.Succeeded() {
			if outcome.Err != nil {
				summary.Error = outcome.Err.Error()
			}
			sources = append(sources, summary)
			continue
		}

		result := outcome.Result
		summary.Succeeded = true
		summary.ItemCount = len(result.Items)
		summary.Confidence = result.Confidence
		summary.Reasoning = result.Reasoning
		sources = append(sources, summary)

		succeeded++
		confidenceSum += result.Confidence

		n := len(result.Items)
		for i, item := range result.Items {
			if item.Track == nil {
				continue
			}

			positionScore := 1.0 - (float64(i)/float64(n))*0.5
			weighted := result.Confidence * positionScore

			entry, exists := merged[item.Track.Id]
			if !exists {
				merged[item.Track.Id] = &mergeEntry{
					track:       item.Track,
					score:       weighted,
					sources:     []provider.Name{outcome.Source},
					confidences: []float64{result.Confidence},
					seen:        map[provider.Name]bool{outcome.Source: true},
				}
				continue
			}
			if entry.seen[outcome.Source] {
				continue
			}

			// Corroboration across providers boosts the running score.
			entry.score += weighted * 1.5
			entry.sources = append(entry.sources, outcome.Source)
			entry.confidences = append(entry.confidences, result.Confidence)
			entry.seen[outcome.Source] = true
		}
	}

	if succeeded == 0 {
		return nil, sources, 0, "no results found; try rephrasing the query or adding an artist, genre or mood"
	}

	entries := make([]*mergeEntry, 0, len(merged))
	for _, entry := range merged {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].track.Id < entries[j].track.Id
	})
	if len(entries) > maxRankedItems {
		entries = entries[:maxRankedItems]
	}

	items := make([]RankedItem, 0, len(entries))
	corroborated := 0
	for _, entry := range entries {
		if len(entry.sources) >= 2 {
			corroborated++
		}
		items = append(items, RankedItem{
			Track:       entry.track,
			Score:       entry.score,
			Sources:     entry.sources,
			Confidences: entry.confidences,
		})
	}

	meanConfidence := confidenceSum / float64(succeeded)
	multiSourceRatio := 0.0
	if len(items) > 0 {
		multiSourceRatio = float64(corroborated) / float64(len(items))
	}
	confidence := meanConfidence * (1.0 + multiSourceRatio*0.2)
	if confidence > 1.0 {
		confidence = 1.0
	}

	return items, sources, confidence, buildReasoning(items, sources, corroborated, confidence)
}

// buildReasoning renders a human-readable account of the merge.
func buildReasoning(items []RankedItem, sources []SourceSummary, corroborated int, confidence float64) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("ranked %d results", len(items)))

	for _, s := range sources {
		if s.Succeeded {
			parts = append(parts, fmt.Sprintf("%s contributed %d (confidence %.2f)", s.Source, s.ItemCount, s.Confidence))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed", s.Source))
		}
	}

	if corroborated > 0 {
		parts = append(parts, fmt.Sprintf("%d corroborated by multiple sources", corroborated))
	}

	switch {
	case confidence > 0.8:
		parts = append(parts, "high confidence in the ranking")
	case confidence > 0.6:
		parts = append(parts, "moderate confidence in the ranking")
	default:
		parts = append(parts, "lower confidence, treat as exploratory")
	}

	return strings.Join(parts, "; ")
}
