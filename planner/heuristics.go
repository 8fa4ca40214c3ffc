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

package planner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/provider"
)

// minQueryLength is the shortest trimmed query, in runes, worth searching for.
const minQueryLength = 3

// moodVocabulary triggers the acoustic capability.
var moodVocabulary = []string{
	"mood", "vibe", "vibes", "feel", "feeling",
	"chill", "chilled", "relax", "relaxed", "relaxing", "calm", "mellow",
	"upbeat", "happy", "cheerful", "energetic", "energy", "pumped",
	"sad", "melancholy", "moody", "dark", "dreamy", "ambient",
	"fast", "slow", "driving", "danceable", "groovy", "acoustic",
}

// stationVocabulary triggers the station capability.
var stationVocabulary = []string{
	"station", "stations", "radio", "live", "stream", "streaming", "broadcast",
}

// heuristicPlan selects capabilities from fixed lexical rules.
// Queries shorter than minQueryLength runes get a clarification round
// instead of a search. Keyword and semantic always run; the rest are
// triggered by vocabulary or caller context.
func (p *Planner) heuristicPlan(query string, sc *core.SearchContext) *Plan {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < minQueryLength {
		return &Plan{
			Strategy:            "ask for clarification",
			Reasoning:           "query too short to plan a search",
			NeedsClarification:  true,
			ClarifyingQuestions: defaultClarifyingQuestions(),
		}
	}

	lowered := strings.ToLower(query)

	names := []provider.Name{provider.NameKeyword, provider.NameSemantic}
	var triggers []string

	if containsAnyWord(lowered, moodVocabulary) || (sc != nil && sc.Mood != "") {
		names = append(names, provider.NameAcoustic)
		triggers = append(triggers, "mood vocabulary")
	}
	if sc != nil && sc.Identity != "" {
		names = append(names, provider.NamePersonal)
		triggers = append(triggers, "identified listener")
	}
	if containsAnyWord(lowered, stationVocabulary) {
		names = append(names, provider.NameStation)
		triggers = append(triggers, "station vocabulary")
	}

	// Drop capabilities missing from this registry.
	selected := names[:0]
	for _, n := range names {
		if p.registry.Has(n) {
			selected = append(selected, n)
		}
	}

	reasoning := "baseline keyword and semantic search"
	if len(triggers) > 0 {
		reasoning = fmt.Sprintf("baseline keyword and semantic search, extended for %s", strings.Join(triggers, " and "))
	}

	return &Plan{
		Strategy:  "heuristic capability selection",
		Providers: selected,
		Reasoning: reasoning,
	}
}

// defaultClarifyingQuestions are asked whenever a clarification round is
// needed but no better questions are available.
func defaultClarifyingQuestions() []string {
	return []string{
		"What type of music are you looking for?",
		"Can you provide more details about the artist, genre, or mood?",
	}
}

// containsAnyWord reports whether any vocabulary word appears as a whole
// word in the lowered text.
func containsAnyWord(lowered string, vocabulary []string) bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(lowered) {
		words[strings.Trim(w, ".,!?;:'\"()")] = true
	}
	for _, v := range vocabulary {
		if words[v] {
			return true
		}
	}
	return false
}
