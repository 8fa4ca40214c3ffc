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

// Package directory provides a static live-station directory.
//
// The directory is an in-process stand-in for an external station index:
// lookups are lexical token matches against station name, genre, country
// and tags. Matches are ordered by overlap, best first.
package directory

import (
	"sort"
	"strings"

	"github.com/poiesic/soundlens/core"
)

// StaticDirectory serves station lookups from a fixed in-memory list.
// It is immutable after construction and safe for concurrent use.
type StaticDirectory struct {
	stations []*core.Station
}

// New creates a directory over the given stations.
// Station IDs are derived from the stream URL when unset.
func New(stations ...*core.Station) *StaticDirectory {
	owned := make([]*core.Station, len(stations))
	for i, s := range stations {
		c := *s
		if c.Id == 0 {
			c.Id = core.IDFromContent(c.StreamURL)
		}
		owned[i] = &c
	}
	return &StaticDirectory{stations: owned}
}

// NewBundled creates a directory preloaded with the bundled station list.
func NewBundled() *StaticDirectory {
	return New(bundledStations...)
}

// Lookup returns stations whose name, genre, country or tags overlap the
// query tokens, ordered by overlap count descending.
func (d *StaticDirectory) Lookup(query string) []*core.Station {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		station *core.Station
		hits    int
	}

	var matched []scored
	for _, s := range d.stations {
		hits := matchCount(s, tokens)
		if hits > 0 {
			matched = append(matched, scored{station: s, hits: hits})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].hits != matched[j].hits {
			return matched[i].hits > matched[j].hits
		}
		return matched[i].station.Name < matched[j].station.Name
	})

	results := make([]*core.Station, 0, len(matched))
	for _, m := range matched {
		results = append(results, m.station)
	}
	return results
}

// All returns the full directory contents in bundled order.
func (d *StaticDirectory) All() []*core.Station {
	out := make([]*core.Station, len(d.stations))
	copy(out, d.stations)
	return out
}

// matchCount counts query tokens appearing in the station's lexical fields.
func matchCount(s *core.Station, tokens []string) int {
	fields := make([]string, 0, 3+len(s.Tags))
	fields = append(fields, strings.ToLower(s.Name), strings.ToLower(s.Genre), strings.ToLower(s.Country))
	for _, tag := range s.Tags {
		fields = append(fields, strings.ToLower(tag))
	}

	count := 0
	for _, token := range tokens {
		for _, field := range fields {
			if containsToken(field, token) {
				count++
				break
			}
		}
	}
	return count
}

// containsToken reports whether field contains token as a whole word.
func containsToken(field, token string) bool {
	for _, word := range strings.FieldsFunc(field, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '/'
	}) {
		if word == token {
			return true
		}
	}
	return false
}

// stationStopWords are query words carrying no station signal on their own.
var stationStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "some": true, "any": true,
	"play": true, "find": true, "me": true, "for": true, "to": true,
	"music": true, "station": true, "stations": true, "radio": true,
	"live": true, "stream": true, "streaming": true, "channel": true,
}

func tokenize(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if word == "" || stationStopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
