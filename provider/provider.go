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
	"time"

	"github.com/poiesic/soundlens/core"
)

// Name identifies a search capability. The set of names is closed:
// planners select from it and the registry rejects anything else.
type Name string

const (
	// NameSemantic searches the catalog in embedding space.
	NameSemantic Name = "semantic"
	// NameKeyword searches by lexical token overlap.
	NameKeyword Name = "keyword"
	// NamePersonal ranks by popularity and listener taste.
	NamePersonal Name = "personal"
	// NameAcoustic matches mood/genre/tempo attributes against track tags.
	NameAcoustic Name = "acoustic"
	// NameStation looks up live stations in an external directory.
	NameStation Name = "station"
)

// ParseName validates a capability name.
// Unknown names are rejected rather than passed through.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case NameSemantic, NameKeyword, NamePersonal, NameAcoustic, NameStation:
		return Name(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// Provider is a single search capability. Implementations convert
// internal failures to error returns; they never panic past Execute.
type Provider interface {
	// Name returns the capability's registry name.
	Name() Name

	// Description returns a one-line summary used in the planner catalog.
	Description() string

	// Execute runs the capability for one query.
	// The search context may be nil for anonymous calls.
	Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error)
}

// Item is a single scored hit from one provider.
type Item struct {
	Track *core.Track
	Score float64
}

// Result is one provider's contribution to a discovery call.
// It is never mutated after creation.
type Result struct {
	Items      []Item // Best first
	Confidence float64
	Reasoning  string
	Source     Name
}

// Outcome records how one provider fared during scatter-gather.
// Exactly one of Result and Err is meaningful.
type Outcome struct {
	Source  Name
	Result  *Result
	Err     error
	Elapsed time.Duration
}

// Succeeded reports whether the provider returned a usable result.
func (o *Outcome) Succeeded() bool {
	return o.Err == nil && o.Result != nil
}

// StationDirectory is the external live-station collaborator used by
// the station provider.
type StationDirectory interface {
	// Lookup returns stations whose name, genre or tags overlap the query.
	Lookup(query string) []*core.Station

	// All returns the full directory contents.
	All() []*core.Station
}
