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

	"github.com/poiesic/soundlens/core"
)

const (
	// stationMatchConfidence applies when the directory produced a lexical match.
	stationMatchConfidence = 0.8
	// stationBrowseConfidence applies when nothing matched and a browsing
	// sample of the directory is returned instead.
	stationBrowseConfidence = 0.2
)

// StationProvider surfaces live stations from an external directory.
type StationProvider struct {
	directory StationDirectory
	logger    *slog.Logger
}

// StationOption configures a StationProvider.
type StationOption func(*StationProvider) error

// WithStationLogger sets a custom logger.
// Default is slog.Default().
func WithStationLogger(logger *slog.Logger) StationOption {
	return func(p *StationProvider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewStationProvider creates a live-station provider.
func NewStationProvider(directory StationDirectory, opts ...StationOption) (*StationProvider, error) {
	if directory == nil {
		return nil, ErrDirectoryRequired
	}

	p := &StationProvider{
		directory: directory,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Name returns the capability name.
func (p *StationProvider) Name() Name { return NameStation }

// Description returns the catalog description.
func (p *StationProvider) Description() string {
	return "finds live radio stations by name, genre or vibe"
}

// Execute looks the query up in the station directory. Confidence is 0.8
// when at least one station matched, 0.2 for the browsing fallback.
// Stations are converted to catalog entries so they merge with tracks
// downstream.
func (p *StationProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error) {
	limit := effectiveLimit(sc)

	stations := p.directory.Lookup(query)
	matched := len(stations) > 0
	if !matched {
		stations = p.directory.All()
	}
	if len(stations) > limit {
		stations = stations[:limit]
	}

	items := make([]Item, 0, len(stations))
	for i, s := range stations {
		// Directory order is already best-first; decay scores gently so
		// downstream ranking keeps it.
		score := 1.0 - float64(i)/float64(len(stations))*0.5
		if !matched {
			score = 0.3
		}
		items = append(items, Item{Track: s.AsTrack(), Score: score})
	}

	confidence := stationBrowseConfidence
	reasoning := fmt.Sprintf("no direct station match, returning %d stations to browse", len(items))
	if matched {
		confidence = stationMatchConfidence
		reasoning = fmt.Sprintf("directory matched %d stations", len(items))
	}

	return &Result{
		Items:      items,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     NameStation,
	}, nil
}
