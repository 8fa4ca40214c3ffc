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
	"github.com/poiesic/soundlens/storage"
)

// KeywordProvider searches the catalog by lexical token overlap against
// title, artist, genres and tags.
type KeywordProvider struct {
	trackRepository storage.TrackRepository
	logger          *slog.Logger
}

// KeywordOption configures a KeywordProvider.
type KeywordOption func(*KeywordProvider) error

// WithKeywordLogger sets a custom logger.
// Default is slog.Default().
func WithKeywordLogger(logger *slog.Logger) KeywordOption {
	return func(p *KeywordProvider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewKeywordProvider creates a keyword search provider.
func NewKeywordProvider(trackRepository storage.TrackRepository, opts ...KeywordOption) (*KeywordProvider, error) {
	if trackRepository == nil {
		return nil, ErrTrackRepositoryRequired
	}

	p := &KeywordProvider{
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
func (p *KeywordProvider) Name() Name { return NameKeyword }

// Description returns the catalog description.
func (p *KeywordProvider) Description() string {
	return "finds tracks by exact word matches on title, artist, genre and tags"
}

// Execute runs a token-overlap search.
// Relevance per track is the fraction of query tokens matched; confidence
// is the mean relevance scaled by 2.0, capped at 1.0. The scale compensates
// for partial-overlap scores still signalling a strong lexical hit.
func (p *KeywordProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error) {
	matches, err := p.trackRepository.SearchKeywords(ctx, query, effectiveLimit(sc))
	if err != nil {
		p.logger.Error("error running keyword search", "query", query, "err", err)
		return nil, fmt.Errorf("keyword: search: %w", err)
	}

	items := make([]Item, 0, len(matches))
	var sum float64
	for _, match := range matches {
		items = append(items, Item{Track: match.Track, Score: float64(match.Score)})
		sum += float64(match.Score)
	}

	confidence := 0.0
	if len(items) > 0 {
		confidence = sum / float64(len(items)) * 2.0
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return &Result{
		Items:      items,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("lexical overlap matched %d tracks", len(items)),
		Source:     NameKeyword,
	}, nil
}
