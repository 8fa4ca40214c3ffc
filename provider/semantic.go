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

	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
)

// semanticSimilarityFloor filters out weakly related embeddings.
const semanticSimilarityFloor = 0.60

// SemanticProvider searches the catalog in embedding space.
type SemanticProvider struct {
	trackRepository storage.TrackRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

// SemanticOption configures a SemanticProvider.
type SemanticOption func(*SemanticProvider) error

// WithSemanticLogger sets a custom logger.
// Default is slog.Default().
func WithSemanticLogger(logger *slog.Logger) SemanticOption {
	return func(p *SemanticProvider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewSemanticProvider creates a semantic search provider.
func NewSemanticProvider(trackRepository storage.TrackRepository, embedder ai.Embedder, opts ...SemanticOption) (*SemanticProvider, error) {
	if trackRepository == nil {
		return nil, ErrTrackRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &SemanticProvider{
		trackRepository: trackRepository,
		embedder:        embedder,
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
func (p *SemanticProvider) Name() Name { return NameSemantic }

// Description returns the catalog description.
func (p *SemanticProvider) Description() string {
	return "finds tracks whose meaning matches the query, using embedding-space similarity"
}

// Execute embeds the query and ranks catalog tracks by cosine similarity.
// Confidence is the mean similarity scaled by 1.2, capped at 1.0.
func (p *SemanticProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*Result, error) {
	embedding, err := p.embedder.EmbedText(ctx, query)
	if err != nil {
		p.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("semantic: embed query: %w", err)
	}

	matches, err := p.trackRepository.FindSimilar(ctx, embedding, semanticSimilarityFloor, effectiveLimit(sc))
	if err != nil {
		p.logger.Error("error querying for similar tracks", "err", err)
		return nil, fmt.Errorf("semantic: find similar: %w", err)
	}

	items := make([]Item, 0, len(matches))
	var sum float64
	for _, match := range matches {
		items = append(items, Item{Track: match.Track, Score: float64(match.Score)})
		sum += float64(match.Score)
	}

	confidence := 0.0
	if len(items) > 0 {
		confidence = sum / float64(len(items)) * 1.2
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return &Result{
		Items:      items,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("embedding similarity matched %d tracks", len(items)),
		Source:     NameSemantic,
	}, nil
}
