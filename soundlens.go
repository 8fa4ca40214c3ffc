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

package soundlens

import (
	"context"
	"log/slog"

	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/ai/openai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/directory"
	"github.com/poiesic/soundlens/discovery"
	"github.com/poiesic/soundlens/ingest"
	"github.com/poiesic/soundlens/planner"
	"github.com/poiesic/soundlens/provider"
	"github.com/poiesic/soundlens/storage"
	"github.com/poiesic/soundlens/storage/badger"
)

// Engine wires storage, AI services, providers and the orchestrator into
// one discovery engine over a local catalog.
type Engine struct {
	backend      *badger.Backend
	trackRepo    storage.TrackRepository
	provider     ai.AIProvider
	registry     *provider.Registry
	orchestrator *discovery.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	aiProvider    ai.AIProvider
	directory     provider.StationDirectory
	heuristicOnly bool
}

// WithAIConfig sets the AI service configuration.
// Ignored when WithAIProvider is also given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider.
// Used by tests to substitute mocks for live services.
func WithAIProvider(p ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.aiProvider = p
	}
}

// WithStationDirectory sets the live-station directory.
// Default is the bundled static directory.
func WithStationDirectory(d provider.StationDirectory) EngineOption {
	return func(o *engineOptions) {
		o.directory = d
	}
}

// WithHeuristicPlanner disables the LLM planning path.
// Capability selection then uses the deterministic heuristic only.
func WithHeuristicPlanner() EngineOption {
	return func(o *engineOptions) {
		o.heuristicOnly = true
	}
}

// NewEngine opens the catalog at filePath and assembles the discovery
// pipeline over it.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:  ai.DefaultConfig(),
		directory: directory.NewBundled(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	trackRepo, err := badger.NewTrackRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	aiProvider := options.aiProvider
	if aiProvider == nil {
		aiProvider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			trackRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	engine := &Engine{
		backend:   backend,
		trackRepo: trackRepo,
		provider:  aiProvider,
		logger:    slog.Default(),
	}

	if err := engine.assemble(options); err != nil {
		engine.Close()
		return nil, err
	}

	return engine, nil
}

// assemble builds the provider registry, planner and orchestrator.
func (e *Engine) assemble(options *engineOptions) error {
	semantic, err := provider.NewSemanticProvider(e.trackRepo, e.provider.Embedder())
	if err != nil {
		return err
	}
	keyword, err := provider.NewKeywordProvider(e.trackRepo)
	if err != nil {
		return err
	}
	personal, err := provider.NewPersonalProvider(e.trackRepo)
	if err != nil {
		return err
	}
	acoustic, err := provider.NewAcousticProvider(e.trackRepo)
	if err != nil {
		return err
	}
	station, err := provider.NewStationProvider(options.directory)
	if err != nil {
		return err
	}

	registry, err := provider.NewRegistry(semantic, keyword, personal, acoustic, station)
	if err != nil {
		return err
	}
	e.registry = registry

	plannerOpts := []planner.Option{}
	if !options.heuristicOnly {
		plannerOpts = append(plannerOpts, planner.WithModel(e.provider.StrategyPlanner()))
	}
	pl, err := planner.New(registry, plannerOpts...)
	if err != nil {
		return err
	}

	orchestrator, err := discovery.New(pl, registry)
	if err != nil {
		return err
	}
	e.orchestrator = orchestrator

	return nil
}

// Research runs one discovery call over the catalog.
func (e *Engine) Research(ctx context.Context, query string, sc *core.SearchContext) (*discovery.Response, error) {
	return e.orchestrator.Research(ctx, query, sc)
}

// Clarify refines an ambiguous query with the caller's answer and runs a
// fresh discovery call.
func (e *Engine) Clarify(ctx context.Context, original, clarification string, sc *core.SearchContext) (*discovery.Response, error) {
	return e.orchestrator.Clarify(ctx, original, clarification, sc)
}

// TrackRepository exposes the underlying catalog repository.
func (e *Engine) TrackRepository() storage.TrackRepository {
	return e.trackRepo
}

// Registry exposes the capability registry.
func (e *Engine) Registry() *provider.Registry {
	return e.registry
}

// NewIngestPipeline creates an ingestion pipeline over the engine's catalog.
func (e *Engine) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.trackRepo, e.provider, opts...)
}

// Close releases the orchestrator, AI provider and storage.
func (e *Engine) Close() error {
	if e.orchestrator != nil {
		e.orchestrator.Release()
	}

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.trackRepo.Close(); err != nil {
		e.logger.Error("error closing track repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
