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
	"context"
	"log/slog"

	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/provider"
)

// Plan is the outcome of strategy planning for one query.
// Invariant: NeedsClarification implies Providers is empty.
type Plan struct {
	Strategy            string
	Providers           []provider.Name // Execution order
	Reasoning           string
	NeedsClarification  bool
	ClarifyingQuestions []string
}

// Planner decides which capabilities to run for a query.
// When a planning model is configured it is consulted first; the
// deterministic heuristic covers model absence and model failure, so
// planning itself never fails.
type Planner struct {
	registry *provider.Registry
	model    ai.StrategyPlanner
	logger   *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner) error

// WithModel sets the LLM planning service.
// Without a model the planner is purely heuristic.
func WithModel(model ai.StrategyPlanner) Option {
	return func(p *Planner) error {
		p.model = model
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a planner over the given registry.
func New(registry *provider.Registry, opts ...Option) (*Planner, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	p := &Planner{
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// BuildPlan produces a plan for the query. The model path is tried first
// when configured; any model failure falls back to the heuristic and is
// never surfaced to the caller. The short-query clarification rule lives
// in the heuristic only: a configured model sees every query and makes
// its own clarification call.
func (p *Planner) BuildPlan(ctx context.Context, query string, sc *core.SearchContext) *Plan {
	if p.model != nil {
		if plan := p.modelPlan(ctx, query, sc); plan != nil {
			return plan
		}
	}

	return p.heuristicPlan(query, sc)
}

// modelPlan consults the planning model. Returns nil when the model call
// failed or produced an invalid plan, signalling heuristic fallback.
func (p *Planner) modelPlan(ctx context.Context, query string, sc *core.SearchContext) *Plan {
	req := &ai.PlanRequest{
		Query:   query,
		Catalog: p.registry.Catalog(),
	}
	if sc != nil {
		req.Identity = sc.Identity
		req.Mood = sc.Mood
		req.Genres = sc.GenrePreferences
	}

	resp, err := p.model.PlanSearch(ctx, req)
	if err != nil {
		p.logger.Warn("planning model failed, using heuristic", "err", err)
		return nil
	}

	if resp.NeedsClarification {
		questions := resp.ClarifyingQuestions
		if len(questions) == 0 {
			questions = defaultClarifyingQuestions()
		}
		return &Plan{
			Strategy:            resp.Strategy,
			Reasoning:           resp.Reasoning,
			NeedsClarification:  true,
			ClarifyingQuestions: questions,
		}
	}

	// The model response is an untrusted boundary: one unknown capability
	// name invalidates the whole plan rather than being dropped.
	names := make([]provider.Name, 0, len(resp.Capabilities))
	for _, c := range resp.Capabilities {
		name, err := provider.ParseName(c)
		if err != nil {
			p.logger.Warn("planning model selected unknown capability, using heuristic", "capability", c)
			return nil
		}
		if !p.registry.Has(name) {
			p.logger.Warn("planning model selected unregistered capability, using heuristic", "capability", c)
			return nil
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		names = []provider.Name{provider.NameKeyword, provider.NameSemantic}
	}

	return &Plan{
		Strategy:  resp.Strategy,
		Providers: dedupeNames(names),
		Reasoning: resp.Reasoning,
	}
}

func dedupeNames(names []provider.Name) []provider.Name {
	seen := make(map[provider.Name]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
