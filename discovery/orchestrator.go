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
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/planner"
	"github.com/poiesic/soundlens/provider"
)

// Orchestrator runs the full discovery pipeline: plan, scatter-gather,
// aggregate. It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	planner         *planner.Planner
	registry        *provider.Registry
	pool            *ants.Pool
	providerTimeout time.Duration
	logger          *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for provider fan-out.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithProviderTimeout bounds each provider call.
// Default is 0, meaning no per-provider timeout: a stalled provider then
// stalls the gather step until the caller's context expires.
func WithProviderTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		if d < 0 {
			d = 0
		}
		o.providerTimeout = d
		return nil
	}
}

// New creates a discovery orchestrator.
func New(p *planner.Planner, registry *provider.Registry, opts ...Option) (*Orchestrator, error) {
	if p == nil {
		return nil, ErrPlannerRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		planner:  p,
		registry: registry,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			o.Release()
			return nil, err
		}
	}

	return o, nil
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// Research runs one discovery call for the query.
// Validation failures return wrapped sentinel errors; provider failures
// degrade the response instead of failing it.
func (o *Orchestrator) Research(ctx context.Context, query string, sc *core.SearchContext) (*Response, error) {
	return o.ResearchWithMonitor(ctx, query, sc, nil)
}

// ResearchWithMonitor runs one discovery call with observation hooks.
func (o *Orchestrator) ResearchWithMonitor(ctx context.Context, query string, sc *core.SearchContext, monitor ResearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()

	query, err := core.ValidateQuery(query)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateSearchContext(sc); err != nil {
		return nil, err
	}
	sc = core.NormalizeSearchContext(sc)

	monitor.Start(query)

	plan := o.planner.BuildPlan(ctx, query, sc)
	monitor.AfterPlan(plan)

	if plan.NeedsClarification {
		response := &Response{
			NeedsClarification:  true,
			ClarifyingQuestions: plan.ClarifyingQuestions,
			Plan:                plan,
			Reasoning:           plan.Reasoning,
			Elapsed:             time.Since(start),
		}
		monitor.Finish(response)
		return response, nil
	}

	response, err := o.executeAndAggregate(ctx, query, sc, plan, monitor)
	if err != nil {
		return nil, err
	}
	response.Elapsed = time.Since(start)
	monitor.Finish(response)
	return response, nil
}

// Clarify refines an ambiguous query with the caller's answer and runs the
// full pipeline on the refined query. The call is stateless; the original
// query survives only inside the refined string.
func (o *Orchestrator) Clarify(ctx context.Context, original, clarification string, sc *core.SearchContext) (*Response, error) {
	return o.ClarifyWithMonitor(ctx, original, clarification, sc, nil)
}

// ClarifyWithMonitor refines and runs an ambiguous query with observation
// hooks. A single clarification round only: if the planner still judges the
// refined query ambiguous it proceeds with the default capability set
// instead of asking again.
func (o *Orchestrator) ClarifyWithMonitor(ctx context.Context, original, clarification string, sc *core.SearchContext, monitor ResearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()

	original, err := core.ValidateQuery(original)
	if err != nil {
		return nil, err
	}
	clarification, err = core.ValidateQuery(clarification)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyClarification, err)
	}
	if err := core.ValidateSearchContext(sc); err != nil {
		return nil, err
	}
	sc = core.NormalizeSearchContext(sc)

	// The refined query runs as a fresh call, so it obeys the same length
	// bound even when both halves are individually valid.
	refined, err := core.ValidateQuery(original + " - " + clarification)
	if err != nil {
		return nil, err
	}
	monitor.Start(refined)

	plan := o.planner.BuildPlan(ctx, refined, sc)
	if plan.NeedsClarification {
		// No second round. Fall back to the default capability set.
		fallback := make([]provider.Name, 0, 2)
		for _, name := range []provider.Name{provider.NameKeyword, provider.NameSemantic} {
			if o.registry.Has(name) {
				fallback = append(fallback, name)
			}
		}
		plan = &planner.Plan{
			Strategy:  "default search after clarification",
			Providers: fallback,
			Reasoning: "refined query still ambiguous, proceeding with default capabilities",
		}
	}
	monitor.AfterPlan(plan)

	response, err := o.executeAndAggregate(ctx, refined, sc, plan, monitor)
	if err != nil {
		return nil, err
	}
	response.Elapsed = time.Since(start)
	monitor.Finish(response)
	return response, nil
}

func (o *Orchestrator) executeAndAggregate(ctx context.Context, query string, sc *core.SearchContext, plan *planner.Plan, monitor ResearchMonitor) (*Response, error) {
	outcomes := o.scatterGather(ctx, query, sc, plan.Providers)

	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		if outcome.Succeeded() {
			monitor.ProviderSucceeded(outcome.Source, len(outcome.Result.Items), outcome.Result.Confidence, outcome.Elapsed)
		} else {
			monitor.ProviderFailed(outcome.Source, outcome.Err, outcome.Elapsed)
		}
	}
	monitor.AfterGather(outcomes)

	items, sources, confidence, reasoning := aggregate(outcomes)

	o.logger.Info("discovery call complete",
		"query", query,
		"providers", len(plan.Providers),
		"results", len(items),
		"confidence", confidence)

	return &Response{
		Plan:       plan,
		Items:      items,
		Sources:    sources,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}
