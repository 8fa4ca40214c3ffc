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
	"sync"
	"time"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/provider"
)

// scatterGather fans the query out to the planned providers over the
// worker pool and waits for every outcome. Each task writes to its own
// slot; completion order never affects the result. Panics and errors in
// one provider never disturb its siblings.
func (o *Orchestrator) scatterGather(ctx context.Context, query string, sc *core.SearchContext, names []provider.Name) []*provider.Outcome {
	outcomes := make([]*provider.Outcome, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		p, err := o.registry.Get(name)
		if err != nil {
			// Planner output is validated against the registry, so this
			// only fires on a registry/planner mismatch.
			outcomes[i] = &provider.Outcome{Source: name, Err: err}
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = o.runProvider(ctx, p, query, sc)
		}

		if submitErr := o.pool.Submit(task); submitErr != nil {
			wg.Done()
			outcomes[i] = &provider.Outcome{Source: name, Err: fmt.Errorf("submit provider task: %w", submitErr)}
		}
	}
	wg.Wait()

	return outcomes
}

// runProvider executes one provider with panic isolation, optional
// per-provider timeout and elapsed-time accounting.
func (o *Orchestrator) runProvider(ctx context.Context, p provider.Provider, query string, sc *core.SearchContext) (outcome *provider.Outcome) {
	start := time.Now()
	outcome = &provider.Outcome{Source: p.Name()}

	defer func() {
		outcome.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			o.logger.Error("provider panicked", "provider", p.Name(), "panic", r)
			outcome.Result = nil
			outcome.Err = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()

	if o.providerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.providerTimeout)
		defer cancel()
	}

	result, err := p.Execute(ctx, query, sc)
	if err != nil {
		o.logger.Warn("provider failed", "provider", p.Name(), "err", err)
		outcome.Err = err
		return outcome
	}

	outcome.Result = result
	return outcome
}
