package discovery

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/ai/mock"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/planner"
	"github.com/poiesic/soundlens/provider"
)

// fakeProvider is a scripted provider that records the queries it receives.
type fakeProvider struct {
	name   provider.Name
	result *provider.Result
	err    error
	panics bool
	delay  time.Duration

	mu      sync.Mutex
	queries []string
}

func (f *fakeProvider) Name() provider.Name { return f.name }
func (f *fakeProvider) Description() string { return string(f.name) + " capability" }

func (f *fakeProvider) Execute(ctx context.Context, query string, sc *core.SearchContext) (*provider.Result, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics {
		panic("scripted panic")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func scriptedResult(name provider.Name, confidence float64, tracks ...*core.Track) *provider.Result {
	items := make([]provider.Item, len(tracks))
	for i, tr := range tracks {
		items[i] = provider.Item{Track: tr, Score: 1.0 - float64(i)*0.1}
	}
	return &provider.Result{Source: name, Confidence: confidence, Items: items}
}

func newOrchestrator(t *testing.T, model ai.StrategyPlanner, providers ...provider.Provider) *Orchestrator {
	t.Helper()

	registry, err := provider.NewRegistry(providers...)
	require.NoError(t, err)

	var opts []planner.Option
	if model != nil {
		opts = append(opts, planner.WithModel(model))
	}
	p, err := planner.New(registry, opts...)
	require.NoError(t, err)

	o, err := New(p, registry, WithPoolSize(4))
	require.NoError(t, err)
	t.Cleanup(o.Release)
	return o
}

func TestNewValidation(t *testing.T) {
	registry, err := provider.NewRegistry(&fakeProvider{name: provider.NameKeyword})
	require.NoError(t, err)
	pl, err := planner.New(registry)
	require.NoError(t, err)

	_, err = New(nil, registry)
	assert.ErrorIs(t, err, ErrPlannerRequired)

	_, err = New(pl, nil)
	assert.ErrorIs(t, err, ErrRegistryRequired)
}

func TestResearchShortQueryAsksForClarification(t *testing.T) {
	keyword := &fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5)}
	semantic := &fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)}
	o := newOrchestrator(t, nil, keyword, semantic)

	resp, err := o.Research(context.Background(), "x", nil)
	require.NoError(t, err)

	assert.True(t, resp.NeedsClarification)
	require.Len(t, resp.ClarifyingQuestions, 2)
	assert.Equal(t, "What type of music are you looking for?", resp.ClarifyingQuestions[0])
	assert.Empty(t, resp.Items)

	// No provider was invoked.
	assert.Empty(t, keyword.calls())
	assert.Empty(t, semantic.calls())
}

func TestResearchMergesProviders(t *testing.T) {
	shared := track(2, "Shared Hit")
	keyword := &fakeProvider{
		name:   provider.NameKeyword,
		result: scriptedResult(provider.NameKeyword, 0.5, track(1, "Keyword Only"), shared),
	}
	semantic := &fakeProvider{
		name:   provider.NameSemantic,
		result: scriptedResult(provider.NameSemantic, 0.8, shared, track(3, "Semantic Only")),
	}
	o := newOrchestrator(t, nil, keyword, semantic)

	resp, err := o.Research(context.Background(), "songs by the orbits", nil)
	require.NoError(t, err)

	assert.False(t, resp.NeedsClarification)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Shared Hit", resp.Items[0].Track.Title)
	assert.Len(t, resp.Items[0].Sources, 2)
	assert.Greater(t, resp.Confidence, 0.0)
	assert.NotZero(t, resp.Elapsed)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, []provider.Name{provider.NameKeyword, provider.NameSemantic}, resp.Plan.Providers)
}

func TestResearchGracefulDegradation(t *testing.T) {
	keyword := &fakeProvider{name: provider.NameKeyword, err: assert.AnError}
	semantic := &fakeProvider{
		name:   provider.NameSemantic,
		result: scriptedResult(provider.NameSemantic, 0.7, track(1, "Survivor")),
	}
	o := newOrchestrator(t, nil, keyword, semantic)

	resp, err := o.Research(context.Background(), "songs by the orbits", nil)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Survivor", resp.Items[0].Track.Title)

	require.Len(t, resp.Sources, 2)
	var failed, ok int
	for _, s := range resp.Sources {
		if s.Succeeded {
			ok++
		} else {
			failed++
			assert.NotEmpty(t, s.Error)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
}

func TestResearchProviderPanicIsolated(t *testing.T) {
	panicky := &fakeProvider{name: provider.NameKeyword, panics: true}
	semantic := &fakeProvider{
		name:   provider.NameSemantic,
		result: scriptedResult(provider.NameSemantic, 0.7, track(1, "Survivor")),
	}
	o := newOrchestrator(t, nil, panicky, semantic)

	resp, err := o.Research(context.Background(), "songs by the orbits", nil)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	for _, s := range resp.Sources {
		if s.Source == provider.NameKeyword {
			assert.False(t, s.Succeeded)
			assert.Contains(t, s.Error, "panicked")
		}
	}
}

func TestResearchAllProvidersFailedIsNotAnError(t *testing.T) {
	keyword := &fakeProvider{name: provider.NameKeyword, err: assert.AnError}
	semantic := &fakeProvider{name: provider.NameSemantic, err: assert.AnError}
	o := newOrchestrator(t, nil, keyword, semantic)

	resp, err := o.Research(context.Background(), "songs by the orbits", nil)
	require.NoError(t, err)

	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Confidence)
	assert.Contains(t, resp.Reasoning, "no results found")
}

func TestResearchValidation(t *testing.T) {
	o := newOrchestrator(t, nil,
		&fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5)},
		&fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)},
	)

	t.Run("empty query", func(t *testing.T) {
		_, err := o.Research(context.Background(), "   ", nil)
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("query too long", func(t *testing.T) {
		long := make([]byte, core.MaxQueryLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := o.Research(context.Background(), string(long), nil)
		assert.ErrorIs(t, err, core.ErrQueryTooLong)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := o.Research(context.Background(), "fine query", &core.SearchContext{Limit: core.MaxLimit + 1})
		assert.ErrorIs(t, err, core.ErrInvalidSearchContext)
	})
}

func TestResearchProviderTimeout(t *testing.T) {
	slow := &fakeProvider{name: provider.NameKeyword, delay: 200 * time.Millisecond}
	fast := &fakeProvider{
		name:   provider.NameSemantic,
		result: scriptedResult(provider.NameSemantic, 0.7, track(1, "Fast")),
	}

	registry, err := provider.NewRegistry(slow, fast)
	require.NoError(t, err)
	pl, err := planner.New(registry)
	require.NoError(t, err)

	o, err := New(pl, registry, WithProviderTimeout(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(o.Release)

	resp, err := o.Research(context.Background(), "songs by the orbits", nil)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	for _, s := range resp.Sources {
		if s.Source == provider.NameKeyword {
			assert.False(t, s.Succeeded)
		}
	}
}

func TestClarifyRefinesQuery(t *testing.T) {
	var modelQueries []string
	model := mock.NewMockStrategyPlanner()
	model.PlanSearchFunc = func(ctx context.Context, req *ai.PlanRequest) (*ai.PlanResponse, error) {
		modelQueries = append(modelQueries, req.Query)
		return &ai.PlanResponse{Capabilities: []string{"keyword", "semantic"}}, nil
	}

	keyword := &fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5, track(1, "Hit"))}
	semantic := &fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)}
	o := newOrchestrator(t, model, keyword, semantic)

	resp, err := o.Clarify(context.Background(), "driving music", "70s rock", nil)
	require.NoError(t, err)
	assert.False(t, resp.NeedsClarification)

	// The refined query is what flows through planning and execution.
	require.Len(t, modelQueries, 1)
	assert.Equal(t, "driving music - 70s rock", modelQueries[0])
	assert.Equal(t, []string{"driving music - 70s rock"}, keyword.calls())
	assert.Equal(t, []string{"driving music - 70s rock"}, semantic.calls())
}

func TestClarifySingleRoundOnly(t *testing.T) {
	model := mock.NewMockStrategyPlanner()
	model.PlanSearchFunc = func(ctx context.Context, req *ai.PlanRequest) (*ai.PlanResponse, error) {
		return &ai.PlanResponse{NeedsClarification: true, ClarifyingQuestions: []string{"Still unclear?"}}, nil
	}

	keyword := &fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5, track(1, "Hit"))}
	semantic := &fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)}
	o := newOrchestrator(t, model, keyword, semantic)

	resp, err := o.Clarify(context.Background(), "something", "anything really", nil)
	require.NoError(t, err)

	// No second clarification round: proceeds with defaults.
	assert.False(t, resp.NeedsClarification)
	assert.Equal(t, []provider.Name{provider.NameKeyword, provider.NameSemantic}, resp.Plan.Providers)
	assert.NotEmpty(t, keyword.calls())
}

func TestClarifyValidation(t *testing.T) {
	o := newOrchestrator(t, nil,
		&fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5)},
		&fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)},
	)

	_, err := o.Clarify(context.Background(), "", "70s rock", nil)
	assert.ErrorIs(t, err, core.ErrInvalidQuery)

	_, err = o.Clarify(context.Background(), "driving music", "  ", nil)
	assert.ErrorIs(t, err, ErrEmptyClarification)

	// Both halves are valid alone but the refined concatenation is not.
	long := strings.Repeat("a", 300)
	_, err = o.Clarify(context.Background(), long, long, nil)
	assert.ErrorIs(t, err, core.ErrQueryTooLong)
}

// recordingMonitor captures the observation sequence of one call.
type recordingMonitor struct {
	mu        sync.Mutex
	events    []string
	succeeded []provider.Name
	failed    []provider.Name
}

func (m *recordingMonitor) record(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *recordingMonitor) Start(_ string)            { m.record("start") }
func (m *recordingMonitor) AfterPlan(_ *planner.Plan) { m.record("plan") }
func (m *recordingMonitor) ProviderSucceeded(source provider.Name, _ int, _ float64, _ time.Duration) {
	m.mu.Lock()
	m.succeeded = append(m.succeeded, source)
	m.mu.Unlock()
}
func (m *recordingMonitor) ProviderFailed(source provider.Name, _ error, _ time.Duration) {
	m.mu.Lock()
	m.failed = append(m.failed, source)
	m.mu.Unlock()
}
func (m *recordingMonitor) AfterGather(_ []*provider.Outcome) { m.record("gather") }
func (m *recordingMonitor) Finish(_ *Response)                { m.record("finish") }

func TestResearchWithMonitor(t *testing.T) {
	keyword := &fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5, track(1, "Hit"))}
	semantic := &fakeProvider{name: provider.NameSemantic, err: assert.AnError}
	o := newOrchestrator(t, nil, keyword, semantic)

	monitor := &recordingMonitor{}
	_, err := o.ResearchWithMonitor(context.Background(), "songs by the orbits", nil, monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "plan", "gather", "finish"}, monitor.events)
	assert.Equal(t, []provider.Name{provider.NameKeyword}, monitor.succeeded)
	assert.Equal(t, []provider.Name{provider.NameSemantic}, monitor.failed)
}

func TestResearchNormalizesContext(t *testing.T) {
	var seen *core.SearchContext
	capture := &fakeProvider{name: provider.NameKeyword, result: scriptedResult(provider.NameKeyword, 0.5)}
	semantic := &fakeProvider{name: provider.NameSemantic, result: scriptedResult(provider.NameSemantic, 0.5)}

	registry, err := provider.NewRegistry(&contextCapture{fakeProvider: capture, out: &seen}, semantic)
	require.NoError(t, err)
	pl, err := planner.New(registry)
	require.NoError(t, err)
	o, err := New(pl, registry)
	require.NoError(t, err)
	t.Cleanup(o.Release)

	_, err = o.Research(context.Background(), "  songs by the orbits  ", &core.SearchContext{Identity: "0xlistener"})
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, core.DefaultLimit, seen.Limit)
	assert.Equal(t, "0xlistener", seen.Identity)

	// The query reaches providers trimmed.
	assert.Equal(t, []string{"songs by the orbits"}, capture.calls())
}

type contextCapture struct {
	*fakeProvider
	out **core.SearchContext
}

func (c *contextCapture) Execute(ctx context.Context, query string, sc *core.SearchContext) (*provider.Result, error) {
	*c.out = sc
	return c.fakeProvider.Execute(ctx, query, sc)
}
