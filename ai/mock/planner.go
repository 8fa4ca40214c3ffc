package mock

import (
	"context"

	"github.com/poiesic/soundlens/ai"
)

// MockStrategyPlanner is a test double for ai.StrategyPlanner.
// It allows custom behavior injection via function fields.
type MockStrategyPlanner struct {
	// PlanSearchFunc is called by PlanSearch if set.
	// If nil, uses default behavior: select keyword and semantic.
	PlanSearchFunc func(ctx context.Context, req *ai.PlanRequest) (*ai.PlanResponse, error)

	callCount int
}

// NewMockStrategyPlanner creates a mock planner with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockStrategyPlanner() *MockStrategyPlanner {
	return &MockStrategyPlanner{}
}

// PlanSearch returns the injected plan or a default keyword+semantic plan.
func (m *MockStrategyPlanner) PlanSearch(ctx context.Context, req *ai.PlanRequest) (*ai.PlanResponse, error) {
	m.callCount++

	if m.PlanSearchFunc != nil {
		return m.PlanSearchFunc(ctx, req)
	}

	return &ai.PlanResponse{
		Strategy:     "default hybrid search",
		Capabilities: []string{"keyword", "semantic"},
		Reasoning:    "mock planner default selection",
	}, nil
}

// CallCount returns the number of times PlanSearch was called.
func (m *MockStrategyPlanner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockStrategyPlanner) Reset() {
	m.callCount = 0
	m.PlanSearchFunc = nil
}
