package discovery

import (
	"time"

	"github.com/poiesic/soundlens/planner"
	"github.com/poiesic/soundlens/provider"
)

// ResearchMonitor provides hooks to observe a discovery call.
// Implement this interface to track planning, fan-out and aggregation.
type ResearchMonitor interface {
	Start(query string)
	AfterPlan(plan *planner.Plan)
	ProviderSucceeded(source provider.Name, items int, confidence float64, elapsed time.Duration)
	ProviderFailed(source provider.Name, err error, elapsed time.Duration)
	AfterGather(outcomes []*provider.Outcome)
	Finish(response *Response)
}

// noopMonitor is a no-op implementation of ResearchMonitor
type noopMonitor struct{}

var _ ResearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                                    {}
func (n *noopMonitor) AfterPlan(_ *planner.Plan)                                         {}
func (n *noopMonitor) ProviderSucceeded(_ provider.Name, _ int, _ float64, _ time.Duration) {}
func (n *noopMonitor) ProviderFailed(_ provider.Name, _ error, _ time.Duration)          {}
func (n *noopMonitor) AfterGather(_ []*provider.Outcome)                                 {}
func (n *noopMonitor) Finish(_ *Response)                                                {}
