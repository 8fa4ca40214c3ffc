package provider

import "github.com/poiesic/soundlens/core"

// effectiveLimit resolves the per-provider result cap for a call.
func effectiveLimit(sc *core.SearchContext) int {
	if sc == nil || sc.Limit <= 0 {
		return core.DefaultLimit
	}
	if sc.Limit > core.MaxLimit {
		return core.MaxLimit
	}
	return sc.Limit
}
