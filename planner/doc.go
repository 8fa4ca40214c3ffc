// Package planner decides which search capabilities to run for a query.
//
// Planning has two paths. When a planning model is configured, the query,
// caller context and capability catalog are sent to it and the structured
// response is validated against the registry; an invalid response falls
// back to the deterministic heuristic. Without a model, or on any model
// failure, the heuristic alone selects capabilities. Planning never fails
// and never invokes providers.
package planner
