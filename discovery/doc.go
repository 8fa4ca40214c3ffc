// Package discovery orchestrates scatter-gather music discovery.
//
// A call flows through three stages: the planner selects a subset of
// registered capabilities, the executor fans the query out to them
// concurrently over a worker pool, and the aggregator merges the outcomes
// into one ranked list with an overall confidence. Providers fail
// independently; partial success is success, and only validation failures
// surface as errors to the caller.
package discovery
