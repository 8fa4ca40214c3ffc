// Package provider defines the search capability abstraction and the five
// built-in capabilities: semantic, keyword, personal, acoustic and station.
//
// Each provider contributes an ordered list of scored items plus a
// self-reported confidence in [0,1]. Confidences follow fixed rules per
// capability so that the aggregator can weigh sources against each other.
// Providers never call one another; the discovery orchestrator fans a query
// out to the planned subset and merges the outcomes.
package provider
