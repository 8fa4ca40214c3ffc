// Package ingest loads tracks into the catalog and enriches them.
//
// Storage is synchronous so that callers observe their tracks immediately;
// embedding generation runs asynchronously on a worker pool and failures
// there are logged, never propagated. Tracks without a vector simply stay
// invisible to semantic search until a later ingest refreshes them.
package ingest
