package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// StrategyPlanner classifies a discovery query and selects search capabilities.
// It is an untrusted external collaborator: callers must validate every field
// of the response and keep a deterministic fallback that needs no planner.
// Implementations must be thread-safe for concurrent use.
type StrategyPlanner interface {
	// PlanSearch sends the query, caller context and capability catalog to the
	// planning service and returns its structured strategy response.
	// Returns an error if the service is unreachable or its response cannot
	// be parsed; callers recover by falling back to a local heuristic.
	PlanSearch(ctx context.Context, req *PlanRequest) (*PlanResponse, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and StrategyPlanner instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// StrategyPlanner returns the query planning service.
	// The returned StrategyPlanner is safe for concurrent use.
	StrategyPlanner() StrategyPlanner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
