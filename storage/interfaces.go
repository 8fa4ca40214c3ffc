package storage

import (
	"context"

	"github.com/poiesic/soundlens/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TrackRepository provides operations for managing the track catalog.
type TrackRepository interface {
	Repository

	// AddTracks adds one or more tracks to the catalog.
	// For tracks with ID=0, computes the content-addressed ID from the
	// (Artist,Title) tuple. Sets InsertedAt if not already set.
	// Returns the tracks with IDs and timestamps populated.
	AddTracks(ctx context.Context, tracks ...*core.Track) ([]*core.Track, error)

	// UpdateTracks updates existing tracks.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any track doesn't exist.
	UpdateTracks(ctx context.Context, tracks ...*core.Track) ([]*core.Track, error)

	// DeleteTracks removes tracks by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any track doesn't exist.
	DeleteTracks(ctx context.Context, ids ...core.ID) error

	// GetTrack retrieves a single track by ID.
	// Returns ErrNotFound if the track doesn't exist.
	GetTrack(ctx context.Context, id core.ID) (*core.Track, error)

	// GetTracks retrieves multiple tracks by their IDs.
	// Returns only the tracks that exist (no error for missing tracks).
	GetTracks(ctx context.Context, ids ...core.ID) ([]*core.Track, error)

	// FindSimilar finds tracks whose embedding is similar to the given vector.
	// Returns tracks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.TrackMatch, error)

	// SearchKeywords finds tracks whose title, artist, genres or tags overlap
	// lexically with the query. Relevance is the fraction of query tokens
	// matched, in [0,1]. Returns up to limit results, best first.
	SearchKeywords(ctx context.Context, query string, limit int) ([]*core.TrackMatch, error)

	// GetTracksByTag retrieves tracks carrying the given attribute tag,
	// up to limit results.
	GetTracksByTag(ctx context.Context, tag string, limit int) ([]*core.Track, error)

	// GetRecentTracks retrieves the N most recently added tracks,
	// ordered by insertion time descending.
	GetRecentTracks(ctx context.Context, limit int) ([]*core.Track, error)

	// GetPopularTracks retrieves tracks ordered by play count descending,
	// up to limit results.
	GetPopularTracks(ctx context.Context, limit int) ([]*core.Track, error)
}
