package badger

import (
	"context"
	"testing"

	"github.com/poiesic/soundlens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	assert.False(t, backend.IsClosed())

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestOpenBackend_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/catalog"

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = repo.AddTracks(ctx,
		&core.Track{Kind: core.KindTrack, Title: "close", Artist: "a", Vector: []float32{0.9, 0.1, 0.0}},
		&core.Track{Kind: core.KindTrack, Title: "closer", Artist: "b", Vector: []float32{0.95, 0.05, 0.0}},
		&core.Track{Kind: core.KindTrack, Title: "far", Artist: "c", Vector: []float32{0.0, 0.1, 0.9}},
		&core.Track{Kind: core.KindTrack, Title: "unembedded", Artist: "d"},
	)
	require.NoError(t, err)

	t.Run("filters by threshold and sorts descending", func(t *testing.T) {
		matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.6, 10)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "closer", matches[0].Track.Title)
		assert.Equal(t, "close", matches[1].Track.Title)
	})

	t.Run("respects limit", func(t *testing.T) {
		matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.6, 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("skips tracks without embeddings", func(t *testing.T) {
		matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.0, 10)
		require.NoError(t, err)
		for _, m := range matches {
			assert.NotEqual(t, "unembedded", m.Track.Title)
		}
	})
}

func TestFindSimilar_EqualScoreTiebreak(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Identical embeddings produce identical similarity scores.
	added, err := repo.AddTracks(ctx,
		&core.Track{Kind: core.KindTrack, Title: "twin one", Artist: "a", Vector: []float32{1, 0, 0}},
		&core.Track{Kind: core.KindTrack, Title: "twin two", Artist: "b", Vector: []float32{1, 0, 0}},
		&core.Track{Kind: core.KindTrack, Title: "twin three", Artist: "c", Vector: []float32{1, 0, 0}},
	)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.9, 10)
		require.NoError(t, err)
		require.Len(t, matches, len(added))

		for j := 1; j < len(matches); j++ {
			assert.Equal(t, matches[j-1].Score, matches[j].Score)
			assert.Less(t, matches[j-1].Track.Id, matches[j].Track.Id)
		}
	}
}

func TestDotProduct(t *testing.T) {
	assert.Equal(t, float32(0.9), dotProduct([]float32{0.9, 0.1}, []float32{1, 0}))
	assert.Equal(t, float32(0), dotProduct([]float32{1, 0}, []float32{0, 1}))

	// Mismatched lengths use the shorter vector
	assert.Equal(t, float32(1), dotProduct([]float32{1, 1, 1}, []float32{1}))
}
