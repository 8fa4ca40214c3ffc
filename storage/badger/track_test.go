package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.TrackRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestAddTracks_ContentAddressedIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tracks := []*core.Track{
		{Kind: core.KindTrack, Title: "Do It Again", Artist: "Steely Dan"},
		{Kind: core.KindTrack, Title: "Peg", Artist: "Steely Dan"},
	}

	added, err := repo.AddTracks(ctx, tracks...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.Equal(t, core.IDFromContent("(Steely Dan,Do It Again)"), added[0].Id)
	assert.NotEqual(t, added[0].Id, added[1].Id)
	assert.False(t, added[0].InsertedAt.IsZero())
}

func TestGetTrack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddTracks(ctx, &core.Track{
		Kind:   core.KindTrack,
		Title:  "Kid Charlemagne",
		Artist: "Steely Dan",
		Genres: []string{"rock", "jazz rock"},
	})
	require.NoError(t, err)

	t.Run("existing track", func(t *testing.T) {
		track, err := repo.GetTrack(ctx, added[0].Id)
		require.NoError(t, err)
		assert.Equal(t, "Kid Charlemagne", track.Title)
		assert.Equal(t, []string{"rock", "jazz rock"}, track.Genres)
	})

	t.Run("missing track", func(t *testing.T) {
		_, err := repo.GetTrack(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetTracks_SkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddTracks(ctx, &core.Track{Kind: core.KindTrack, Title: "Peg", Artist: "Steely Dan"})
	require.NoError(t, err)

	tracks, err := repo.GetTracks(ctx, added[0].Id, core.ID(999))
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestUpdateTracks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddTracks(ctx, &core.Track{
		Kind:   core.KindTrack,
		Title:  "Aja",
		Artist: "Steely Dan",
		Tags:   []string{"mellow"},
	})
	require.NoError(t, err)

	track := added[0]
	track.Tags = []string{"smooth", "late night"}
	_, err = repo.UpdateTracks(ctx, track)
	require.NoError(t, err)

	// Old tag entry must be gone, new ones present
	byOld, err := repo.GetTracksByTag(ctx, "mellow", 10)
	require.NoError(t, err)
	assert.Empty(t, byOld)

	byNew, err := repo.GetTracksByTag(ctx, "smooth", 10)
	require.NoError(t, err)
	require.Len(t, byNew, 1)
	assert.Equal(t, track.Id, byNew[0].Id)

	t.Run("missing track", func(t *testing.T) {
		_, err := repo.UpdateTracks(ctx, &core.Track{Id: 424242, Kind: core.KindTrack, Title: "ghost"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteTracks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddTracks(ctx, &core.Track{
		Kind:   core.KindTrack,
		Title:  "Black Cow",
		Artist: "Steely Dan",
		Tags:   []string{"smooth"},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTracks(ctx, added[0].Id))

	_, err = repo.GetTrack(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	byTag, err := repo.GetTracksByTag(ctx, "smooth", 10)
	require.NoError(t, err)
	assert.Empty(t, byTag)

	t.Run("missing track", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteTracks(ctx, core.ID(31337)), storage.ErrNotFound)
	})
}

func TestGetTracksByTag(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddTracks(ctx,
		&core.Track{Kind: core.KindTrack, Title: "Midnight City", Artist: "M83", Tags: []string{"upbeat", "synth"}},
		&core.Track{Kind: core.KindTrack, Title: "Weightless", Artist: "Marconi Union", Tags: []string{"chill", "ambient"}},
		&core.Track{Kind: core.KindTrack, Title: "Intro", Artist: "The xx", Tags: []string{"chill"}},
	)
	require.NoError(t, err)

	chill, err := repo.GetTracksByTag(ctx, "chill", 10)
	require.NoError(t, err)
	assert.Len(t, chill, 2)

	t.Run("tag lookup is case insensitive", func(t *testing.T) {
		chill, err := repo.GetTracksByTag(ctx, "CHILL", 10)
		require.NoError(t, err)
		assert.Len(t, chill, 2)
	})

	t.Run("respects limit", func(t *testing.T) {
		chill, err := repo.GetTracksByTag(ctx, "chill", 1)
		require.NoError(t, err)
		assert.Len(t, chill, 1)
	})

	t.Run("unknown tag", func(t *testing.T) {
		none, err := repo.GetTracksByTag(ctx, "polka", 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGetRecentTracks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.AddTracks(ctx, &core.Track{Kind: core.KindTrack, Title: title, Artist: "tester"})
		require.NoError(t, err)
		// Date index keys have microsecond resolution
		time.Sleep(time.Millisecond)
	}

	recent, err := repo.GetRecentTracks(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first
	assert.Equal(t, "third", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)
}

func TestGetPopularTracks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddTracks(ctx,
		&core.Track{Kind: core.KindTrack, Title: "rarely played", Artist: "a", PlayCount: 3},
		&core.Track{Kind: core.KindTrack, Title: "hit", Artist: "b", PlayCount: 900},
		&core.Track{Kind: core.KindTrack, Title: "sleeper", Artist: "c", PlayCount: 40},
	)
	require.NoError(t, err)

	popular, err := repo.GetPopularTracks(ctx, 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "hit", popular[0].Title)
	assert.Equal(t, "sleeper", popular[1].Title)
}

func TestSearchKeywords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddTracks(ctx,
		&core.Track{Kind: core.KindTrack, Title: "Driving Home", Artist: "Roadies", Genres: []string{"rock"}},
		&core.Track{Kind: core.KindTrack, Title: "Night Drive", Artist: "Synthwave Kids", Genres: []string{"electronic"}, Tags: []string{"driving"}},
		&core.Track{Kind: core.KindTrack, Title: "Lullaby", Artist: "Sleepers", Genres: []string{"ambient"}},
	)
	require.NoError(t, err)

	t.Run("matches title, genre and tags", func(t *testing.T) {
		matches, err := repo.SearchKeywords(ctx, "driving rock", 10)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		// "Driving Home" matches both tokens, "Night Drive" only one (via tag)
		assert.Equal(t, "Driving Home", matches[0].Track.Title)
		assert.Equal(t, float32(1.0), matches[0].Score)
		assert.Equal(t, float32(0.5), matches[1].Score)
	})

	t.Run("no matches", func(t *testing.T) {
		matches, err := repo.SearchKeywords(ctx, "polka accordion", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("stop words only", func(t *testing.T) {
		matches, err := repo.SearchKeywords(ctx, "the and of", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("respects limit", func(t *testing.T) {
		matches, err := repo.SearchKeywords(ctx, "driving", 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}
