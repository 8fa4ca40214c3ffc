package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/soundlens/ai/mock"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
	"github.com/poiesic/soundlens/storage/badger"
)

func newTestRepository(t *testing.T) storage.TrackRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return repo
}

func seedTracks(t *testing.T, repo storage.TrackRepository, tracks ...*core.Track) []*core.Track {
	t.Helper()
	added, err := repo.AddTracks(context.Background(), tracks...)
	require.NoError(t, err)
	return added
}

func TestSemanticProvider(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Neon Skyline", Artist: "The Orbits", Vector: []float32{1, 0, 0}},
		&core.Track{Kind: core.KindTrack, Title: "Glass Harbor", Artist: "Mira Vale", Vector: []float32{0.8, 0.6, 0}},
		&core.Track{Kind: core.KindTrack, Title: "Iron Creek", Artist: "Dust Choir", Vector: []float32{0, 1, 0}},
	)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	p, err := NewSemanticProvider(repo, embedder)
	require.NoError(t, err)
	assert.Equal(t, NameSemantic, p.Name())

	result, err := p.Execute(context.Background(), "dreamy synth night drive", nil)
	require.NoError(t, err)

	// Iron Creek sits below the similarity floor and is excluded.
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Neon Skyline", result.Items[0].Track.Title)
	assert.Equal(t, "Glass Harbor", result.Items[1].Track.Title)
	assert.Greater(t, result.Items[0].Score, result.Items[1].Score)

	// mean(1.0, 0.8) * 1.2 caps at 1.0
	assert.InDelta(t, 1.0, result.Confidence, 1e-6)
	assert.Equal(t, NameSemantic, result.Source)
}

func TestSemanticProviderEmptyCatalog(t *testing.T) {
	repo := newTestRepository(t)
	p, err := NewSemanticProvider(repo, mock.NewMockEmbedder())
	require.NoError(t, err)

	result, err := p.Execute(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Confidence)
}

func TestSemanticProviderEmbedError(t *testing.T) {
	repo := newTestRepository(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}

	p, err := NewSemanticProvider(repo, embedder)
	require.NoError(t, err)

	_, err = p.Execute(context.Background(), "anything", nil)
	assert.Error(t, err)
}

func TestKeywordProvider(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Midnight Train", Artist: "The Orbits", Genres: []string{"blues"}},
		&core.Track{Kind: core.KindTrack, Title: "Midnight Sun", Artist: "Mira Vale", Genres: []string{"pop"}},
		&core.Track{Kind: core.KindTrack, Title: "Harvest Moon", Artist: "Dust Choir", Genres: []string{"folk"}},
	)

	p, err := NewKeywordProvider(repo)
	require.NoError(t, err)
	assert.Equal(t, NameKeyword, p.Name())

	result, err := p.Execute(context.Background(), "midnight train", nil)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Midnight Train", result.Items[0].Track.Title)
	assert.InDelta(t, 1.0, result.Items[0].Score, 1e-6)
	assert.Equal(t, "Midnight Sun", result.Items[1].Track.Title)
	assert.InDelta(t, 0.5, result.Items[1].Score, 1e-6)

	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestKeywordProviderNoMatches(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Harvest Moon", Artist: "Dust Choir"},
	)

	p, err := NewKeywordProvider(repo)
	require.NoError(t, err)

	result, err := p.Execute(context.Background(), "quantum polka", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Confidence)
}

func TestPersonalProviderAnonymous(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Big Hit", Artist: "The Orbits", PlayCount: 100},
		&core.Track{Kind: core.KindTrack, Title: "Mid Hit", Artist: "Mira Vale", PlayCount: 50},
		&core.Track{Kind: core.KindTrack, Title: "Deep Cut", Artist: "Dust Choir", PlayCount: 10},
	)

	p, err := NewPersonalProvider(repo)
	require.NoError(t, err)
	assert.Equal(t, NamePersonal, p.Name())

	result, err := p.Execute(context.Background(), "anything", nil)
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "Big Hit", result.Items[0].Track.Title)
	assert.Equal(t, "Mid Hit", result.Items[1].Track.Title)
	assert.Equal(t, "Deep Cut", result.Items[2].Track.Title)
	assert.InDelta(t, 0.6, result.Confidence, 1e-6)
}

func TestPersonalProviderIdentified(t *testing.T) {
	repo := newTestRepository(t)
	added := seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Big Hit", Artist: "The Orbits", PlayCount: 100},
		&core.Track{Kind: core.KindTrack, Title: "Loved One", Artist: "Mira Vale", PlayCount: 50},
	)

	p, err := NewPersonalProvider(repo)
	require.NoError(t, err)

	sc := &core.SearchContext{
		Identity:      "0xlistener",
		LovedTrackIds: []core.ID{added[1].Id},
	}

	result, err := p.Execute(context.Background(), "anything", sc)
	require.NoError(t, err)

	// Loved track outranks raw popularity: 0.4*0.5 + 0.3 > 0.4*1.0.
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Loved One", result.Items[0].Track.Title)
	assert.InDelta(t, 0.75, result.Confidence, 1e-6)
	assert.Contains(t, result.Reasoning, "identified listener")
}

func TestPersonalProviderIdentityWithoutSignals(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Big Hit", Artist: "The Orbits", PlayCount: 100},
	)

	p, err := NewPersonalProvider(repo)
	require.NoError(t, err)

	// Identity alone is not a taste signal.
	result, err := p.Execute(context.Background(), "anything", &core.SearchContext{Identity: "0xlistener"})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, result.Confidence, 1e-6)
}

func TestAcousticProvider(t *testing.T) {
	repo := newTestRepository(t)
	seedTracks(t, repo,
		&core.Track{Kind: core.KindTrack, Title: "Evening Drift", Artist: "Mira Vale", Tags: []string{"chill", "dreamy"}},
		&core.Track{Kind: core.KindTrack, Title: "Slow Tide", Artist: "Dust Choir", Tags: []string{"chill"}},
		&core.Track{Kind: core.KindTrack, Title: "Stadium Rush", Artist: "The Orbits", Tags: []string{"energetic"}},
	)

	p, err := NewAcousticProvider(repo)
	require.NoError(t, err)
	assert.Equal(t, NameAcoustic, p.Name())

	t.Run("attributes extracted", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "something chill and dreamy", nil)
		require.NoError(t, err)

		assert.InDelta(t, 0.7, result.Confidence, 1e-6)
		require.Len(t, result.Items, 2)
		// Evening Drift carries both attributes, Slow Tide only one.
		assert.Equal(t, "Evening Drift", result.Items[0].Track.Title)
		assert.InDelta(t, 1.0, result.Items[0].Score, 1e-6)
		assert.InDelta(t, 0.5, result.Items[1].Score, 1e-6)
	})

	t.Run("mood from context counts as attribute", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "surprise me", &core.SearchContext{Mood: "energetic"})
		require.NoError(t, err)
		assert.InDelta(t, 0.7, result.Confidence, 1e-6)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Stadium Rush", result.Items[0].Track.Title)
	})

	t.Run("no attributes falls back to recent", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "play the orbits", nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, result.Confidence, 1e-6)
		assert.NotEmpty(t, result.Items)
		assert.Contains(t, strings.ToLower(result.Reasoning), "recent")
	})
}

func TestExtractAcousticAttributes(t *testing.T) {
	t.Run("normalizes synonyms", func(t *testing.T) {
		attrs := extractAcousticAttributes("relaxing calm music for a chill night")
		assert.Equal(t, []string{"chill"}, attrs)
	})

	t.Run("preserves query order", func(t *testing.T) {
		attrs := extractAcousticAttributes("fast and energetic, but dreamy")
		assert.Equal(t, []string{"fast", "energetic", "dreamy"}, attrs)
	})

	t.Run("empty for plain queries", func(t *testing.T) {
		assert.Empty(t, extractAcousticAttributes("songs by the orbits"))
	})
}

type fakeDirectory struct {
	matches []*core.Station
	all     []*core.Station
}

func (d *fakeDirectory) Lookup(query string) []*core.Station { return d.matches }
func (d *fakeDirectory) All() []*core.Station                { return d.all }

func TestStationProvider(t *testing.T) {
	jazz := &core.Station{Name: "Blue Note Radio", Genre: "jazz", Country: "FR", StreamURL: "https://streams.example/bluenote"}
	lofi := &core.Station{Name: "Lofi Basement", Genre: "lofi", Country: "US", StreamURL: "https://streams.example/lofi"}

	t.Run("directory match", func(t *testing.T) {
		p, err := NewStationProvider(&fakeDirectory{matches: []*core.Station{jazz}})
		require.NoError(t, err)
		assert.Equal(t, NameStation, p.Name())

		result, err := p.Execute(context.Background(), "jazz radio", nil)
		require.NoError(t, err)

		assert.InDelta(t, 0.8, result.Confidence, 1e-6)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Blue Note Radio", result.Items[0].Track.Title)
		assert.Equal(t, core.KindStation, result.Items[0].Track.Kind)
		assert.NotZero(t, result.Items[0].Track.Id)
	})

	t.Run("browse fallback", func(t *testing.T) {
		p, err := NewStationProvider(&fakeDirectory{all: []*core.Station{jazz, lofi}})
		require.NoError(t, err)

		result, err := p.Execute(context.Background(), "obscure request", nil)
		require.NoError(t, err)

		assert.InDelta(t, 0.2, result.Confidence, 1e-6)
		assert.Len(t, result.Items, 2)
	})
}

func TestProviderConstructorsValidate(t *testing.T) {
	repo := newTestRepository(t)

	_, err := NewSemanticProvider(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrTrackRepositoryRequired)

	_, err = NewSemanticProvider(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewKeywordProvider(nil)
	assert.ErrorIs(t, err, ErrTrackRepositoryRequired)

	_, err = NewPersonalProvider(nil)
	assert.ErrorIs(t, err, ErrTrackRepositoryRequired)

	_, err = NewAcousticProvider(nil)
	assert.ErrorIs(t, err, ErrTrackRepositoryRequired)

	_, err = NewStationProvider(nil)
	assert.ErrorIs(t, err, ErrDirectoryRequired)
}
