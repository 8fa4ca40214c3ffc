package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
)

// embeddingProcessor generates embedding vectors for stored tracks.
type embeddingProcessor struct {
	trackRepository storage.TrackRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(trackRepository storage.TrackRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if trackRepository == nil {
		return nil, fmt.Errorf("track repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		trackRepository: trackRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified tracks.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing tracks for embeddings", "tracks", len(ids))

	tracks, err := ep.trackRepository.GetTracks(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving tracks", "err", err)
		return err
	}

	texts := make([]string, len(tracks))
	for i, track := range tracks {
		texts[i] = embeddingText(track)
	}

	ep.logger.Debug("generating embeddings for tracks", "tracks", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(tracks) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(tracks), len(embeddings))
	}

	for i := range embeddings {
		tracks[i].Vector = embeddings[i]
	}

	if _, err := ep.trackRepository.UpdateTracks(ctx, tracks...); err != nil {
		ep.logger.Error("error storing track embeddings", "err", err)
		return err
	}

	ep.logger.Info("embeddings stored", "tracks", len(tracks))
	return nil
}

// embeddingText renders the track's searchable identity into one string.
// Titles alone embed poorly; artist, genres and attribute tags anchor the
// vector in the right neighborhood.
func embeddingText(track *core.Track) string {
	parts := []string{track.Title, "by", track.Artist}
	if len(track.Genres) > 0 {
		parts = append(parts, "("+strings.Join(track.Genres, ", ")+")")
	}
	if len(track.Tags) > 0 {
		parts = append(parts, strings.Join(track.Tags, " "))
	}
	return strings.Join(parts, " ")
}
