package ingest

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
)

// Pipeline orchestrates catalog ingestion.
// Tracks are stored synchronously; embedding enrichment runs on a worker
// pool so that ingestion never waits on the embedding service.
type Pipeline struct {
	trackRepository storage.TrackRepository
	embeddingPool   *ants.Pool
	embeddingProc   processor
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	trackRepository storage.TrackRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if trackRepository == nil {
		return nil, ErrTrackRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		trackRepository: trackRepository,
		embeddingPool:   pool,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied so it gets the final logger.
	embeddingProc, err := newEmbeddingProcessor(trackRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest validates and stores tracks, then submits them for asynchronous
// embedding enrichment. Errors during async processing are logged but do
// not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, tracks ...*core.Track) ([]*core.Track, error) {
	for _, track := range tracks {
		if track.Kind == 0 {
			track.Kind = core.KindTrack
		}
		if err := core.ValidateTrack(track); err != nil {
			return nil, err
		}
	}

	added, err := p.trackRepository.AddTracks(ctx, tracks...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, track := range added {
		ids[i] = track.Id
	}

	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})

	return added, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
