package badger

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/storage"
)

// TrackRepository implements storage.TrackRepository for BadgerDB.
type TrackRepository struct {
	backend *Backend
}

var _ storage.TrackRepository = (*TrackRepository)(nil)

// NewTrackRepository creates a new TrackRepository.
func NewTrackRepository(backend *Backend) (*TrackRepository, error) {
	return &TrackRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *TrackRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *TrackRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.TrackMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *TrackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTracks adds one or more tracks to the catalog.
func (r *TrackRepository) AddTracks(ctx context.Context, tracks ...*core.Track) ([]*core.Track, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, track := range tracks {
			// Content-addressed identity from the (Artist,Title) tuple
			if track.Id == 0 {
				track.Id = core.IDFromContent(track.Tuple())
			}

			track.InsertedAt = time.Now().UTC()
			track.UpdatedAt = track.InsertedAt

			// Store primary record
			key := makeTrackKey(track.Id)
			value := storage.MarshalTrack(track)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeTrackDateKey(track.InsertedAt, track.Id)
			if err := tx.Set(dateKey, storage.MarshalID(track.Id)); err != nil {
				return err
			}

			// Update tag index
			if err := r.updateTagIndex(tx, track); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tracks, err
}

// UpdateTracks updates existing tracks.
func (r *TrackRepository) UpdateTracks(ctx context.Context, tracks ...*core.Track) ([]*core.Track, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, track := range tracks {
			key := makeTrackKey(track.Id)

			// Read old track to detect index changes
			old, err := r.readTrack(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			track.InsertedAt = old.InsertedAt
			track.UpdatedAt = time.Now().UTC()

			value := storage.MarshalTrack(track)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update tag index if tags changed
			if !slices.Equal(old.Tags, track.Tags) {
				if err := r.deleteTagIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateTagIndex(tx, track); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return tracks, err
}

// DeleteTracks removes tracks by their IDs.
func (r *TrackRepository) DeleteTracks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTrackKey(id)

			// Read track to get metadata for index cleanup
			track, err := r.readTrack(tx, key)
			if err != nil {
				return err
			}
			if track == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeTrackDateKey(track.InsertedAt, track.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete from tag index
			if err := r.deleteTagIndex(tx, track); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTrack retrieves a single track by ID.
func (r *TrackRepository) GetTrack(ctx context.Context, id core.ID) (*core.Track, error) {
	var result *core.Track
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTrackKey(id)
		var err error
		result, err = r.readTrack(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTracks retrieves multiple tracks by their IDs.
func (r *TrackRepository) GetTracks(ctx context.Context, ids ...core.ID) ([]*core.Track, error) {
	var result []*core.Track
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTrackKey(id)
			track, err := r.readTrack(tx, key)
			if err != nil {
				return err
			}
			if track != nil {
				result = append(result, track)
			}
		}
		return nil
	}, false)
	return result, err
}

// SearchKeywords finds tracks by lexical overlap with the query.
// Relevance is the fraction of query tokens that appear in the track's
// title, artist, genres or tags.
func (r *TrackRepository) SearchKeywords(ctx context.Context, query string, limit int) ([]*core.TrackMatch, error) {
	queryTokens := tokenizeAndFilter(query)
	if len(queryTokens) == 0 {
		return []*core.TrackMatch{}, nil
	}

	var results []*core.TrackMatch
	err := r.scanTracks(func(track *core.Track) {
		relevance := keywordRelevance(track, queryTokens)
		if relevance > 0 {
			results = append(results, &core.TrackMatch{
				Track: track,
				Score: relevance,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.TrackMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Stable order for equal relevance
		if a.Track.Id < b.Track.Id {
			return -1
		}
		if a.Track.Id > b.Track.Id {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetTracksByTag retrieves tracks carrying the given attribute tag.
func (r *TrackRepository) GetTracksByTag(ctx context.Context, tag string, limit int) ([]*core.Track, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var results []*core.Track
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTrackTagKey(tag)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, startKey) {
				break
			}

			var trackID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				trackID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			trackKey := makeTrackKey(trackID)
			track, err := r.readTrack(tx, trackKey)
			if err != nil {
				return err
			}
			if track != nil {
				results = append(results, track)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentTracks retrieves the N most recently added tracks, newest first.
func (r *TrackRepository) GetRecentTracks(ctx context.Context, limit int) ([]*core.Track, error) {
	var results []*core.Track
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent entries first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialTrackDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(trackDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var trackID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				trackID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			trackKey := makeTrackKey(trackID)
			track, err := r.readTrack(tx, trackKey)
			if err != nil {
				return err
			}
			if track != nil {
				results = append(results, track)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetPopularTracks retrieves tracks ordered by play count descending.
func (r *TrackRepository) GetPopularTracks(ctx context.Context, limit int) ([]*core.Track, error) {
	var results []*core.Track
	err := r.scanTracks(func(track *core.Track) {
		results = append(results, track)
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Track) int {
		if a.PlayCount > b.PlayCount {
			return -1
		}
		if a.PlayCount < b.PlayCount {
			return 1
		}
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Helper methods

// scanTracks iterates over all primary track records.
func (r *TrackRepository) scanTracks(fn func(track *core.Track)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(trackRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys
			if bytes.HasPrefix(key, []byte(trackDatePrefix)) ||
				bytes.HasPrefix(key, []byte(trackTagPrefix)) {
				continue
			}

			var track *core.Track
			err := item.Value(func(val []byte) error {
				var err error
				track, err = storage.UnmarshalTrack(val)
				return err
			})
			if err != nil {
				return err
			}
			if track != nil {
				fn(track)
			}
		}
		return nil
	}, false)
}

// readTrack reads a track from the transaction.
func (r *TrackRepository) readTrack(tx *badger.Txn, key []byte) (*core.Track, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var track *core.Track
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		track, unmarshalErr = storage.UnmarshalTrack(val)
		return unmarshalErr
	})
	return track, err
}

// updateTagIndex adds tag index entries for a track.
func (r *TrackRepository) updateTagIndex(tx *badger.Txn, track *core.Track) error {
	if len(track.Tags) == 0 {
		return nil
	}
	for _, tag := range track.Tags {
		key := makeTrackTagKey(strings.ToLower(tag), track.Id)
		value := storage.MarshalID(track.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagIndex removes tag index entries for a track.
func (r *TrackRepository) deleteTagIndex(tx *badger.Txn, track *core.Track) error {
	if len(track.Tags) == 0 {
		return nil
	}
	for _, tag := range track.Tags {
		key := makeTrackTagKey(strings.ToLower(tag), track.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
