package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical
// catalog entries map to the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TrackKind distinguishes catalog entries.
type TrackKind int

const (
	// KindTrack represents a stored music track.
	KindTrack TrackKind = iota + 1
	// KindStation represents a live station surfaced from an external directory.
	KindStation
)

// Track represents a playable catalog entry.
// It may be enriched with an embedding vector during ingestion.
type Track struct {
	Id         ID
	Kind       TrackKind
	Title      string
	Artist     string
	Genres     []string
	Tags       []string  // Mood/energy/tempo attributes (e.g. "chill", "upbeat", "fast")
	Tempo      int       // Beats per minute, 0 if unknown
	PlayCount  uint64    // Global play counter used as a popularity proxy
	StreamURL  string
	Vector     []float32 // Embedding vector for semantic search (populated by processors)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Tuple returns a string representation of the track as "(Artist,Title)".
// This is used for generating deterministic IDs.
func (t *Track) Tuple() string {
	return "(" + t.Artist + "," + t.Title + ")"
}

// Station represents an entry in an external live-station directory.
type Station struct {
	Id        ID
	Name      string
	Genre     string
	Country   string
	StreamURL string
	Tags      []string
}

// AsTrack converts a directory station into a catalog entry so that station
// results can be merged with track results during aggregation.
func (s *Station) AsTrack() *Track {
	return &Track{
		Id:        IDFromContent(s.StreamURL),
		Kind:      KindStation,
		Title:     s.Name,
		Artist:    s.Country,
		Genres:    []string{s.Genre},
		Tags:      s.Tags,
		StreamURL: s.StreamURL,
	}
}

// SearchContext carries optional caller context for one discovery call.
// It is immutable for the duration of the call.
type SearchContext struct {
	Identity         string // Wallet or user identifier, empty when anonymous
	RecentTrackIds   []ID
	LovedTrackIds    []ID
	GenrePreferences []string
	Mood             string
	Limit            int // Per-provider result cap; 0 means DefaultLimit
}

const (
	// DefaultLimit is the per-provider result cap applied when the caller
	// does not specify one.
	DefaultLimit = 20
	// MaxLimit bounds the per-provider result cap.
	MaxLimit = 100
	// MaxQueryLength bounds free-text queries at the boundary.
	MaxQueryLength = 500
)

// TrackMatch represents a track match from vector similarity or keyword search.
type TrackMatch struct {
	Track *Track
	Score float32
}
