package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/soundlens/core"
)

// Key prefixes for different data types
const (
	trackRecordPrefix = "trarec"
	trackDatePrefix   = "trarecd"
	trackTagPrefix    = "trarect"
)

// makeTrackKey generates a key for a track by ID.
func makeTrackKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", trackRecordPrefix, id))
}

// makeTrackDateKey generates a composite key for the insertion-date index.
// Format: prefix:timestamp:id
func makeTrackDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := trackDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTrackDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialTrackDateKey(timestamp time.Time) []byte {
	prefix := trackDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeTrackTagKey generates a composite key for the attribute-tag index.
// Format: prefix:tag:trackID
func makeTrackTagKey(tag string, trackID core.ID) []byte {
	prefix := trackTagPrefix + ":" + tag + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for trackID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(trackID))
	return buf
}

// makePartialTrackTagKey generates a partial key for tag queries.
// Format: prefix:tag:
func makePartialTrackTagKey(tag string) []byte {
	return []byte(trackTagPrefix + ":" + tag + ":")
}
