package badger

import (
	"strings"

	"github.com/poiesic/soundlens/core"
)

// Stop words to filter out when computing keyword relevance
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// keywordRelevance computes the fraction of query tokens found in the
// track's searchable text (title, artist, genres, tags). Result is in [0,1].
func keywordRelevance(track *core.Track, queryTokens []string) float32 {
	if len(queryTokens) == 0 {
		return 0
	}

	searchable := track.Title + " " + track.Artist + " " +
		strings.Join(track.Genres, " ") + " " + strings.Join(track.Tags, " ")
	trackTokens := tokenizeAndFilter(searchable)

	trackSet := make(map[string]bool, len(trackTokens))
	for _, token := range trackTokens {
		trackSet[token] = true
	}

	matched := 0
	for _, token := range queryTokens {
		if trackSet[token] {
			matched++
		}
	}

	return float32(matched) / float32(len(queryTokens))
}
