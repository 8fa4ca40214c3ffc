package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/soundlens/ai"
)

func TestParsePlanJSON(t *testing.T) {
	t.Run("clean response", func(t *testing.T) {
		resp, err := parsePlanJSON(`{
			"strategy": "hybrid lexical and semantic search",
			"capabilities": ["keyword", "semantic"],
			"reasoning": "concrete artist request",
			"needs_clarification": false
		}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"keyword", "semantic"}, resp.Capabilities)
		assert.Equal(t, "hybrid lexical and semantic search", resp.Strategy)
		assert.False(t, resp.NeedsClarification)
		assert.Empty(t, resp.ClarifyingQuestions)
	})

	t.Run("clarification response", func(t *testing.T) {
		resp, err := parsePlanJSON(`{
			"strategy": "ask for more detail",
			"capabilities": [],
			"reasoning": "single ambiguous token",
			"needs_clarification": true,
			"clarifying_questions": ["What type of music are you looking for?"]
		}`)
		require.NoError(t, err)
		assert.True(t, resp.NeedsClarification)
		assert.Len(t, resp.ClarifyingQuestions, 1)
		assert.Empty(t, resp.Capabilities)
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		resp, err := parsePlanJSON("```json\n" +
			`{"strategy": "s", "capabilities": ["semantic"], "reasoning": "r", "needs_clarification": false}` +
			"\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"semantic"}, resp.Capabilities)
	})

	t.Run("repairs missing opening quote on key", func(t *testing.T) {
		resp, err := parsePlanJSON(`{"strategy": "s", capabilities": ["keyword"], "reasoning": "r", "needs_clarification": false}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"keyword"}, resp.Capabilities)
	})

	t.Run("malformed beyond repair", func(t *testing.T) {
		_, err := parsePlanJSON(`sure, here is your plan: keyword and semantic`)
		assert.Error(t, err)
	})
}

func TestBuildPlannerPrompt(t *testing.T) {
	prompt := buildPlannerPrompt([]ai.CapabilityInfo{
		{Name: "semantic", Description: "embedding-space similarity"},
		{Name: "station", Description: "live station directory"},
	})

	assert.Contains(t, prompt, "- semantic: embedding-space similarity")
	assert.Contains(t, prompt, "- station: live station directory")
	assert.Contains(t, prompt, "needs_clarification")
}

func TestBuildPlannerInput(t *testing.T) {
	t.Run("anonymous listener", func(t *testing.T) {
		input := buildPlannerInput(&ai.PlanRequest{Query: "chill evening"})
		assert.Contains(t, input, "Request: chill evening")
		assert.Contains(t, input, "anonymous")
	})

	t.Run("identified listener with preferences", func(t *testing.T) {
		input := buildPlannerInput(&ai.PlanRequest{
			Query:    "something new",
			Identity: "0xabc",
			Mood:     "melancholy",
			Genres:   []string{"jazz", "soul"},
		})
		assert.Contains(t, input, "identified")
		assert.Contains(t, input, "melancholy")
		assert.Contains(t, input, "jazz, soul")
	})
}
