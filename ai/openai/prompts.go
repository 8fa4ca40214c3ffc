package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/soundlens/ai"
)

const planResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "strategy": {
      "type": "string"
    },
    "capabilities": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "reasoning": {
      "type": "string"
    },
    "needs_clarification": {
      "type": "boolean"
    },
    "clarifying_questions": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["strategy", "capabilities", "reasoning", "needs_clarification"],
  "additionalProperties": false
}`

const plannerPromptTemplate = `You are the strategy planner for a music discovery engine. Given a listener's
free-text request, select which search capabilities should be invoked and return your plan as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Available capabilities:
%s

Rules:
- "capabilities" must only contain names from the available capabilities list, in invocation order.
- Select every capability whose evidence would help answer the request; two or three is typical.
- If the request is too vague or ambiguous to search (e.g. a single word with no musical meaning),
  set "needs_clarification" to true, leave "capabilities" empty, and provide 1-3 short
  "clarifying_questions" for the listener.
- "strategy" is a one-line description of the chosen approach.
- "reasoning" explains the selection in one or two sentences.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildPlannerPrompt renders the system prompt with the capability catalog.
func buildPlannerPrompt(catalog []ai.CapabilityInfo) string {
	lines := make([]string, 0, len(catalog))
	for _, capability := range catalog {
		lines = append(lines, fmt.Sprintf("- %s: %s", capability.Name, capability.Description))
	}
	return fmt.Sprintf(plannerPromptTemplate, planResponseSchema, strings.Join(lines, "\n"))
}

// buildPlannerInput renders the user message with the query and caller context.
func buildPlannerInput(req *ai.PlanRequest) string {
	var sb strings.Builder
	sb.WriteString("Request: ")
	sb.WriteString(scrubString(req.Query))

	if req.Identity != "" {
		sb.WriteString("\nListener: identified (personal history available)")
	} else {
		sb.WriteString("\nListener: anonymous")
	}
	if req.Mood != "" {
		sb.WriteString("\nDeclared mood: ")
		sb.WriteString(req.Mood)
	}
	if len(req.Genres) > 0 {
		sb.WriteString("\nPreferred genres: ")
		sb.WriteString(strings.Join(req.Genres, ", "))
	}
	return sb.String()
}
