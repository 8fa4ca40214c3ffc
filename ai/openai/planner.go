// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/soundlens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// StrategyPlanner implements ai.StrategyPlanner using OpenAI-compatible chat APIs.
type StrategyPlanner struct {
	client llms.Model
	logger *slog.Logger
}

// plan is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type plan struct {
	Strategy            string   `json:"strategy"`
	Capabilities        []string `json:"capabilities"`
	Reasoning           string   `json:"reasoning"`
	NeedsClarification  bool     `json:"needs_clarification"`
	ClarifyingQuestions []string `json:"clarifying_questions"`
}

// newStrategyPlanner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newStrategyPlanner(config *ai.Config) (*StrategyPlanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/planning
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.PlannerHost),
		openai.WithToken("none"),
		openai.WithModel(config.PlannerModel),
	)
	if err != nil {
		return nil, err
	}

	return &StrategyPlanner{
		client: client,
		logger: slog.Default().With("component", "openai-planner"),
	}, nil
}

// NewStrategyPlanner creates a new strategy planner using the provided configuration.
//
// Returns ai.StrategyPlanner interface to enforce abstraction.
func NewStrategyPlanner(config *ai.Config) (ai.StrategyPlanner, error) {
	return newStrategyPlanner(config)
}

// PlanSearch classifies the query and selects search capabilities using an LLM.
// The response crosses an untrusted boundary: this method only guarantees the
// JSON shape; callers must validate capability names against their registry.
func (p *StrategyPlanner) PlanSearch(ctx context.Context, req *ai.PlanRequest) (*ai.PlanResponse, error) {
	systemPrompt := buildPlannerPrompt(req.Catalog)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildPlannerInput(req)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result *ai.PlanResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate plan", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			lastErr = ErrEmptyPlannerResponse
			continue
		}

		result, lastErr = parsePlanJSON(response.Choices[0].Content)
		if lastErr != nil {
			p.logger.Warn("error parsing planner response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", lastErr)
			continue
		}

		// Success
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse planner response after retries", "err", lastErr)
		return nil, lastErr
	}

	p.logger.Debug("planned search",
		"strategy", result.Strategy,
		"capabilities", result.Capabilities,
		"needsClarification", result.NeedsClarification)

	return result, nil
}

// parsePlanJSON parses the raw model output into a PlanResponse.
// It tolerates markdown code fences and common JSON defects.
func parsePlanJSON(text string) (*ai.PlanResponse, error) {
	// Strip markdown code fences if present
	responseText := strings.TrimSpace(text)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	responseText = repairJSON(responseText)

	var parsed plan
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return nil, err
	}

	return &ai.PlanResponse{
		Strategy:            parsed.Strategy,
		Capabilities:        parsed.Capabilities,
		Reasoning:           parsed.Reasoning,
		NeedsClarification:  parsed.NeedsClarification,
		ClarifyingQuestions: parsed.ClarifyingQuestions,
	}, nil
}
