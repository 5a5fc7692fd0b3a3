// Package narrative wraps the optional LLM collaborator that rewrites the
// deterministic chat answer into richer prose. Every caller must treat it as
// best-effort: any error means "keep the deterministic output".
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

const systemPrompt = `You are a healthcare risk-adjustment analyst writing for a payer audience.
You are given a dataset summary and a deterministic analysis result in JSON.
Rewrite the narrative as strict JSON with keys: answer (string), evidence
(array of strings), rationale (array of strings), recommended_action (string),
follow_ups (array of strings). Do not invent numbers: every figure must come
from the provided context. Output JSON only, no markdown fences.`

// Narrative is the enriched prose bundle. Fields map one-to-one onto the
// narrative fields of a chat response; chart payloads are never part of it.
type Narrative struct {
	Answer            string   `json:"answer"`
	Evidence          []string `json:"evidence"`
	Rationale         []string `json:"rationale"`
	RecommendedAction string   `json:"recommended_action"`
	FollowUps         []string `json:"follow_ups"`
}

// Generator produces an enriched narrative for a question given the dataset
// summary and deterministic result serialized as context.
type Generator interface {
	Generate(ctx context.Context, question, analysisContext string) (*Narrative, error)
}

// Anthropic is a Generator backed by the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic builds a Generator for the given API key. An empty model
// selects DefaultModel.
func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *Anthropic) Generate(ctx context.Context, question, analysisContext string) (*Narrative, error) {
	userPrompt := fmt.Sprintf("Question: %s\n\nContext:\n%s", question, analysisContext)

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return parseNarrative(block.Text)
		}
	}
	return nil, fmt.Errorf("no text content in response")
}

// parseNarrative decodes the model output, tolerating markdown fences some
// models still emit despite the instructions.
func parseNarrative(text string) (*Narrative, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	var n Narrative
	if err := json.Unmarshal([]byte(text), &n); err != nil {
		return nil, fmt.Errorf("decode narrative: %w", err)
	}
	if n.Answer == "" {
		return nil, fmt.Errorf("narrative missing answer")
	}
	return &n, nil
}
