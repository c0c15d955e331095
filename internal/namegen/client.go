package namegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/namelime/namelime-backend/config"
	"github.com/namelime/namelime-backend/internal/generation/domain"
)

// ErrMissingAPIKey aborts a run before any API call is attempted.
var ErrMissingAPIKey = errors.New("gemini api key is missing")

// Client generates name candidates through Gemini's OpenAI-compatible
// chat-completions endpoint. On API or parse failures it returns a small
// fixed fallback list instead of an error, so callers must not assume
// failures always propagate.
type Client struct {
	api   *openai.Client
	model string
	log   zerolog.Logger
}

func NewClient(cfg config.GeminiConfig, log zerolog.Logger) *Client {
	c := &Client{
		model: cfg.Model,
		log:   log.With().Str("component", "namegen").Logger(),
	}
	if cfg.APIKey != "" {
		apiCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			apiCfg.BaseURL = cfg.BaseURL
		}
		c.api = openai.NewClientWithConfig(apiCfg)
	}
	return c
}

// rawCandidate mirrors the response schema the model is instructed to emit.
type rawCandidate struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Reasoning        string   `json:"reasoning"`
	DomainExtensions []string `json:"domainExtensions"`
}

type rawResponse struct {
	Names []rawCandidate `json:"names"`
}

// Generate produces an ordered candidate list for the request. The
// exclusion list keeps previously shown names out of the batch.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest, premium bool, exclude []string) ([]domain.GeneratedName, error) {
	if c.api == nil {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req, premium, exclude)},
		},
		Temperature: 1.0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.log.Error().Err(err).Msg("generation call failed, serving fallback candidates")
		return fallbackCandidates(), nil
	}
	if len(resp.Choices) == 0 {
		c.log.Warn().Msg("generation returned no choices, serving fallback candidates")
		return fallbackCandidates(), nil
	}

	parsed, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		c.log.Error().Err(err).Msg("generation response unparsable, serving fallback candidates")
		return fallbackCandidates(), nil
	}

	return postProcess(parsed), nil
}

func parseResponse(content string) ([]rawCandidate, error) {
	content = strings.TrimSpace(content)
	// Some models wrap JSON in markdown fences despite JSON mode.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var wrapped rawResponse
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && len(wrapped.Names) > 0 {
		return wrapped.Names, nil
	}

	// Tolerate a bare array as well.
	var bare []rawCandidate
	if err := json.Unmarshal([]byte(content), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, fmt.Errorf("no candidates in model response")
}

// postProcess assigns ids and the simulated per-TLD availability records.
// Availability is advisory only: .com is harder to get than the rest.
func postProcess(raw []rawCandidate) []domain.GeneratedName {
	out := make([]domain.GeneratedName, 0, len(raw))
	for _, item := range raw {
		name := domain.GeneratedName{
			ID:        "gen-" + uuid.New().String(),
			Name:      item.Name,
			Archetype: domain.NamingStyle(item.Type),
			Reasoning: item.Reasoning,
		}
		exts := item.DomainExtensions
		if len(exts) == 0 {
			exts = []string{".com", ".io"}
		}
		for _, tld := range exts {
			threshold := 0.3
			if tld == ".com" {
				threshold = 0.7
			}
			name.Domains = append(name.Domains, domain.DomainOption{
				TLD:       tld,
				Available: rand.Float64() > threshold,
				Premium:   rand.Float64() > 0.8,
			})
		}
		out = append(out, name)
	}
	return out
}
