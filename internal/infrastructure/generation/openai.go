// Package generation adapts the OpenAI chat completions API to the
// ports.LessonGenerator interface.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel     = openai.GPT4oMini
	DefaultMaxTokens = 500
)

var errNoChoices = errors.New("completion returned no choices")

// Config holds the generation client settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the API endpoint (proxies, compatible servers, tests).
	BaseURL string
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator sends the topic as a single user message and returns the
// trimmed completion text.
type OpenAIGenerator struct {
	client    chatCompleter
	model     string
	maxTokens int
	log       zerolog.Logger
}

func NewOpenAIGenerator(cfg Config, log zerolog.Logger) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       log,
	}
}

// Generate returns the lesson text for promptText. An empty string with a
// nil error means the model answered with no content.
func (g *OpenAIGenerator) Generate(ctx context.Context, promptText string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: promptText},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			g.log.Warn().
				Int("status", apiErr.HTTPStatusCode).
				Str("code", fmt.Sprint(apiErr.Code)).
				Msg("openai api error")
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}

	g.log.Debug().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("lesson generated")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
