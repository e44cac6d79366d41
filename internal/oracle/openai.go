package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/roach88/twentyfour/internal/ir"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "claude-3-5-sonnet-20241022"

// OpenAIConfig configures the chat-completions oracle.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // Optional; any OpenAI-compatible endpoint
	Model   string
}

// OpenAI answers oracle questions through an OpenAI-compatible
// chat-completions endpoint at temperature 0.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a chat-completions oracle.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai oracle: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("initializing openai oracle", "model", cfg.Model, "base_url", clientCfg.BaseURL)
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// ProposeMoves implements Oracle.
func (o *OpenAI) ProposeMoves(ctx context.Context, numbers ir.Multiset) (string, error) {
	prompt, err := ProposePrompt(numbers)
	if err != nil {
		return "", err
	}
	return o.complete(ctx, "propose", prompt)
}

// EvaluateFeasibility implements Oracle.
func (o *OpenAI) EvaluateFeasibility(ctx context.Context, numbers ir.Multiset) (string, error) {
	prompt, err := EvaluatePrompt(numbers)
	if err != nil {
		return "", err
	}
	return o.complete(ctx, "evaluate", prompt)
}

func (o *OpenAI) complete(ctx context.Context, op, prompt string) (string, error) {
	slog.Debug("calling oracle", "op", op, "model", o.model)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: chat completion failed: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: chat completion returned no choices", op)
	}

	slog.Debug("oracle replied", "op", op, "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
