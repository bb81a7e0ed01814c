package genai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiCompleter implements Completer with the chat completions API.
// It works with any OpenAI-compatible endpoint via a custom base URL.
type openaiCompleter struct {
	client openai.Client
	cfg    Config
}

// newOpenAICompleter creates an OpenAI completer.
// Returns nil if apiKey is empty (generative path disabled).
func newOpenAICompleter(cfg Config) *openaiCompleter {
	if cfg.APIKey == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openaiCompleter{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

// Complete sends the system context and question as one chat turn.
func (c *openaiCompleter) Complete(ctx context.Context, systemContext, userQuery string) (string, error) {
	if c == nil {
		return "", nil
	}

	params := openai.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(systemContext)),
			openai.UserMessage(userQuery),
		},
		Temperature: openai.Float(c.cfg.temperature()),
		MaxTokens:   openai.Int(c.cfg.maxTokens()),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "chat completion failed",
			"provider", ProviderOpenAI,
			"model", c.cfg.Model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(err, ProviderOpenAI)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "chat completion finished",
			"provider", ProviderOpenAI,
			"model", c.cfg.Model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds())
	}

	return content, nil
}

// Provider returns the provider type for this completer.
func (c *openaiCompleter) Provider() Provider {
	return ProviderOpenAI
}

// Close releases resources.
// Safe to call on nil receiver.
func (c *openaiCompleter) Close() error {
	// openai-go client doesn't require cleanup
	return nil
}
