package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiCompleter implements Completer with the Gemini API.
type geminiCompleter struct {
	client *genai.Client
	cfg    Config
}

// newGeminiCompleter creates a Gemini completer.
// Returns nil if apiKey is empty (generative path disabled).
func newGeminiCompleter(ctx context.Context, cfg Config, httpOpts genai.HTTPOptions) (*geminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiCompleter{client: client, cfg: cfg}, nil
}

// Complete sends the question with the syllabus context as system instruction.
func (c *geminiCompleter) Complete(ctx context.Context, systemContext, userQuery string) (string, error) {
	if c == nil || c.client == nil {
		return "", nil
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemPrompt(systemContext)}},
		},
		Temperature:     genai.Ptr(float32(c.cfg.temperature())),
		MaxOutputTokens: int32(c.cfg.maxTokens()), //nolint:gosec // bounded by config
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(userQuery), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "generate content failed",
			"provider", ProviderGemini,
			"model", c.cfg.Model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(err, ProviderGemini)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "generate content finished",
			"provider", ProviderGemini,
			"model", c.cfg.Model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return strings.TrimSpace(text.String()), nil
}

// Provider returns the provider type for this completer.
func (c *geminiCompleter) Provider() Provider {
	return ProviderGemini
}

// Close releases resources.
// Safe to call on nil receiver.
func (c *geminiCompleter) Close() error {
	// genai.Client does not require explicit cleanup
	return nil
}
