package genai

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// NewCompleter creates the Completer for cfg.Provider.
// Returns nil, nil when no API key is configured; callers report the
// missing credential only when the generative path is actually taken.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		cfg.Provider = ProviderOpenAI
		c := newOpenAICompleter(cfg)
		if c == nil {
			slog.InfoContext(ctx, "no completion credential configured", "provider", cfg.Provider)
			return nil, nil
		}
		return c, nil
	case ProviderGemini:
		c, err := newGeminiCompleter(ctx, cfg, genai.HTTPOptions{BaseURL: cfg.BaseURL})
		if err != nil {
			return nil, err
		}
		if c == nil {
			slog.InfoContext(ctx, "no completion credential configured", "provider", cfg.Provider)
			return nil, nil
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
