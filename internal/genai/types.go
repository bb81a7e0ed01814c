// Package genai provides the generative completion delegate used when a
// question cannot be answered from the syllabus text alone.
//
// Architecture:
// - OpenAI and OpenAI-compatible endpoints: github.com/openai/openai-go/v3
// - Gemini: google.golang.org/genai (official SDK)
//
// Calls are made exactly once. There is no retry and no provider fallback;
// callers turn failures into a placeholder answer.
package genai

import "context"

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderOpenAI is the OpenAI chat completions API or any compatible endpoint.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini represents Google's Gemini API.
	ProviderGemini Provider = "gemini"
)

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// DisplayName returns the provider name as shown to users.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGemini:
		return "Gemini"
	default:
		return "OpenAI"
	}
}

// Completer sends a system context and a user question to a chat model
// and returns the reply text. An empty reply is returned as "" with a nil
// error; transport and API failures are returned as *LLMError.
type Completer interface {
	Complete(ctx context.Context, systemContext, userQuery string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the completer.
	Close() error
}

// Config selects and configures a Completer.
type Config struct {
	Provider Provider
	APIKey   string
	BaseURL  string // OpenAI only; empty = SDK default
	Model    string

	Temperature float64 // 0 = DefaultTemperature
	MaxTokens   int64   // 0 = DefaultMaxTokens
}

// Generation defaults.
const (
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 1024
)

func (c Config) temperature() float64 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return DefaultTemperature
}

func (c Config) maxTokens() int64 {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}
