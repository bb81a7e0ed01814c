package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		EnvPort, EnvModel, EnvLLMProvider, EnvCoursePageURL, EnvSyllabusPath,
		EnvMaxContextChars, EnvR2AccountID, EnvR2AccessKeyID, EnvR2SecretAccessKey,
		EnvSyllabusR2Key, EnvShutdownTimeout, EnvSentrySampleRate,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, ProviderOpenAI)
	}
	if cfg.MaxContextChars != DefaultMaxContextChars {
		t.Errorf("MaxContextChars = %d, want %d", cfg.MaxContextChars, DefaultMaxContextChars)
	}
	if cfg.ShutdownTimeout != GracefulShutdown {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, GracefulShutdown)
	}
	if cfg.R2Enabled() {
		t.Error("R2Enabled() should be false without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvLLMProvider, "Gemini")
	t.Setenv(EnvGeminiAPIKey, "g-key")
	t.Setenv(EnvMaxContextChars, "1200")
	t.Setenv(EnvShutdownTimeout, "3s")
	t.Setenv(EnvR2AccountID, "acct")
	t.Setenv(EnvR2AccessKeyID, "id")
	t.Setenv(EnvR2SecretAccessKey, "secret")
	t.Setenv(EnvSyllabusR2Key, "syllabus/current.md.zst")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9000")
	}
	if cfg.LLMProvider != ProviderGemini {
		t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, ProviderGemini)
	}
	if cfg.CompletionAPIKey() != "g-key" || cfg.CompletionAPIKeyEnv() != EnvGeminiAPIKey {
		t.Errorf("CompletionAPIKey() = %q from %s", cfg.CompletionAPIKey(), cfg.CompletionAPIKeyEnv())
	}
	if cfg.MaxContextChars != 1200 {
		t.Errorf("MaxContextChars = %d, want 1200", cfg.MaxContextChars)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
	}
	if !cfg.R2Enabled() {
		t.Error("R2Enabled() should be true with all three credentials")
	}
	if got, want := cfg.R2Endpoint(), "https://acct.r2.cloudflarestorage.com"; got != want {
		t.Errorf("R2Endpoint() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := func() *Config {
		return &Config{
			Port:             "8080",
			ShutdownTimeout:  time.Second,
			Model:            DefaultModel,
			LLMProvider:      ProviderOpenAI,
			MaxContextChars:  100,
			SentrySampleRate: 1,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Port = "" }, EnvPort},
		{"unknown provider", func(c *Config) { c.LLMProvider = "groq" }, EnvLLMProvider},
		{"negative context", func(c *Config) { c.MaxContextChars = -1 }, EnvMaxContextChars},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, EnvRateLimit},
		{"remote syllabus without r2", func(c *Config) { c.SyllabusR2Key = "syllabus.md" }, EnvSyllabusR2Key},
		{"sample rate out of range", func(c *Config) { c.SentrySampleRate = 2 }, EnvSentrySampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.errContains)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	t.Parallel()
	cfg := &Config{LLMProvider: "x", SentrySampleRate: 1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, key := range []string{EnvPort, EnvShutdownTimeout, EnvLLMProvider, EnvModel} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Validate() error missing %s: %v", key, err)
		}
	}
}

func TestHTTPTimeouts(t *testing.T) {
	t.Parallel()
	if HTTPWrite <= HTTPRead {
		t.Errorf("HTTPWrite (%v) should exceed HTTPRead (%v)", HTTPWrite, HTTPRead)
	}
	if GracefulShutdown <= 0 || SentryFlush <= 0 {
		t.Error("shutdown timeouts must be positive")
	}
}
