// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "ASSISTANT_PORT"
	EnvLogLevel        = "ASSISTANT_LOG_LEVEL"
	EnvShutdownTimeout = "ASSISTANT_SHUTDOWN_TIMEOUT"
	EnvRateLimit       = "ASSISTANT_RATE_LIMIT_PER_MINUTE"

	// Completion
	EnvModel         = "ASSISTANT_MODEL"
	EnvLLMProvider   = "ASSISTANT_LLM_PROVIDER"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"

	// Course
	EnvCoursePageURL       = "ASSISTANT_COURSE_PAGE_URL"
	EnvAltAssistantURL     = "ASSISTANT_ALT_ASSISTANT_URL"
	EnvAltAssistantName    = "ASSISTANT_ALT_ASSISTANT_NAME"
	EnvSyllabusPath        = "ASSISTANT_SYLLABUS_PATH"
	EnvSyllabusR2Key       = "ASSISTANT_SYLLABUS_R2_KEY"
	EnvMaxContextChars     = "ASSISTANT_MAX_CONTEXT_CHARS"
	EnvDocumentRecheckWait = "ASSISTANT_DOCUMENT_RECHECK_INTERVAL"

	// R2 (analytics and remote syllabus)
	EnvR2AccountID       = "ASSISTANT_R2_ACCOUNT_ID"
	EnvR2AccessKeyID     = "ASSISTANT_R2_ACCESS_KEY_ID"
	EnvR2SecretAccessKey = "ASSISTANT_R2_SECRET_ACCESS_KEY"
	EnvR2BucketName      = "ASSISTANT_R2_BUCKET_NAME"
	EnvR2AnalyticsPrefix = "ASSISTANT_R2_ANALYTICS_PREFIX"

	// Local interaction log
	EnvInteractionsDBPath = "ASSISTANT_INTERACTIONS_DB_PATH"

	// Better Stack logs
	EnvBetterStackToken    = "ASSISTANT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "ASSISTANT_BETTERSTACK_ENDPOINT"

	// Sentry
	EnvSentryDSN         = "ASSISTANT_SENTRY_DSN"
	EnvSentryToken       = "ASSISTANT_SENTRY_TOKEN"
	EnvSentryHost        = "ASSISTANT_SENTRY_HOST"
	EnvSentryEnvironment = "ASSISTANT_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "ASSISTANT_SENTRY_RELEASE"
	EnvSentrySampleRate  = "ASSISTANT_SENTRY_SAMPLE_RATE"

	// Metrics
	EnvMetricsUsername = "ASSISTANT_METRICS_USERNAME"
	EnvMetricsPassword = "ASSISTANT_METRICS_PASSWORD"
)
