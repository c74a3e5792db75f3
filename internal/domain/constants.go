package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// HistoryFilePermissions matches what shells create their history files with
	HistoryFilePermissions = 0o600
)

// Provider constants
const (
	// DefaultModel is used when neither --model, DEFAULT_MODEL nor the config file set one
	DefaultModel = "google/gemini-2.5-flash-lite"
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// AnthropicModelPrefix routes a model id to the native Anthropic Messages API
	AnthropicModelPrefix = "anthropic:"
	// DefaultRequestTimeout bounds a single completion call
	DefaultRequestTimeout = 60 * time.Second
	// DefaultMaxTokens caps the completion length
	DefaultMaxTokens = 256
)

// Environment variable names
const (
	EnvAPIKey          = "OPENROUTER_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvDefaultModel    = "DEFAULT_MODEL"
	EnvBaseURL         = "CLAI_BASE_URL"
	EnvTimeout         = "CLAI_TIMEOUT"
	EnvConfigPath      = "CLAI_CONFIG"
	EnvDebug           = "CLAI_DEBUG"
)

// Validation constants
const (
	// DefaultMaxCommandLength is the longest accepted command, in runes
	DefaultMaxCommandLength = 2000
)
