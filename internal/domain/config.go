package domain

import (
	"strings"
	"time"
)

// Config mirrors ~/.clai/config.yaml merged with the environment.
type Config struct {
	APIKey          string             `yaml:"api_key,omitempty" mapstructure:"api_key"`
	AnthropicAPIKey string             `yaml:"anthropic_api_key,omitempty" mapstructure:"anthropic_api_key"`
	DefaultModel    string             `yaml:"default_model" mapstructure:"default_model"`
	BaseURL         string             `yaml:"base_url" mapstructure:"base_url"`
	Timeout         time.Duration      `yaml:"timeout" mapstructure:"timeout"`
	Delivery        DeliverySettings   `yaml:"delivery" mapstructure:"delivery"`
	Validation      ValidationSettings `yaml:"validation" mapstructure:"validation"`
	Log             LogSettings        `yaml:"log" mapstructure:"log"`
}

// DeliverySettings controls clipboard/history routing.
type DeliverySettings struct {
	// CmdStrict reports a missing cmd history as an error instead of a notice.
	CmdStrict bool `yaml:"cmd_strict" mapstructure:"cmd_strict"`
	// PreferHistory appends to history even after a successful clipboard write.
	PreferHistory bool `yaml:"prefer_history" mapstructure:"prefer_history"`
}

// ValidationSettings configures the acceptability check.
type ValidationSettings struct {
	RulesFile string `yaml:"rules_file,omitempty" mapstructure:"rules_file"`
	MaxLength int    `yaml:"max_length" mapstructure:"max_length"`
}

// LogSettings configures the diagnostic log.
type LogSettings struct {
	File  string `yaml:"file,omitempty" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// UsesAnthropic reports whether the model is routed to the native Anthropic API.
func (c Config) UsesAnthropic(model string) bool {
	return strings.HasPrefix(model, AnthropicModelPrefix) || strings.Contains(c.BaseURL, "anthropic.com")
}

// CredentialFor returns the key that authenticates requests for model. The
// Anthropic route never falls back to the OpenRouter key.
func (c Config) CredentialFor(model string) string {
	if c.UsesAnthropic(model) {
		return c.AnthropicAPIKey
	}
	return c.APIKey
}

// CredentialEnv names the environment variable that supplies CredentialFor(model).
func (c Config) CredentialEnv(model string) string {
	if c.UsesAnthropic(model) {
		return EnvAnthropicAPIKey
	}
	return EnvAPIKey
}

// DefaultConfig returns the values used when neither file nor environment sets them.
func DefaultConfig() Config {
	return Config{
		DefaultModel: DefaultModel,
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultRequestTimeout,
		Validation: ValidationSettings{
			MaxLength: DefaultMaxCommandLength,
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}
