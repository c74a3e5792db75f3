package config

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/doeshing/clai-go/internal/domain"
)

// CredentialMessage is the startup diagnostic when no OpenRouter key is configured.
const CredentialMessage = domain.EnvAPIKey + " environment variable is required. " +
	"Please create a .env file with your OpenRouter API key."

// AnthropicCredentialMessage is the diagnostic for anthropic: models without their own key.
const AnthropicCredentialMessage = domain.EnvAnthropicAPIKey + " environment variable is required " +
	"for anthropic: models. The OpenRouter key is not sent to Anthropic."

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.DefaultModel == "" {
		return invalid("default_model must be set")
	}
	if cfg.Timeout <= 0 {
		return invalid(fmt.Sprintf("timeout must be > 0, got %s", cfg.Timeout))
	}
	if cfg.Validation.MaxLength <= 0 {
		return invalid("validation.max_length must be > 0")
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return invalid(fmt.Sprintf("base_url %q is not an absolute URL", cfg.BaseURL))
		}
	}
	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			return invalid(fmt.Sprintf("log.level: %v", err))
		}
	}
	return nil
}

// RequireCredential fails fast when model has no API key to authenticate with.
func RequireCredential(cfg domain.Config, model string) error {
	if cfg.CredentialFor(model) != "" {
		return nil
	}
	msg := CredentialMessage
	if cfg.UsesAnthropic(model) {
		msg = AnthropicCredentialMessage
	}
	return domain.NewError(domain.KindConfiguration, msg, nil).
		WithReason(domain.ReasonCredential)
}

func invalid(msg string) error {
	return domain.NewError(domain.KindConfiguration, "invalid configuration: "+msg, nil)
}
