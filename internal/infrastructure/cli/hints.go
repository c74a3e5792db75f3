package cli

import (
	"strings"

	"github.com/doeshing/clai-go/internal/domain"
)

const (
	keysURL   = "https://openrouter.ai/keys"
	modelsURL = "https://openrouter.ai/models"
)

// Hint returns remediation advice for err, or "" when there is none.
func Hint(err error) string {
	if err == nil {
		return ""
	}

	reason := domain.ReasonOf(err)
	if reason == domain.ReasonNone {
		text := strings.ToLower(err.Error())
		switch {
		case strings.Contains(text, "api key"):
			reason = domain.ReasonCredential
		case strings.Contains(text, "model"):
			reason = domain.ReasonModel
		}
	}

	switch reason {
	case domain.ReasonCredential:
		return "Tip: Make sure your " + domain.EnvAPIKey + " is set in your environment or .env file.\n" +
			"   Get your API key from: " + keysURL
	case domain.ReasonModel:
		return "Tip: Try using a different model with --model flag.\n" +
			"   Available models: " + modelsURL
	case domain.ReasonTimeout:
		return "Tip: The provider did not answer in time. Retry, or raise the limit with --timeout."
	default:
		return ""
	}
}
