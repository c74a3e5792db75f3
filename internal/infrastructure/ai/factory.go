package ai

import (
	"fmt"
	"net/http"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// Factory builds providers from the loaded configuration. Models prefixed with
// "anthropic:" go to the Anthropic Messages API; everything else goes to the
// OpenAI-compatible base URL, OpenRouter unless overridden.
type Factory struct {
	cfg        domain.Config
	httpClient *http.Client
}

// NewFactory returns a factory. A nil client means http.DefaultClient; request
// deadlines come from the caller's context.
func NewFactory(cfg domain.Config, client *http.Client) *Factory {
	if client == nil {
		client = http.DefaultClient
	}
	return &Factory{cfg: cfg, httpClient: client}
}

// ForModel implements ports.ProviderFactory.
func (f *Factory) ForModel(model string) (ports.Provider, error) {
	key := f.cfg.CredentialFor(model)
	if key == "" {
		return nil, missingCredential(f.cfg.CredentialEnv(model))
	}

	if f.cfg.UsesAnthropic(model) {
		return newHTTPProvider(anthropicName, anthropicEndpointFor(f.cfg.BaseURL), key, f.httpClient, anthropicAdapter()), nil
	}

	baseURL := f.cfg.BaseURL
	if baseURL == "" {
		baseURL = domain.DefaultBaseURL
	}
	return newOpenRouterProvider(baseURL, key, f.httpClient), nil
}

func missingCredential(envName string) error {
	return domain.NewError(domain.KindConfiguration,
		fmt.Sprintf("%s environment variable is required", envName), nil).
		WithReason(domain.ReasonCredential)
}

var _ ports.ProviderFactory = (*Factory)(nil)
