package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

const openRouterName = "openrouter"

// openRouterProvider talks to any OpenAI-compatible chat completions endpoint,
// OpenRouter by default.
type openRouterProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newOpenRouterProvider(baseURL, apiKey string, client *http.Client) ports.Provider {
	return &openRouterProvider{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		apiKey:     apiKey,
		httpClient: client,
	}
}

func (p *openRouterProvider) Name() string {
	return openRouterName
}

func (p *openRouterProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	messages, err := renderPromptMessages(req)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	client := openai.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.httpClient),
		option.WithMaxRetries(0),
		option.WithHeader("X-Title", "clai"),
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(req.Model),
		Messages:    toChatMessages(messages),
		MaxTokens:   openai.Int(domain.DefaultMaxTokens),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return ports.ProviderResponse{}, providerError(openRouterName, status, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return ports.ProviderResponse{}, providerError(openRouterName, 0, errors.New("model returned no choices"))
	}

	content := resp.Choices[0].Message.Content
	return ports.ProviderResponse{
		Command: extractCommand(content),
		Reply:   content,
	}, nil
}

func toChatMessages(messages []domain.PromptMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch strings.ToLower(msg.Role) {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
