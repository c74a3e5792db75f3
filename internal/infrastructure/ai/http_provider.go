package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

const (
	anthropicName     = "anthropic"
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
)

type httpProvider struct {
	name       string
	endpoint   string
	apiKey     string
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(model string, messages []domain.PromptMessage) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(req *http.Request, apiKey string)
}

func newHTTPProvider(name, endpoint, apiKey string, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	messages, err := renderPromptMessages(req)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	requestBody, err := p.adapter.buildRequest(req.Model, messages)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	httpReq.Header.Set("content-type", "application/json")
	p.adapter.setHeaders(httpReq, p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, providerError(p.name, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.ProviderResponse{}, providerError(p.name, 0, err)
	}
	if resp.StatusCode >= 400 {
		return ports.ProviderResponse{}, providerError(p.name, resp.StatusCode,
			fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	content, err := p.adapter.parseResponse(body)
	if err != nil {
		return ports.ProviderResponse{}, providerError(p.name, 0, err)
	}

	return ports.ProviderResponse{
		Command: extractCommand(content),
		Reply:   content,
	}, nil
}

// anthropicEndpointFor honours a base URL that already points at Anthropic.
func anthropicEndpointFor(baseURL string) string {
	if strings.Contains(baseURL, "anthropic.com") {
		return strings.TrimRight(baseURL, "/") + "/messages"
	}
	return anthropicEndpoint
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func buildAnthropicRequest(model string, messages []domain.PromptMessage) ([]byte, error) {
	systemPrompt, chatMessages := splitSystemMessages(messages)

	request := map[string]interface{}{
		"model":      strings.TrimPrefix(model, domain.AnthropicModelPrefix),
		"max_tokens": domain.DefaultMaxTokens,
		"messages":   chatMessages,
	}
	if systemPrompt != "" {
		request["system"] = systemPrompt
	}

	return json.Marshal(request)
}

func splitSystemMessages(messages []domain.PromptMessage) (string, []map[string]interface{}) {
	var systemLines []string
	var chatMessages []map[string]interface{}

	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		chatMessages = append(chatMessages, map[string]interface{}{
			"role": msg.Role,
			"content": []map[string]string{
				{"type": "text", "text": msg.Content},
			},
		})
	}

	return strings.TrimSpace(strings.Join(systemLines, "\n")), chatMessages
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	for _, block := range response.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

func setAnthropicHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
}
