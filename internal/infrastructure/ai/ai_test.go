package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

func TestExtractCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain", content: "  ls -la\n", want: "ls -la"},
		{name: "fenced with language", content: "```bash\nfind . -name '*.go'\n```", want: "find . -name '*.go'"},
		{name: "fenced without language", content: "Run this:\n```\ndu -sh *\n```\nDone.", want: "du -sh *"},
		{name: "inline backticks", content: "`git status`", want: "git status"},
		{name: "inner backticks kept", content: "echo `date` > now.txt", want: "echo `date` > now.txt"},
		{name: "unterminated fence", content: "```bash\nls", want: "```bash\nls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCommand(tt.content))
		})
	}
}

func TestRenderPromptMessages(t *testing.T) {
	messages, err := renderPromptMessages(ports.ProviderRequest{
		Query: "  list large files ",
		Shell: domain.ShellPowerShell,
		Model: "m",
		OS:    "windows",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "PowerShell compatible command")
	assert.Contains(t, messages[0].Content, "on Windows")
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "Generate a powershell command to: list large files", messages[1].Content)
}

func TestOpenRouterProviderGenerate(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "gen-1",
			"object": "chat.completion",
			"created": 1,
			"model": "google/gemini-2.5-flash-lite",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "` + "```bash\\nls -la\\n```" + `"}}]
		}`)
	}))
	defer srv.Close()

	provider := newOpenRouterProvider(srv.URL, "sk-test", srv.Client())
	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		Query: "list files",
		Shell: domain.ShellBash,
		Model: "google/gemini-2.5-flash-lite",
		OS:    "linux",
	})
	require.NoError(t, err)

	assert.Equal(t, "ls -la", resp.Command)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "google/gemini-2.5-flash-lite", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestOpenRouterProviderClassifiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason domain.ErrorReason
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"No auth credentials found","code":401}}`, reason: domain.ReasonCredential},
		{name: "unknown model", status: http.StatusNotFound, body: `{"error":{"message":"No endpoints found for foo/bar","code":404}}`, reason: domain.ReasonModel},
		{name: "bad model id", status: http.StatusBadRequest, body: `{"error":{"message":"foo/bar is not a valid model ID","code":400}}`, reason: domain.ReasonModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			provider := newOpenRouterProvider(srv.URL, "sk-test", srv.Client())
			_, err := provider.Generate(context.Background(), ports.ProviderRequest{
				Query: "q", Shell: domain.ShellBash, Model: "foo/bar",
			})
			require.Error(t, err)
			assert.Equal(t, domain.KindProvider, domain.KindOf(err))
			assert.Equal(t, tt.reason, domain.ReasonOf(err))
		})
	}
}

func TestAnthropicProviderGenerate(t *testing.T) {
	var got map[string]interface{}
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"git log --oneline -5"}]}`)
	}))
	defer srv.Close()

	provider := newHTTPProvider(anthropicName, srv.URL, "ak-test", srv.Client(), anthropicAdapter())
	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		Query: "last five commits",
		Shell: domain.ShellZsh,
		Model: "anthropic:claude-3-5-haiku-latest",
	})
	require.NoError(t, err)

	assert.Equal(t, "git log --oneline -5", resp.Command)
	assert.Equal(t, "ak-test", headers.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, headers.Get("anthropic-version"))
	assert.Equal(t, "claude-3-5-haiku-latest", got["model"])
	assert.NotEmpty(t, got["system"])
}

func TestAnthropicProviderUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"error","error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := newHTTPProvider(anthropicName, srv.URL, "bad", srv.Client(), anthropicAdapter())
	_, err := provider.Generate(context.Background(), ports.ProviderRequest{Query: "q", Shell: domain.ShellBash, Model: "anthropic:x"})

	require.Error(t, err)
	assert.Equal(t, domain.ReasonCredential, domain.ReasonOf(err))
}

func TestFactoryForModel(t *testing.T) {
	cfg := domain.DefaultConfig()

	_, err := NewFactory(cfg, nil).ForModel(cfg.DefaultModel)
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
	assert.Contains(t, err.Error(), domain.EnvAPIKey)

	cfg.APIKey = "sk"
	provider, err := NewFactory(cfg, nil).ForModel(cfg.DefaultModel)
	require.NoError(t, err)
	assert.Equal(t, openRouterName, provider.Name())

	cfg.AnthropicAPIKey = "ak"
	provider, err = NewFactory(cfg, nil).ForModel("anthropic:claude-3-5-haiku-latest")
	require.NoError(t, err)
	assert.Equal(t, anthropicName, provider.Name())
}

func TestFactoryAnthropicNeedsOwnKey(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.APIKey = "sk-or-v1-secret"

	provider, err := NewFactory(cfg, nil).ForModel("anthropic:claude-3-5-haiku-latest")
	require.Error(t, err)
	assert.Nil(t, provider)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
	assert.Equal(t, domain.ReasonCredential, domain.ReasonOf(err))
	assert.Contains(t, err.Error(), domain.EnvAnthropicAPIKey)
	assert.NotContains(t, err.Error(), domain.EnvAPIKey+" ")
}
