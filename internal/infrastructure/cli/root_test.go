package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/clai-go/internal/domain"
)

func TestRootAutoAcceptEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("history file layout differs on windows")
	}

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"gen-1","object":"chat.completion","created":1,"model":"test/model",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ls -la"}}]}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	histFile := filepath.Join(dir, "bash_history")
	t.Setenv("HOME", dir)
	t.Setenv("SHELL", "/bin/bash")
	t.Setenv("HISTFILE", histFile)
	t.Setenv("SSH_TTY", "/dev/pts/0")
	t.Setenv(domain.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	t.Setenv(domain.EnvAPIKey, "sk-test")
	t.Setenv(domain.EnvBaseURL, srv.URL)
	t.Setenv(domain.EnvDefaultModel, "test/model")

	var out bytes.Buffer
	root := NewRootCmd(Options{})
	root.SetOut(&out)
	root.SetIn(bytes.NewReader(nil))
	root.SetArgs([]string{"list", "files", "--shell", "bash", "--yes"})

	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, out.String(), "Generating bash/zsh compatible command using test/model...")
	assert.NotContains(t, out.String(), "What would you like to do?")

	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "ls -la\n", string(data))
}

func TestRootMissingCredential(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(domain.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	t.Setenv(domain.EnvAPIKey, "")
	t.Setenv(domain.EnvAnthropicAPIKey, "")

	root := NewRootCmd(Options{})
	root.SetOut(io.Discard)
	root.SetArgs([]string{"list", "files", "-y"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
	assert.Contains(t, Hint(err), keysURL)
}

func TestRootWithoutQueryStillNeedsCredential(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(domain.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	t.Setenv(domain.EnvAPIKey, "")

	var out bytes.Buffer
	root := NewRootCmd(Options{})
	root.SetOut(&out)
	root.SetArgs([]string{})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ReasonCredential, domain.ReasonOf(err))
	assert.NotContains(t, out.String(), "Usage:")

	t.Setenv(domain.EnvAPIKey, "sk-test")
	out.Reset()
	root = NewRootCmd(Options{})
	root.SetOut(&out)
	root.SetArgs([]string{})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRootRejectsUnknownShell(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(domain.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	t.Setenv(domain.EnvAPIKey, "sk-test")

	root := NewRootCmd(Options{})
	root.SetOut(io.Discard)
	root.SetArgs([]string{"list", "--shell", "tcsh"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}
