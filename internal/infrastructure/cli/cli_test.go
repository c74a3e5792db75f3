package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/clai-go/internal/domain"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "credential reason",
			err:  domain.NewError(domain.KindProvider, "openrouter", errors.New("401")).WithReason(domain.ReasonCredential),
			want: keysURL,
		},
		{
			name: "model reason",
			err:  domain.NewError(domain.KindProvider, "openrouter", errors.New("404")).WithReason(domain.ReasonModel),
			want: modelsURL,
		},
		{name: "api key text", err: errors.New("invalid API key"), want: keysURL},
		{name: "model text", err: errors.New("unknown model foo"), want: modelsURL},
		{
			name: "timeout",
			err:  domain.NewError(domain.KindProvider, "timed out", nil).WithReason(domain.ReasonTimeout),
			want: "--timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Hint(tt.err)
			if tt.want == "" {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, tt.want)
		})
	}
}

func TestLinePrompterChoices(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Event
	}{
		{input: "1\n", want: domain.EventAccept},
		{input: "2\n", want: domain.EventRegenerate},
		{input: "cancel\n", want: domain.EventCancel},
		{input: "r\n", want: domain.EventRegenerate},
		{input: "9\nA\n", want: domain.EventAccept},
		{input: "3", want: domain.EventCancel},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			prompter := NewLinePrompter(strings.NewReader(tt.input), &out)

			event, err := prompter.Choose(context.Background(), "ls")
			require.NoError(t, err)
			assert.Equal(t, tt.want, event)
			assert.Contains(t, out.String(), domain.EventAccept.Label())
		})
	}
}

func TestLinePrompterEOF(t *testing.T) {
	prompter := NewLinePrompter(strings.NewReader(""), io.Discard)

	_, err := prompter.Choose(context.Background(), "ls")
	assert.ErrorIs(t, err, ErrNoChoice)
}

func TestLinePrompterContextCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	prompter := NewLinePrompter(reader, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompter.Choose(ctx, "ls")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectPrompterChoice(t *testing.T) {
	prompter := &SelectPrompter{
		show: func(labels []string, _ func()) (string, error) {
			return labels[1], nil
		},
		release: func() {},
	}

	event, err := prompter.Choose(context.Background(), "ls")
	require.NoError(t, err)
	assert.Equal(t, domain.EventRegenerate, event)
}

func TestSelectPrompterCtrlCIsInterrupt(t *testing.T) {
	prompter := &SelectPrompter{
		show: func(_ []string, onInterrupt func()) (string, error) {
			onInterrupt()
			return "", nil
		},
		release: func() {},
	}

	_, err := prompter.Choose(context.Background(), "ls")
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestSelectPrompterReleasesKeyboardOnCancel(t *testing.T) {
	released := make(chan struct{})
	started := make(chan struct{})
	prompter := &SelectPrompter{
		show: func(_ []string, onInterrupt func()) (string, error) {
			close(started)
			<-released
			onInterrupt()
			return "", nil
		},
		release: func() { close(released) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := prompter.Choose(ctx, "ls")
	assert.ErrorIs(t, err, context.Canceled)
	select {
	case <-released:
	default:
		t.Fatal("keyboard was not released")
	}
}

func TestProgressGeneratorPlain(t *testing.T) {
	var out bytes.Buffer
	next := generatorFunc(func(context.Context, domain.GenerationRequest) (string, error) {
		return "ls -la", nil
	})

	gen := withProgress(next, &out, false)
	command, err := gen.Generate(context.Background(), domain.GenerationRequest{
		Query: "list files", Shell: domain.ShellFish, Model: "google/gemini-2.5-flash-lite",
	})

	require.NoError(t, err)
	assert.Equal(t, "ls -la", command)
	assert.Equal(t, "Generating Fish shell compatible command using google/gemini-2.5-flash-lite...\n", out.String())
}

func TestPresenterPlain(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(&out, false)

	p.Command("ls -la")
	p.Warn("careful")
	p.Info("Operation cancelled.")

	assert.Equal(t, "\nGenerated command:\nls -la\nWarning: careful\nOperation cancelled.\n", out.String())
}

type generatorFunc func(context.Context, domain.GenerationRequest) (string, error)

func (f generatorFunc) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	return f(ctx, req)
}
