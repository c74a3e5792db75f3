// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (command generation, the confirmation loop, diagnostics)
// depends only on these interfaces. Concrete adapters live under
// internal/infrastructure: the OpenRouter client, the clipboard, the history
// writers, the terminal prompter.
package ports

import (
	"context"

	"github.com/doeshing/clai-go/internal/domain"
)

// ConfigProvider loads the effective configuration (file merged with environment).
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds a completion provider for a model identifier.
type ProviderFactory interface {
	ForModel(model string) (Provider, error)
}

// Provider wraps one remote completion API.
type Provider interface {
	Name() string
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest carries everything needed to render the prompt and call the API.
type ProviderRequest struct {
	Query string
	Shell domain.ShellVariant
	Model string
	OS    string
}

// ProviderResponse holds the extracted command and the raw reply it came from.
type ProviderResponse struct {
	Command string
	Reply   string
}

// CommandGenerator turns a request into a command string.
type CommandGenerator interface {
	Generate(context.Context, domain.GenerationRequest) (string, error)
}

// CommandValidator is the shallow acceptability gate applied to generated text.
type CommandValidator interface {
	Validate(command string) bool
	Check(command string) domain.Verdict
}

// Deliverer routes an accepted command to clipboard or shell history.
type Deliverer interface {
	Deliver(ctx context.Context, command string, shell domain.ShellVariant) domain.DeliveryOutcome
}

// Clipboard provides system clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// HistoryAppender appends a command to a shell's history without executing it.
// It returns a description of where the command went.
type HistoryAppender interface {
	Append(command string, shell domain.ShellVariant) (string, error)
}

// HistoryLocator resolves where a shell keeps its history.
type HistoryLocator interface {
	Path(shell domain.ShellVariant) (string, error)
}

// ChoicePrompter blocks until the user picks accept, regenerate or cancel.
type ChoicePrompter interface {
	Choose(ctx context.Context, command string) (domain.Event, error)
}

// Presenter writes user-facing messages.
type Presenter interface {
	Command(text string)
	Info(msg string)
	Success(msg string)
	Warn(msg string)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
