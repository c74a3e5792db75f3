package command

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// Generator asks the configured provider for a command. Each call is bounded
// by Timeout.
type Generator struct {
	Factory ports.ProviderFactory
	Timeout time.Duration
	Logger  ports.Logger
	// OS is the target platform; defaults to runtime.GOOS.
	OS string
}

// Generate implements ports.CommandGenerator.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if g.Factory == nil || g.Logger == nil {
		return "", errors.New("command.Generator dependencies not satisfied")
	}

	provider, err := g.Factory.ForModel(req.Model)
	if err != nil {
		return "", err
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fields := map[string]interface{}{
		"request_id": uuid.NewString(),
		"provider":   provider.Name(),
		"model":      req.Model,
		"shell":      req.Shell.String(),
	}
	g.Logger.Debug("calling provider", fields)
	started := time.Now()

	resp, err := provider.Generate(callCtx, ports.ProviderRequest{
		Query: req.Query,
		Shell: req.Shell,
		Model: req.Model,
		OS:    g.targetOS(),
	})
	fields["elapsed"] = time.Since(started).String()
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = timeoutError(provider.Name(), timeout, err)
		}
		g.Logger.Error("provider call failed", err, fields)
		return "", err
	}

	command := strings.TrimSpace(resp.Command)
	fields["length"] = len(command)
	if reply := strings.TrimSpace(resp.Reply); reply != "" && reply != command {
		fields["reply"] = reply
	}
	g.Logger.Debug("provider replied", fields)
	return command, nil
}

func (g *Generator) targetOS() string {
	if g.OS != "" {
		return g.OS
	}
	return runtime.GOOS
}

func timeoutError(name string, timeout time.Duration, err error) error {
	cause := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(fmt.Sprintf("no reply within %s", timeout)).
		WithCause(err)
	return domain.NewError(domain.KindProvider, name+": request timed out", cause).
		WithReason(domain.ReasonTimeout)
}

var _ ports.CommandGenerator = (*Generator)(nil)
