package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// progressGenerator shows a spinner while the wrapped generator runs.
type progressGenerator struct {
	next     ports.CommandGenerator
	out      io.Writer
	animated bool
}

func withProgress(next ports.CommandGenerator, out io.Writer, animated bool) ports.CommandGenerator {
	return &progressGenerator{next: next, out: out, animated: animated}
}

func (g *progressGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	message := progressMessage(req)
	if !g.animated {
		fmt.Fprintln(g.out, message)
		return g.next.Generate(ctx, req)
	}

	spinner, err := pterm.DefaultSpinner.
		WithWriter(g.out).
		WithRemoveWhenDone(true).
		Start(message)
	if err != nil {
		fmt.Fprintln(g.out, message)
		return g.next.Generate(ctx, req)
	}

	command, err := g.next.Generate(ctx, req)
	_ = spinner.Stop()
	return command, err
}

func progressMessage(req domain.GenerationRequest) string {
	return fmt.Sprintf("Generating %s using %s...", req.Shell.Describe(), req.Model)
}
