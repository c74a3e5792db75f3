package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/doeshing/clai-go/internal/ports"
)

// Presenter writes user-facing messages. Styled output uses pterm prefixes;
// plain output is used when stdout is not a terminal.
type Presenter struct {
	out    io.Writer
	styled bool
}

// NewPresenter builds a presenter writing to out.
func NewPresenter(out io.Writer, styled bool) *Presenter {
	return &Presenter{out: out, styled: styled}
}

// Command shows a generated command.
func (p *Presenter) Command(text string) {
	if p.styled {
		fmt.Fprint(p.out, "\n"+pterm.FgLightCyan.Sprint("Generated command:")+"\n")
		fmt.Fprintln(p.out, pterm.Bold.Sprint(text))
		return
	}
	fmt.Fprintf(p.out, "\nGenerated command:\n%s\n", text)
}

func (p *Presenter) Info(msg string) {
	if p.styled {
		fmt.Fprint(p.out, pterm.Info.Sprintln(msg))
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Presenter) Success(msg string) {
	if p.styled {
		fmt.Fprint(p.out, pterm.Success.Sprintln(msg))
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Presenter) Warn(msg string) {
	if p.styled {
		fmt.Fprint(p.out, pterm.Warning.Sprintln(msg))
		return
	}
	fmt.Fprintf(p.out, "Warning: %s\n", msg)
}

var _ ports.Presenter = (*Presenter)(nil)
