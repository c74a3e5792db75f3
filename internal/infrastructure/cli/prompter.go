package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/pterm/pterm"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

const choicePrompt = "What would you like to do?"

// releaseWait bounds how long Choose waits for the selector to give the
// terminal back after the context is cancelled.
const releaseWait = 500 * time.Millisecond

var (
	// ErrNoChoice is returned when the input ends before a choice was made.
	ErrNoChoice = errors.New("no choice made")
	// ErrInterrupted is returned when Ctrl+C is pressed inside the selector.
	ErrInterrupted = errors.New("selection interrupted")
)

// NewPrompter picks the arrow-key selector on a terminal and the numbered
// line prompt otherwise.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) ports.ChoicePrompter {
	if interactive {
		return NewSelectPrompter()
	}
	return NewLinePrompter(in, out)
}

// SelectPrompter shows an interactive pterm select. Ctrl+C inside the select
// is reported as ErrInterrupted instead of terminating the process.
type SelectPrompter struct {
	show    func(labels []string, onInterrupt func()) (string, error)
	release func()
}

// NewSelectPrompter returns a prompter backed by pterm's interactive select.
func NewSelectPrompter() *SelectPrompter {
	return &SelectPrompter{show: showSelect, release: releaseKeyboard}
}

func showSelect(labels []string, onInterrupt func()) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(choicePrompt).
		WithOptions(labels).
		WithOnInterruptFunc(onInterrupt).
		Show()
}

// releaseKeyboard ends a running select the way Ctrl+C does, which makes
// pterm restore the terminal.
func releaseKeyboard() {
	_ = keyboard.SimulateKeyPress(keys.Key{Code: keys.CtrlC})
}

// Choose implements ports.ChoicePrompter.
func (p *SelectPrompter) Choose(ctx context.Context, _ string) (domain.Event, error) {
	labels := make([]string, 0, len(domain.Choices()))
	byLabel := make(map[string]domain.Event, len(domain.Choices()))
	for _, event := range domain.Choices() {
		labels = append(labels, event.Label())
		byLabel[event.Label()] = event
	}

	type answer struct {
		label string
		err   error
	}
	var interrupted atomic.Bool
	done := make(chan answer, 1)
	go func() {
		label, err := p.show(labels, func() { interrupted.Store(true) })
		done <- answer{label: label, err: err}
	}()

	select {
	case <-ctx.Done():
		go p.release()
		select {
		case <-done:
		case <-time.After(releaseWait):
		}
		return "", ctx.Err()
	case res := <-done:
		if interrupted.Load() {
			return "", ErrInterrupted
		}
		if res.err != nil {
			return "", res.err
		}
		event, ok := byLabel[res.label]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrNoChoice, res.label)
		}
		return event, nil
	}
}

// LinePrompter reads a numbered choice from a line-oriented reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter constructs a prompter referencing stdio.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Choose implements ports.ChoicePrompter. End of input counts as no choice,
// which the session treats as cancel.
func (p *LinePrompter) Choose(ctx context.Context, _ string) (domain.Event, error) {
	choices := domain.Choices()
	for {
		fmt.Fprintln(p.out, choicePrompt)
		for i, event := range choices {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, event.Label())
		}
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(choices))

		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if event, ok := parseChoice(line, choices); ok {
			return event, nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q.\n", line)
	}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && strings.TrimSpace(res.line) != "" {
				return strings.TrimSpace(res.line), nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", ErrNoChoice
			}
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

func parseChoice(line string, choices []domain.Event) (domain.Event, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	for _, event := range choices {
		name := string(event)
		if line == name || (line != "" && line == name[:1]) {
			return event, true
		}
	}
	return "", false
}

var (
	_ ports.ChoicePrompter = (*SelectPrompter)(nil)
	_ ports.ChoicePrompter = (*LinePrompter)(nil)
)
