// Package delivery routes an accepted command to the clipboard or the shell
// history, degrading to printing it when neither works.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/infrastructure/environment"
	"github.com/doeshing/clai-go/internal/ports"
)

// Resolver implements ports.Deliverer. Interactive sessions get the clipboard
// with history as fallback; headless sessions go straight to history.
type Resolver struct {
	Env       environment.Snapshot
	Clipboard ports.Clipboard
	History   ports.HistoryAppender
	Presenter ports.Presenter
	Logger    ports.Logger
	// PreferHistory also appends to history after a successful clipboard copy.
	PreferHistory bool
	// CmdStrict reports cmd's missing history as a delivery error instead of a notice.
	CmdStrict bool
}

// Deliver never fails. Errors are reflected in the outcome and shown through
// the presenter; the log only records them at debug level.
func (r *Resolver) Deliver(_ context.Context, command string, shell domain.ShellVariant) domain.DeliveryOutcome {
	var outcome domain.DeliveryOutcome

	if environment.IsHeadless(r.Env) {
		outcome.Notes = append(outcome.Notes, "headless session, clipboard skipped")
		r.Logger.Debug("headless session, skipping clipboard", nil)
	} else if err := r.copy(command); err != nil {
		outcome.Notes = append(outcome.Notes, err.Error())
		r.Logger.Debug("clipboard copy failed", map[string]interface{}{"error": err.Error()})
	} else {
		outcome.ClipboardSucceeded = true
		r.Presenter.Success("Command copied to clipboard!")
	}

	if !outcome.ClipboardSucceeded || r.PreferHistory {
		r.appendHistory(command, shell, &outcome)
	}

	if !outcome.Delivered() {
		outcome.Printed = true
		r.Presenter.Info(fmt.Sprintf("Generated command: %s", command))
	}
	return outcome
}

func (r *Resolver) copy(command string) error {
	if r.Clipboard == nil || !r.Clipboard.Enabled() {
		return domain.NewError(domain.KindDelivery, "clipboard", ErrClipboardUnavailable)
	}
	if err := r.Clipboard.Copy(command); err != nil {
		return domain.NewError(domain.KindDelivery, "clipboard", err)
	}
	return nil
}

func (r *Resolver) appendHistory(command string, shell domain.ShellVariant, outcome *domain.DeliveryOutcome) {
	if r.History == nil {
		return
	}

	target, err := r.History.Append(command, shell)
	if err == nil {
		outcome.HistorySucceeded = true
		outcome.HistoryTarget = target
		r.Presenter.Success(fmt.Sprintf("Command added to %s history (%s).", shell.DisplayName(), target))
		return
	}

	outcome.Notes = append(outcome.Notes, err.Error())
	fields := map[string]interface{}{"shell": shell.String()}
	if errors.Is(err, ErrNoPersistentHistory) && !r.CmdStrict {
		r.Logger.Debug("shell has no persistent history", fields)
		r.Presenter.Info("Windows Command Prompt keeps no persistent history.")
		return
	}
	fields["error"] = err.Error()
	r.Logger.Debug("history append failed", fields)
	r.Presenter.Warn(fmt.Sprintf("Could not add the command to shell history: %v", err))
}

var _ ports.Deliverer = (*Resolver)(nil)
