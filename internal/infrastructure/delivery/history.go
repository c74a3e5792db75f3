package delivery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/infrastructure/environment"
	"github.com/doeshing/clai-go/internal/ports"
)

var (
	// ErrNoPersistentHistory is returned for shells without a history file (cmd).
	ErrNoPersistentHistory = errors.New("shell keeps no persistent history")
	// ErrUnsupportedShell is returned when the shell variant is unknown.
	ErrUnsupportedShell = errors.New("unsupported shell")
)

// History appends commands to the active shell's history file without
// executing them. Running shells pick the entry up on their next history
// reload (zsh with SHARE_HISTORY, fish, PSReadLine) or at the next session.
type History struct {
	env environment.Snapshot
	now func() time.Time
	mu  sync.Mutex
}

// NewHistory creates a history appender resolving paths from env.
func NewHistory(env environment.Snapshot) *History {
	return &History{env: env, now: time.Now}
}

// Path returns the history file used for shell.
func (h *History) Path(shell domain.ShellVariant) (string, error) {
	switch shell {
	case domain.ShellBash:
		return h.histFile(".bash_history"), nil
	case domain.ShellZsh:
		return h.histFile(".zsh_history"), nil
	case domain.ShellFish:
		return filepath.Join(h.env.DataHome(), "fish", "fish_history"), nil
	case domain.ShellPowerShell:
		if h.env.IsWindows() {
			appData := h.env.Get("APPDATA")
			if appData == "" {
				appData = filepath.Join(h.env.HomeDir(), "AppData", "Roaming")
			}
			return filepath.Join(appData, "Microsoft", "Windows", "PowerShell", "PSReadLine", "ConsoleHost_history.txt"), nil
		}
		return filepath.Join(h.env.DataHome(), "powershell", "PSReadLine", "ConsoleHost_history.txt"), nil
	case domain.ShellCmd:
		return "", ErrNoPersistentHistory
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedShell, shell)
	}
}

// Append implements ports.HistoryAppender.
func (h *History) Append(command string, shell domain.ShellVariant) (string, error) {
	path, err := h.Path(shell)
	if err != nil {
		return "", domain.NewError(domain.KindDelivery, "history", err)
	}

	entry := h.format(command, shell)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return "", domain.NewError(domain.KindDelivery, "history", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.HistoryFilePermissions)
	if err != nil {
		return "", domain.NewError(domain.KindDelivery, "history", err)
	}
	defer file.Close()

	if _, err := file.WriteString(entry); err != nil {
		return "", domain.NewError(domain.KindDelivery, "history", err)
	}
	return path, nil
}

func (h *History) histFile(fallback string) string {
	if path := h.env.Get("HISTFILE"); path != "" {
		return path
	}
	return filepath.Join(h.env.HomeDir(), fallback)
}

func (h *History) format(command string, shell domain.ShellVariant) string {
	epoch := h.now().Unix()
	switch shell {
	case domain.ShellZsh:
		// extended history: ": <start>:<elapsed>;<command>"
		return fmt.Sprintf(": %d:0;%s\n", epoch, strings.ReplaceAll(command, "\n", "\\\n"))
	case domain.ShellFish:
		escaped := strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(command)
		return fmt.Sprintf("- cmd: %s\n  when: %d\n", escaped, epoch)
	case domain.ShellPowerShell:
		return strings.ReplaceAll(command, "\n", "`\n") + "\n"
	default:
		// bash reads one entry per line
		return singleLine(command) + "\n"
	}
}

// singleLine folds a continued command onto one line, dropping trailing
// backslash continuations.
func singleLine(command string) string {
	lines := strings.Split(command, "\n")
	parts := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i < len(lines)-1 {
			line = strings.TrimSpace(strings.TrimSuffix(line, `\`))
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

var _ ports.HistoryAppender = (*History)(nil)
