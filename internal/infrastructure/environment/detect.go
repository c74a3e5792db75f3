package environment

import (
	"strings"

	"github.com/doeshing/clai-go/internal/domain"
)

// DetectShell classifies the active shell. First matching rule wins:
//  1. SHELL contains bash, zsh or fish
//  2. ComSpec contains powershell or cmd
//  3. PSModulePath is set
//  4. platform default (cmd on Windows, bash elsewhere)
func DetectShell(s Snapshot) domain.ShellVariant {
	if shell := strings.ToLower(s.Get("SHELL")); shell != "" {
		switch {
		case strings.Contains(shell, "bash"):
			return domain.ShellBash
		case strings.Contains(shell, "zsh"):
			return domain.ShellZsh
		case strings.Contains(shell, "fish"):
			return domain.ShellFish
		}
	}

	if comSpec := strings.ToLower(s.Get("ComSpec")); comSpec != "" {
		switch {
		case strings.Contains(comSpec, "powershell"):
			return domain.ShellPowerShell
		case strings.Contains(comSpec, "cmd"):
			return domain.ShellCmd
		}
	}

	if s.Has("PSModulePath") {
		return domain.ShellPowerShell
	}

	if s.IsWindows() {
		return domain.ShellCmd
	}
	return domain.ShellBash
}

var (
	displayVars = []string{"DISPLAY", "WAYLAND_DISPLAY"}
	remoteVars  = []string{"SSH_CONNECTION", "SSH_CLIENT", "SSH_TTY"}
)

// IsHeadless reports whether no interactive graphical session is available.
// Windows is never headless. Elsewhere a remote session or a container counts
// as headless, and so does having neither DISPLAY nor WAYLAND_DISPLAY set.
//
// macOS is exempt from the display rule: its pasteboard works without either
// variable, so a local darwin terminal with no DISPLAY is not headless.
func IsHeadless(s Snapshot) bool {
	if s.IsWindows() {
		return false
	}
	if s.GOOS() != "darwin" && !anySet(s, displayVars) {
		return true
	}
	if anySet(s, remoteVars) {
		return true
	}
	return s.InContainer()
}

func anySet(s Snapshot, keys []string) bool {
	for _, key := range keys {
		if s.Has(key) {
			return true
		}
	}
	return false
}
