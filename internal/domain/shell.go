package domain

import (
	"path/filepath"
	"strings"
)

// ShellVariant enumerates the interpreter families a command can target.
type ShellVariant string

const (
	ShellBash       ShellVariant = "bash"
	ShellZsh        ShellVariant = "zsh"
	ShellPowerShell ShellVariant = "powershell"
	ShellCmd        ShellVariant = "cmd"
	ShellFish       ShellVariant = "fish"
	ShellUnknown    ShellVariant = "unknown"
)

// SupportedShells lists the variants accepted by --shell.
func SupportedShells() []ShellVariant {
	return []ShellVariant{ShellBash, ShellZsh, ShellPowerShell, ShellCmd, ShellFish}
}

// ParseShellVariant accepts a bare name or a path ("/bin/zsh", "pwsh.exe").
func ParseShellVariant(value string) ShellVariant {
	name := strings.ToLower(strings.TrimSpace(value))
	if name == "" {
		return ShellUnknown
	}
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.TrimSuffix(name, ".exe")

	switch name {
	case "bash", "sh":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "powershell", "pwsh":
		return ShellPowerShell
	case "cmd":
		return ShellCmd
	default:
		return ShellUnknown
	}
}

// Describe returns formatting hints used in prompts and progress messages.
func (s ShellVariant) Describe() string {
	switch s {
	case ShellBash, ShellZsh:
		return "bash/zsh compatible command"
	case ShellPowerShell:
		return "PowerShell compatible command"
	case ShellCmd:
		return "Windows Command Prompt compatible command"
	case ShellFish:
		return "Fish shell compatible command"
	default:
		return "cross-platform command"
	}
}

// DisplayName is the human-facing shell name.
func (s ShellVariant) DisplayName() string {
	switch s {
	case ShellBash:
		return "Bash"
	case ShellZsh:
		return "Zsh"
	case ShellPowerShell:
		return "PowerShell"
	case ShellCmd:
		return "Windows Command Prompt"
	case ShellFish:
		return "Fish"
	default:
		return "a POSIX-like shell"
	}
}

func (s ShellVariant) String() string {
	return string(s)
}
