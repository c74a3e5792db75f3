package ai

import "strings"

var fenceLanguages = map[string]bool{
	"sh": true, "bash": true, "zsh": true, "fish": true, "shell": true, "console": true,
	"powershell": true, "pwsh": true, "ps1": true, "cmd": true, "bat": true, "batch": true,
}

// extractCommand pulls the command out of a reply. A fenced block wins; a
// single pair of inline backticks is stripped; otherwise the text is trimmed.
func extractCommand(content string) string {
	if code := extractCodeBlock(content); code != "" {
		return code
	}
	trimmed := strings.TrimSpace(content)
	if len(trimmed) > 1 && strings.Count(trimmed, "`") == 2 &&
		strings.HasPrefix(trimmed, "`") && strings.HasSuffix(trimmed, "`") {
		return strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}
	return trimmed
}

func extractCodeBlock(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return ""
	}
	suffix := content[start+3:]
	end := strings.Index(suffix, "```")
	if end == -1 {
		return ""
	}

	lines := strings.Split(suffix[:end], "\n")
	if len(lines) > 1 && fenceLanguages[strings.ToLower(strings.TrimSpace(lines[0]))] {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
