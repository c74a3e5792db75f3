package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

type templateData struct {
	Query       string
	Shell       string
	ShellName   string
	Description string
	OS          string
}

var (
	systemTemplate = template.Must(template.New("system").Parse(
		`You translate requests into a single {{.Description}} for {{.ShellName}}{{if .OS}} on {{.OS}}{{end}}.
Rules:
- Reply with the command only, on one line where possible.
- No explanations, no markdown, no code fences, no leading "$" prompt.
- Prefer standard, non-destructive tools available on a default {{.Shell}} installation.
- If the request is ambiguous, choose the safest reasonable interpretation.`))

	userTemplate = template.Must(template.New("user").Parse(
		`Generate a {{.Shell}} command to: {{.Query}}`))
)

// renderPromptMessages builds the system and user messages for a request.
func renderPromptMessages(req ports.ProviderRequest) ([]domain.PromptMessage, error) {
	data := templateData{
		Query:       strings.TrimSpace(req.Query),
		Shell:       req.Shell.String(),
		ShellName:   req.Shell.DisplayName(),
		Description: req.Shell.Describe(),
		OS:          osName(req.OS),
	}

	system, err := executeTemplate(systemTemplate, data)
	if err != nil {
		return nil, err
	}
	user, err := executeTemplate(userTemplate, data)
	if err != nil {
		return nil, err
	}

	return []domain.PromptMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, nil
}

func executeTemplate(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func osName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}
