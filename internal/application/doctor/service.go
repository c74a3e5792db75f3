package doctor

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/clai-go/internal/application/config"
	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// Service runs environment diagnostics without calling the provider.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Clipboard      ports.Clipboard
	History        ports.HistoryLocator
	Validator      ports.CommandValidator
	Shell          domain.ShellVariant
	Headless       bool
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	report := domain.HealthReport{Shell: s.Shell, Headless: s.Headless}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		report.Checks = append(report.Checks, fail("Config", fmt.Sprintf("load failed: %v", err)))
		return report, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		report.Checks = append(report.Checks, fail("Config", err.Error()))
	} else {
		report.Checks = append(report.Checks, ok("Config", fmt.Sprintf("timeout %s", cfg.Timeout)))
	}

	report.Checks = append(report.Checks,
		credentialCheck(cfg),
		modelCheck(cfg),
		ok("Shell", fmt.Sprintf("%s (%s)", s.Shell.DisplayName(), s.Shell.Describe())),
		s.clipboardCheck(),
		s.historyCheck(),
		s.validatorCheck(),
	)
	return report, nil
}

func credentialCheck(cfg domain.Config) domain.HealthCheck {
	if err := appconfig.RequireCredential(cfg, cfg.DefaultModel); err != nil {
		return fail("API key", fmt.Sprintf("%s missing", cfg.CredentialEnv(cfg.DefaultModel)))
	}
	return ok("API key", "configured")
}

func modelCheck(cfg domain.Config) domain.HealthCheck {
	route := "OpenRouter " + cfg.BaseURL
	if cfg.UsesAnthropic(cfg.DefaultModel) {
		route = "Anthropic Messages API"
	}
	return ok("Model", fmt.Sprintf("%s via %s", cfg.DefaultModel, route))
}

func (s *Service) clipboardCheck() domain.HealthCheck {
	switch {
	case s.Headless:
		return warn("Clipboard", "headless session, commands go to shell history")
	case s.Clipboard == nil || !s.Clipboard.Enabled():
		return warn("Clipboard", "no clipboard utility found (install xclip, xsel or wl-clipboard)")
	default:
		return ok("Clipboard", "available")
	}
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.History == nil {
		return warn("History", "history writer not initialized")
	}
	path, err := s.History.Path(s.Shell)
	if err != nil {
		return warn("History", err.Error())
	}
	return ok("History", path)
}

func (s *Service) validatorCheck() domain.HealthCheck {
	if s.Validator == nil {
		return warn("Validator", "validator not initialized")
	}
	if verdict := s.Validator.Check("ls -la"); !verdict.OK {
		return fail("Validator", fmt.Sprintf("rejects a plain command: %s", verdict.Reason))
	}
	return ok("Validator", "rules loaded")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
