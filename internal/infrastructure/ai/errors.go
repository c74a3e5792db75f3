package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/doeshing/clai-go/internal/domain"
)

// providerError wraps a failed completion call as a ProviderError, classifying
// it so the CLI can print the right remediation hint.
func providerError(name string, status int, err error) error {
	reason := classify(status, err)

	code := errbuilder.CodeUnavailable
	if reason == domain.ReasonCredential {
		code = errbuilder.CodeFailedPrecondition
	}
	cause := errbuilder.New().
		WithCode(code).
		WithMsg(err.Error()).
		WithCause(err)

	return domain.NewError(domain.KindProvider, name, cause).WithReason(reason)
}

func classify(status int, err error) domain.ErrorReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ReasonTimeout
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ReasonCredential
	case http.StatusNotFound:
		return domain.ReasonModel
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "api key"), strings.Contains(text, "api_key"):
		return domain.ReasonCredential
	case strings.Contains(text, "model"):
		return domain.ReasonModel
	default:
		return domain.ReasonNone
	}
}
