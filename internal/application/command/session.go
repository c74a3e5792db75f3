package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// ValidationFailureMessage is shown when the first generated command is rejected.
const ValidationFailureMessage = "Generated command failed validation. Please try rephrasing your query."

// Result summarises one invocation of the confirmation loop.
type Result struct {
	Command     string
	Generations int
	Cancelled   bool
	Outcome     domain.DeliveryOutcome
}

// Session drives the confirm/regenerate/cancel loop around a generator.
type Session struct {
	Generator ports.CommandGenerator
	Validator ports.CommandValidator
	Deliverer ports.Deliverer
	Prompter  ports.ChoicePrompter
	Presenter ports.Presenter
	Logger    ports.Logger
}

// Run generates a command for req and lets the user accept, regenerate or
// cancel it. With autoAccept the first valid command is delivered without
// prompting.
func (s *Session) Run(ctx context.Context, req domain.GenerationRequest, autoAccept bool) (Result, error) {
	if s.Generator == nil || s.Validator == nil || s.Deliverer == nil || s.Presenter == nil || s.Logger == nil {
		return Result{}, errors.New("command.Session dependencies not satisfied")
	}
	if !autoAccept && s.Prompter == nil {
		return Result{}, errors.New("command.Session requires a prompter unless auto-accepting")
	}

	result := Result{}
	command, err := s.Generator.Generate(ctx, req)
	result.Generations++
	if err != nil {
		return result, err
	}
	if verdict := s.Validator.Check(command); !verdict.OK {
		s.Logger.Warn("generated command rejected", map[string]interface{}{
			"reason": verdict.Reason,
		})
		return result, domain.NewError(domain.KindValidation, ValidationFailureMessage, nil)
	}
	result.Command = command

	if autoAccept {
		s.Presenter.Command(command)
		result.Outcome = s.Deliverer.Deliver(ctx, command, req.Shell)
		return result, nil
	}

	state := domain.StatePresenting
	for {
		s.Presenter.Command(result.Command)

		event, err := s.Prompter.Choose(ctx, result.Command)
		if err != nil {
			s.Logger.Debug("prompt ended without a choice", map[string]interface{}{"error": err.Error()})
			event = domain.EventCancel
		}

		next, action, err := domain.Transition(state, event)
		if err != nil {
			return result, fmt.Errorf("confirmation loop: %w", err)
		}
		state = next

		switch action {
		case domain.ActionDeliver:
			result.Outcome = s.Deliverer.Deliver(ctx, result.Command, req.Shell)
			if _, _, err := domain.Transition(state, domain.EventDelivered); err != nil {
				return result, fmt.Errorf("confirmation loop: %w", err)
			}
			return result, nil

		case domain.ActionRegenerate:
			s.Presenter.Info("Regenerating command...")
			command, err := s.Generator.Generate(ctx, req)
			result.Generations++
			if err != nil {
				return result, err
			}
			if verdict := s.Validator.Check(command); !verdict.OK {
				s.Presenter.Warn(fmt.Sprintf("Regenerated command may have issues: %s", verdict.Reason))
			}
			result.Command = command

		case domain.ActionCancel:
			s.Presenter.Info("Operation cancelled.")
			result.Cancelled = true
			return result, nil
		}
	}
}
