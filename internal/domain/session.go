package domain

import (
	"errors"
	"fmt"
)

// SessionState is a node of the confirmation loop.
type SessionState string

const (
	StatePresenting SessionState = "presenting"
	StateDelivering SessionState = "delivering"
	StateDone       SessionState = "done"
)

// Event drives a transition. Accept, Regenerate and Cancel come from the user;
// Delivered is raised once the delivery step has run.
type Event string

const (
	EventAccept     Event = "accept"
	EventRegenerate Event = "regenerate"
	EventCancel     Event = "cancel"
	EventDelivered  Event = "delivered"
)

// Choices are the options offered on every Presenting entry, in display order.
func Choices() []Event {
	return []Event{EventAccept, EventRegenerate, EventCancel}
}

// Label is the menu text for a user choice.
func (e Event) Label() string {
	switch e {
	case EventAccept:
		return "Accept and copy to clipboard/history"
	case EventRegenerate:
		return "Regenerate command"
	case EventCancel:
		return "Cancel"
	default:
		return string(e)
	}
}

// Action is the side effect the driver performs after a transition.
type Action string

const (
	ActionNone       Action = "none"
	ActionDeliver    Action = "deliver"
	ActionRegenerate Action = "regenerate"
	ActionCancel     Action = "cancel"
)

var (
	// ErrTerminalState is returned for any event received in StateDone.
	ErrTerminalState = errors.New("session already finished")
	// ErrInvalidTransition is returned for events the state does not accept.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Transition is the pure transition function of the confirmation loop.
func Transition(state SessionState, event Event) (SessionState, Action, error) {
	switch state {
	case StatePresenting:
		switch event {
		case EventAccept:
			return StateDelivering, ActionDeliver, nil
		case EventRegenerate:
			return StatePresenting, ActionRegenerate, nil
		case EventCancel:
			return StateDone, ActionCancel, nil
		}
	case StateDelivering:
		if event == EventDelivered {
			return StateDone, ActionNone, nil
		}
	case StateDone:
		return StateDone, ActionNone, ErrTerminalState
	}
	return state, ActionNone, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, state)
}
