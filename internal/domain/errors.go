package domain

import "errors"

// ErrorKind classifies failures surfaced by the CLI.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindProvider      ErrorKind = "provider"
	KindValidation    ErrorKind = "validation"
	KindDelivery      ErrorKind = "delivery"
	KindUnknown       ErrorKind = "unknown"
)

// ErrorReason narrows a kind for remediation hints.
type ErrorReason string

const (
	ReasonNone       ErrorReason = ""
	ReasonCredential ErrorReason = "credential"
	ReasonModel      ErrorReason = "model"
	ReasonTimeout    ErrorReason = "timeout"
)

// Error is the typed error carried across layers.
type Error struct {
	Kind   ErrorKind
	Reason ErrorReason
	Msg    string
	Err    error
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// WithReason sets the remediation reason and returns the receiver.
func (e *Error) WithReason(reason ErrorReason) *Error {
	e.Reason = reason
	return e
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from anywhere in the chain.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnknown
}

// ReasonOf extracts the remediation reason from anywhere in the chain.
func ReasonOf(err error) ErrorReason {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Reason
	}
	return ReasonNone
}

// IsFatal reports whether the error should terminate the invocation.
// Delivery errors are always recovered locally.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) != KindDelivery
}
