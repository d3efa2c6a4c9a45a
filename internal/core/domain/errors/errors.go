package errors

import "fmt"

// InvalidStateError reports a domain object that breaks its own invariants,
// e.g. an account row without a password hash.
type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.msg)
}

// NilArgumentError is raised with panic by constructors.
type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}
