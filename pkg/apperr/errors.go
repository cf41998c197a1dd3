package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every *ArgumentError through errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a caller-supplied value that cannot be used.
type ArgumentError struct {
	Argument string
	Value    any
	Message  string
	Err      error
}

func (e *ArgumentError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrInvalidArgument.Error()
	}
	if e.Argument != "" {
		msg = fmt.Sprintf("%s (%s=%v)", msg, e.Argument, e.Value)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func NewArgument(argument string, value any, msg string) *ArgumentError {
	return &ArgumentError{Argument: argument, Value: value, Message: msg}
}

func NewArgumentWrap(argument string, value any, msg string, err error) *ArgumentError {
	return &ArgumentError{Argument: argument, Value: value, Message: msg, Err: err}
}

// IsInvalidArgument reports whether err carries an *ArgumentError and returns it.
func IsInvalidArgument(err error) (*ArgumentError, bool) {
	var ae *ArgumentError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
