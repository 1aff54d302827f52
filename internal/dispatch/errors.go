package dispatch

import (
	"fmt"
	"strings"
)

// ParseError is a grammar error reported by the parser or the line
// splitter.
type ParseError struct {
	Command string
	Reason  string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// UnknownCommandError reports input that matches no registered command.
type UnknownCommandError struct {
	Tokens []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", strings.Join(e.Tokens, " "))
}

// HandlerFaultError wraps an error returned by a handler, or the value a
// handler panicked with. Its message is the original one.
type HandlerFaultError struct {
	Command string
	Err     error
	// Panic is the recovered value when the handler panicked.
	Panic any
}

func (e *HandlerFaultError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprint(e.Panic)
}

func (e *HandlerFaultError) Unwrap() error {
	return e.Err
}

// Panicked reports whether the fault is a recovered panic.
func (e *HandlerFaultError) Panicked() bool {
	return e.Err == nil
}
