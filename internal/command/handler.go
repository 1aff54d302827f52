package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/giantswarm/replkit/internal/output"
)

// Invocation is what a handler receives.
type Invocation struct {
	// Command is the full dotted name of the invoked command.
	Command string
	Args    []string
	Flags   map[string]bool
	Options map[string]string
	// Settings is the snapshot loaded from the settings store.
	Settings map[string]any
	// Parser is the configured parser node for the command, useful for
	// rendering its usage. It may be nil.
	Parser *cobra.Command
	// Output is a fresh pending Context for this invocation.
	Output *output.Context
}

// Flag reports whether the boolean switch name was given.
func (inv Invocation) Flag(name string) bool {
	return inv.Flags[name]
}

// Option returns the value of the option name, or its default.
func (inv Invocation) Option(name string) string {
	return inv.Options[name]
}

// Arg returns the i-th positional argument or "".
func (inv Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Handler runs a command. The set of implementations is closed: use
// ContextFunc, TextFunc or Static.
type Handler interface {
	Handle(ctx context.Context, inv Invocation) (*output.Context, error)
	handler()
}

// ContextFunc is a handler producing a structured Context. A nil result is
// treated as inv.Output.
type ContextFunc func(ctx context.Context, inv Invocation) (*output.Context, error)

func (f ContextFunc) Handle(ctx context.Context, inv Invocation) (*output.Context, error) {
	out, err := f(ctx, inv)
	if out == nil {
		out = inv.Output
	}
	return out, err
}

func (ContextFunc) handler() {}

// TextFunc is a legacy handler producing a plain string, which becomes a
// single text item.
type TextFunc func(ctx context.Context, inv Invocation) (string, error)

func (f TextFunc) Handle(ctx context.Context, inv Invocation) (*output.Context, error) {
	s, err := f(ctx, inv)
	if err != nil {
		return inv.Output, err
	}
	if s == "" {
		return inv.Output, nil
	}
	return inv.Output.Text(s), nil
}

func (TextFunc) handler() {}

// Static is a handler that always prints the same text.
type Static string

func (s Static) Handle(_ context.Context, inv Invocation) (*output.Context, error) {
	return inv.Output.Text(string(s)), nil
}

func (Static) handler() {}
