package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/dispatch"
	"github.com/giantswarm/replkit/internal/output"
)

// CoreConfiguratorName identifies the built-in configurator.
const CoreConfiguratorName = "core"

// core returns the configurator of the built-in history commands.
func (a *Application) core() command.Configurator {
	return command.StaticConfigurator{
		ID: CoreConfiguratorName,
		Cmds: []command.Descriptor{
			{
				Name:    "history",
				Summary: "Show the commands run in this session",
				Handler: command.ContextFunc(a.showHistory),
			},
			{
				Name:        "redo",
				Summary:     "Run a command from the history again",
				Description: "Run the command recorded at the given index again. Indices start at 0 and are listed by 'history'.",
				Args:        []command.Arg{{Name: "index", Required: true, Help: "history index"}},
				Handler:     command.ContextFunc(a.redo),
			},
			{
				Name:    "flush",
				Summary: "Clear the history",
				Handler: command.ContextFunc(a.flush),
			},
		},
	}
}

func (a *Application) showHistory(_ context.Context, inv command.Invocation) (*output.Context, error) {
	entries := a.history.History()
	if len(entries) == 0 {
		return inv.Output.Info("history is empty"), nil
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(e.Index), e.Line}
	}
	return inv.Output.Table([]string{"index", "command"}, rows), nil
}

// redo reports a bad index as a failed result rather than a handler fault.
// A recorded line that is itself a redo is refused so redo cannot recurse.
func (a *Application) redo(ctx context.Context, inv command.Invocation) (*output.Context, error) {
	raw := inv.Arg(0)
	index, err := strconv.Atoi(raw)
	if err != nil {
		return inv.Output.Fail(fmt.Sprintf("invalid command index: %s", raw)), nil
	}
	entry, err := a.history.Get(index)
	if err != nil {
		return inv.Output.Fail(err.Error()), nil
	}
	if a.isRedo(entry.Line) {
		return inv.Output.Fail(fmt.Sprintf("cannot redo command %d: it is a redo", index)), nil
	}
	return a.dispatcher.DispatchLine(ctx, entry.Line).Context, nil
}

func (a *Application) flush(_ context.Context, inv command.Invocation) (*output.Context, error) {
	a.history.Flush()
	return inv.Output.Success("history flushed"), nil
}

func (a *Application) isRedo(line string) bool {
	argv, err := dispatch.Split(line)
	if err != nil || len(argv) == 0 {
		return false
	}
	return a.dispatcher.Parser().Parse(argv).Command == "redo"
}
