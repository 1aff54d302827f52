package dispatch

import (
	"context"
	"maps"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/output"
	"github.com/giantswarm/replkit/internal/parser"
	"github.com/giantswarm/replkit/internal/settings"
	"github.com/giantswarm/replkit/pkg/logging"
)

// Kind classifies how an input was resolved.
type Kind int

const (
	// Direct outcomes carry text produced without any handler, such as the
	// version line.
	Direct Kind = iota
	// Dispatched outcomes come from a handler.
	Dispatched
	// Help outcomes carry rendered help.
	Help
	// Failed outcomes carry a single error.
	Failed
)

func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Dispatched:
		return "dispatched"
	case Help:
		return "help"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of resolving one input.
type Outcome struct {
	Kind    Kind
	Context *output.Context
	// Err is set for Failed outcomes.
	Err error
}

// Dispatcher resolves inputs against a schema.
type Dispatcher struct {
	schema   *command.Schema
	parser   *parser.Parser
	settings settings.Store
	width    func() int
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithSettings sets the store whose snapshot handlers receive.
func WithSettings(store settings.Store) Option {
	return func(d *Dispatcher) { d.settings = store }
}

// WithWidth sets the function returning the help wrapping width.
func WithWidth(width func() int) Option {
	return func(d *Dispatcher) { d.width = width }
}

// New creates a Dispatcher for schema.
func New(schema *command.Schema, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		schema:   schema,
		parser:   parser.New(schema),
		settings: settings.NewMemoryStore(nil),
		width:    func() int { return 0 },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Schema returns the schema commands are resolved against.
func (d *Dispatcher) Schema() *command.Schema {
	return d.schema
}

// Parser returns the parser used by DispatchArgs.
func (d *Dispatcher) Parser() *parser.Parser {
	return d.parser
}

// DispatchLine splits line using shell quoting rules and dispatches the
// resulting words.
func (d *Dispatcher) DispatchLine(ctx context.Context, line string) Outcome {
	argv, err := Split(line)
	if err != nil {
		return failed(output.New("", nil, nil), &ParseError{Reason: err.Error()})
	}
	return d.DispatchArgs(ctx, argv)
}

// Split breaks a raw line into words the way a POSIX shell would, without
// expanding variables or backticks.
func Split(line string) ([]string, error) {
	return shellwords.Parse(line)
}

// DispatchArgs parses argv and resolves the result.
func (d *Dispatcher) DispatchArgs(ctx context.Context, argv []string) Outcome {
	return d.Resolve(ctx, d.parser.Parse(argv))
}

// Resolve turns a parse result into an Outcome.
func (d *Dispatcher) Resolve(ctx context.Context, res parser.Result) Outcome {
	switch {
	case res.Kind == parser.KindImmediate:
		return Outcome{Kind: Direct, Context: output.New("", nil, nil).Text(res.Text).Settle()}

	case res.Kind == parser.KindError:
		return failed(output.New(res.Command, res.Args, nil), &ParseError{Command: res.Command, Reason: res.Reason})

	case res.Kind == parser.KindParsed && res.Command == "" && len(res.Unknown) == 0:
		return d.help("", d.topLevelUsage())

	case len(res.Unknown) > 0:
		return failed(output.New(res.Command, nil, nil), &UnknownCommandError{Tokens: res.Unknown})

	case res.Kind == parser.KindHelp:
		return d.help(res.HelpTarget, d.parser.RenderHelp(res.HelpTarget, d.width()))
	}

	entry, ok := d.schema.Lookup(res.Command)
	if !ok {
		return failed(output.New(res.Command, res.Args, nil), &UnknownCommandError{Tokens: []string{res.Command}})
	}
	if !entry.Runnable() {
		return d.help(entry.Name, d.parser.RenderHelp(entry.Name, d.width()))
	}
	return d.invoke(ctx, entry, res)
}

func (d *Dispatcher) help(target string, lines []string) Outcome {
	c := output.New(target, nil, nil).Text(strings.Join(lines, "\n")).Settle()
	return Outcome{Kind: Help, Context: c}
}

// topLevelUsage is the top-level help without the framing the banner
// already shows: the name and version line, the about text and blank
// lines before the usage section.
func (d *Dispatcher) topLevelUsage() []string {
	lines := d.parser.RenderHelp("", d.width())
	if i := slices.Index(lines, "Usage:"); i > 0 {
		return lines[i:]
	}
	return lines
}

func (d *Dispatcher) invoke(ctx context.Context, entry command.Entry, res parser.Result) Outcome {
	options := make(map[string]any, len(res.Flags)+len(res.Options))
	for k, v := range res.Flags {
		options[k] = v
	}
	for k, v := range res.Options {
		options[k] = v
	}
	base := output.New(entry.Name, res.Args, options)

	inv := command.Invocation{
		Command:  entry.Name,
		Args:     res.Args,
		Flags:    maps.Clone(res.Flags),
		Options:  maps.Clone(res.Options),
		Settings: d.loadSettings(),
		Parser:   res.Node,
		Output:   base,
	}

	out, err := call(ctx, entry.Descriptor.Handler, inv)
	if out == nil {
		out = base
	}
	if err != nil {
		return failed(out, err)
	}
	return Outcome{Kind: Dispatched, Context: out.Settle()}
}

func call(ctx context.Context, h command.Handler, inv command.Invocation) (out *output.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Dispatch", "handler %s panicked: %v\n%s", inv.Command, r, debug.Stack())
			out, err = nil, &HandlerFaultError{Command: inv.Command, Panic: r}
		}
	}()
	out, err = h.Handle(ctx, inv)
	if err != nil {
		err = &HandlerFaultError{Command: inv.Command, Err: err}
	}
	return out, err
}

func (d *Dispatcher) loadSettings() map[string]any {
	values, err := d.settings.Load()
	if err != nil {
		logging.Warn("Dispatch", "failed to load settings, continuing without them: %v", err)
		return map[string]any{}
	}
	return values
}

func failed(c *output.Context, err error) Outcome {
	logging.Debug("Dispatch", "command %q failed: %v", c.Command, err)
	if !slices.Contains(c.Errors, err.Error()) {
		c = c.Fail(err.Error())
	}
	return Outcome{Kind: Failed, Context: c, Err: err}
}
