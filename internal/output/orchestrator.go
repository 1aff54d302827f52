package output

import (
	"os"
	"strings"

	"github.com/giantswarm/replkit/pkg/logging"
)

// Style selects a renderer.
type Style string

const (
	StyleRich       Style = "rich"
	StylePlain      Style = "plain"
	StyleDiagnostic Style = "diagnostic"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, bool) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleRich:
		return StyleRich, true
	case StylePlain:
		return StylePlain, true
	case StyleDiagnostic:
		return StyleDiagnostic, true
	}
	return "", false
}

// DefaultEnvPrefix prefixes the style and test-mode environment variables.
const DefaultEnvPrefix = "REPLKIT"

// EnvNoColor is the conventional variable disabling colored output.
const EnvNoColor = "NO_COLOR"

// Orchestrator decides how a Context is displayed.
type Orchestrator struct {
	callbacks  *Registry
	getenv     func(string) string
	prefix     string
	isTerminal func() bool
	renderers  map[Style]Renderer
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithEnv replaces the environment lookup (os.Getenv by default).
func WithEnv(getenv func(string) string) Option {
	return func(o *Orchestrator) { o.getenv = getenv }
}

// WithEnvPrefix sets the prefix of the style and test-mode variables.
func WithEnvPrefix(prefix string) Option {
	return func(o *Orchestrator) { o.prefix = strings.ToUpper(prefix) }
}

// WithTerminal replaces the TTY capability probe.
func WithTerminal(isTerminal func() bool) Option {
	return func(o *Orchestrator) { o.isTerminal = isTerminal }
}

// NewOrchestrator creates an Orchestrator running the format_output
// callbacks of callbacks. A nil registry means no callbacks.
func NewOrchestrator(callbacks *Registry, opts ...Option) *Orchestrator {
	if callbacks == nil {
		callbacks = NewRegistry()
	}
	o := &Orchestrator{
		callbacks:  callbacks,
		getenv:     os.Getenv,
		prefix:     DefaultEnvPrefix,
		isTerminal: StdoutSupportsColor,
		renderers: map[Style]Renderer{
			StyleRich:       Rich,
			StylePlain:      Plain,
			StyleDiagnostic: Dump,
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Callbacks returns the registry consulted before rendering.
func (o *Orchestrator) Callbacks() *Registry {
	return o.callbacks
}

// StyleEnv is the name of the variable selecting a style explicitly.
func (o *Orchestrator) StyleEnv() string {
	return o.prefix + "_STYLE"
}

// TestModeEnv is the name of the variable forcing plain output in tests.
func (o *Orchestrator) TestModeEnv() string {
	return o.prefix + "_TEST_MODE"
}

// StyleFor resolves the style for c. The first matching rule wins:
//  1. meta["style"] on the Context
//  2. NO_COLOR, or meta["no_color"] set to true: plain
//  3. the <PREFIX>_STYLE variable
//  4. the <PREFIX>_TEST_MODE variable: plain
//  5. rich on a color-capable terminal, plain otherwise
func (o *Orchestrator) StyleFor(c *Context) Style {
	if raw := c.MetaString(MetaStyle); raw != "" {
		if style, ok := ParseStyle(raw); ok {
			return style
		}
		logging.Debug("Callbacks", "ignoring unknown style %q in output metadata", raw)
	}
	if o.getenv(EnvNoColor) != "" || c.MetaBool(MetaNoColor) {
		return StylePlain
	}
	if raw := o.getenv(o.StyleEnv()); raw != "" {
		if style, ok := ParseStyle(raw); ok {
			return style
		}
		logging.Debug("Callbacks", "ignoring unknown style %q in %s", raw, o.StyleEnv())
	}
	if truthy(o.getenv(o.TestModeEnv())) {
		return StylePlain
	}
	if o.isTerminal() {
		return StyleRich
	}
	return StylePlain
}

// Render runs the callback chain on c and renders the result. A callback
// may replace the Context with a plain string, which is returned as is.
func (o *Orchestrator) Render(c *Context) string {
	v := o.callbacks.Run(EventFormatOutput, ContextValue(c))
	if s, ok := v.AsText(); ok {
		return s
	}
	final, _ := v.AsContext()
	return o.renderers[o.StyleFor(final)](final)
}

// RenderText runs the callback chain on a legacy string. Context-only
// callbacks leave it alone.
func (o *Orchestrator) RenderText(s string) string {
	v := o.callbacks.Run(EventFormatOutput, TextValue(s))
	if out, ok := v.AsText(); ok {
		return out
	}
	c, _ := v.AsContext()
	return o.renderers[o.StyleFor(c)](c)
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
