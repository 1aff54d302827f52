package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/replkit/pkg/logging"
)

func TestRegistry_RunsInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(EventFormatOutput, OnText(func(s string) string { return s + "1" }))
	r.Register(EventFormatOutput, OnText(func(s string) string { return s + "2" }))
	r.Register("other", OnText(func(s string) string { return s + "x" }))

	got, ok := r.Run(EventFormatOutput, TextValue("v")).AsText()

	require.True(t, ok)
	assert.Equal(t, "v12", got)
}

func TestRegistry_HaltSkipsRemainingCallbacks(t *testing.T) {
	r := NewRegistry()
	var calls []int

	r.Register(EventFormatOutput, func(v Value) Step {
		calls = append(calls, 0)
		return Continue(TextValue("first"))
	})
	r.Register(EventFormatOutput, func(v Value) Step {
		calls = append(calls, 1)
		return Halt(TextValue("halted"))
	})
	r.Register(EventFormatOutput, func(v Value) Step {
		calls = append(calls, 2)
		return Continue(TextValue("never"))
	})

	got, _ := r.Run(EventFormatOutput, TextValue("in")).AsText()

	assert.Equal(t, "halted", got)
	assert.Equal(t, []int{0, 1}, calls)
}

func TestRegistry_TextCallbackIgnoresContext(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register(EventFormatOutput, OnText(func(s string) string {
		called = true
		return strings.ToUpper(s)
	}))

	in := New("cmd", []string{"a"}, nil).Text("hello")
	out, ok := r.Run(EventFormatOutput, ContextValue(in)).AsContext()

	require.True(t, ok)
	assert.Same(t, in, out)
	assert.False(t, called)
}

func TestRegistry_ContextCallbackIgnoresText(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register(EventFormatOutput, OnContext(func(c *Context) *Context {
		called = true
		return c.Text("added")
	}))

	out, ok := r.Run(EventFormatOutput, TextValue("legacy")).AsText()

	require.True(t, ok)
	assert.Equal(t, "legacy", out)
	assert.False(t, called)
}

func TestRegistry_MixedChain(t *testing.T) {
	r := NewRegistry()
	r.Register(EventFormatOutput, OnText(func(s string) string { return "[" + s + "]" }))
	r.Register(EventFormatOutput, OnContext(func(c *Context) *Context { return c.WithMeta("seen", true) }))

	c, _ := r.Run(EventFormatOutput, ContextValue(New("cmd", nil, nil))).AsContext()
	s, _ := r.Run(EventFormatOutput, TextValue("x")).AsText()

	assert.Equal(t, true, c.Meta["seen"])
	assert.Equal(t, "[x]", s)
}

func TestRegistry_PanickingCallbackIsIsolated(t *testing.T) {
	var logs bytes.Buffer
	logging.InitForCLI(logging.LevelWarn, &logs)
	t.Cleanup(logging.Discard)

	r := NewRegistry()
	r.Register(EventFormatOutput, OnText(func(s string) string { return s + "a" }))
	r.Register(EventFormatOutput, func(v Value) Step { panic("callback exploded") })
	r.Register(EventFormatOutput, OnText(func(s string) string { return s + "b" }))

	got, _ := r.Run(EventFormatOutput, TextValue("")).AsText()

	assert.Equal(t, "ab", got)
	assert.Contains(t, logs.String(), "callback exploded")
}

func TestRegistry_OnContextNilKeepsInput(t *testing.T) {
	r := NewRegistry()
	r.Register(EventFormatOutput, OnContext(func(c *Context) *Context { return nil }))

	in := New("cmd", nil, nil)
	out, _ := r.Run(EventFormatOutput, ContextValue(in)).AsContext()

	assert.Same(t, in, out)
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()
	r.Register(EventFormatOutput, OnText(func(s string) string { return "changed" }))
	r.Register(EventFormatOutput, nil)
	assert.Len(t, r.Callbacks(EventFormatOutput), 1)

	r.Reset()

	assert.Empty(t, r.Callbacks(EventFormatOutput))
	got, _ := r.Run(EventFormatOutput, TextValue("same")).AsText()
	assert.Equal(t, "same", got)
}
