package output

import (
	"fmt"
	"sync"

	"github.com/giantswarm/replkit/pkg/logging"
)

// EventFormatOutput is the event run by the Orchestrator before rendering.
const EventFormatOutput = "format_output"

// Value is what flows through a callback chain: either a structured
// *Context or a legacy plain string.
type Value struct {
	text      string
	ctx       *Context
	isContext bool
}

// TextValue wraps a legacy string.
func TextValue(s string) Value {
	return Value{text: s}
}

// ContextValue wraps a structured Context.
func ContextValue(c *Context) Value {
	return Value{ctx: c, isContext: true}
}

// AsText returns the string when v holds one.
func (v Value) AsText() (string, bool) {
	if v.isContext {
		return "", false
	}
	return v.text, true
}

// AsContext returns the Context when v holds one.
func (v Value) AsContext() (*Context, bool) {
	if !v.isContext {
		return nil, false
	}
	return v.ctx, true
}

// Step is a callback's verdict: the value to continue with, or a final value
// that stops the chain.
type Step struct {
	Value Value
	halt  bool
}

// Continue passes v on to the next callback.
func Continue(v Value) Step {
	return Step{Value: v}
}

// Halt stops the chain with v as its final value.
func Halt(v Value) Step {
	return Step{Value: v, halt: true}
}

// Halted reports whether the step stops the chain.
func (s Step) Halted() bool {
	return s.halt
}

// Callback transforms a Value.
type Callback func(Value) Step

// OnText adapts a string formatter. The callback leaves Context values
// untouched.
func OnText(fn func(string) string) Callback {
	return func(v Value) Step {
		s, ok := v.AsText()
		if !ok {
			return Continue(v)
		}
		return Continue(TextValue(fn(s)))
	}
}

// OnContext adapts a Context formatter. The callback leaves string values
// untouched; a nil result keeps the input.
func OnContext(fn func(*Context) *Context) Callback {
	return func(v Value) Step {
		c, ok := v.AsContext()
		if !ok {
			return Continue(v)
		}
		next := fn(c)
		if next == nil {
			return Continue(v)
		}
		return Continue(ContextValue(next))
	}
}

// Registry holds ordered callbacks per event name. The zero value is not
// usable; create one with NewRegistry and pass it to whoever renders.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string][]Callback
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string][]Callback)}
}

// Register appends cb to the callbacks of event.
func (r *Registry) Register(event string, cb Callback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[event] = append(r.callbacks[event], cb)
}

// Callbacks returns a snapshot of the callbacks registered for event.
func (r *Registry) Callbacks(event string) []Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Callback(nil), r.callbacks[event]...)
}

// Reset drops every registered callback.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = make(map[string][]Callback)
}

// Run passes v through the callbacks of event in registration order and
// returns the final value. A halting step ends the chain early. A callback
// that panics is skipped as if it had returned its input.
func (r *Registry) Run(event string, v Value) Value {
	for i, cb := range r.Callbacks(event) {
		step, err := invoke(cb, v)
		if err != nil {
			logging.Warn("Callbacks", "%s callback #%d failed, ignoring it: %v", event, i, err)
			continue
		}
		v = step.Value
		if step.Halted() {
			break
		}
	}
	return v
}

func invoke(cb Callback, v Value) (step Step, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return cb(v), nil
}
