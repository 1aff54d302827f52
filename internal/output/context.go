package output

import (
	"maps"
	"slices"
)

// Status summarises the outcome of an invocation.
type Status string

const (
	StatusPending Status = "pending"
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// ItemKind tags an output item.
type ItemKind string

const (
	KindSuccess ItemKind = "success"
	KindError   ItemKind = "error"
	KindWarning ItemKind = "warning"
	KindInfo    ItemKind = "info"
	KindText    ItemKind = "text"
	KindTable   ItemKind = "table"
	KindList    ItemKind = "list"
)

// Meta keys understood by the Orchestrator.
const (
	MetaStyle   = "style"
	MetaNoColor = "no_color"
)

// Table is a headers-plus-rows payload.
type Table struct {
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
}

// Item is one tagged entry of a Context's output.
type Item struct {
	Kind  ItemKind `yaml:"kind"`
	Text  string   `yaml:"text,omitempty"`
	Table *Table   `yaml:"table,omitempty"`
	List  []string `yaml:"list,omitempty"`
}

// Context carries everything produced by a single invocation.
type Context struct {
	Command string
	Args    []string
	Options map[string]any
	Output  []Item
	// Errors are kept apart from Output so that each renders exactly once.
	Errors []string
	Status Status
	Cargo  map[string]any
	Meta   map[string]any
}

// New creates a pending Context for command.
func New(command string, args []string, options map[string]any) *Context {
	return &Context{
		Command: command,
		Args:    slices.Clone(args),
		Options: maps.Clone(options),
		Status:  StatusPending,
	}
}

// clone returns a copy that shares nothing mutable with c.
func (c *Context) clone() *Context {
	if c == nil {
		return New("", nil, nil)
	}
	out := *c
	out.Args = slices.Clone(c.Args)
	out.Options = maps.Clone(c.Options)
	out.Output = slices.Clone(c.Output)
	out.Errors = slices.Clone(c.Errors)
	out.Cargo = maps.Clone(c.Cargo)
	out.Meta = maps.Clone(c.Meta)
	return &out
}

// Add returns a copy of c with items appended. Warnings and errors among the
// items move the status accordingly.
func (c *Context) Add(items ...Item) *Context {
	out := c.clone()
	for _, item := range items {
		out.Output = append(out.Output, item)
		switch item.Kind {
		case KindError:
			out.Status = StatusError
		case KindWarning:
			if out.Status != StatusError {
				out.Status = StatusWarning
			}
		}
	}
	return out
}

// Success appends a success message.
func (c *Context) Success(msg string) *Context {
	out := c.Add(Item{Kind: KindSuccess, Text: msg})
	if out.Status == StatusPending {
		out.Status = StatusOK
	}
	return out
}

// Info appends an informational message.
func (c *Context) Info(msg string) *Context {
	return c.Add(Item{Kind: KindInfo, Text: msg})
}

// Text appends unstyled text.
func (c *Context) Text(msg string) *Context {
	return c.Add(Item{Kind: KindText, Text: msg})
}

// Warning appends a warning and marks the status as warning unless the
// invocation already failed.
func (c *Context) Warning(msg string) *Context {
	return c.Add(Item{Kind: KindWarning, Text: msg})
}

// Table appends a table.
func (c *Context) Table(headers []string, rows [][]string) *Context {
	return c.Add(Item{Kind: KindTable, Table: &Table{Headers: slices.Clone(headers), Rows: rows}})
}

// List appends a bulleted list.
func (c *Context) List(entries []string) *Context {
	return c.Add(Item{Kind: KindList, List: slices.Clone(entries)})
}

// Fail records an error message and marks the invocation as failed. The
// message lands in Errors only, never in Output.
func (c *Context) Fail(msg string) *Context {
	out := c.clone()
	out.Errors = append(out.Errors, msg)
	out.Status = StatusError
	return out
}

// WithStatus returns a copy with the given status.
func (c *Context) WithStatus(s Status) *Context {
	out := c.clone()
	out.Status = s
	return out
}

// WithMeta returns a copy with meta[key] set to value.
func (c *Context) WithMeta(key string, value any) *Context {
	out := c.clone()
	if out.Meta == nil {
		out.Meta = make(map[string]any)
	}
	out.Meta[key] = value
	return out
}

// WithCargo returns a copy with cargo[key] set to value.
func (c *Context) WithCargo(key string, value any) *Context {
	out := c.clone()
	if out.Cargo == nil {
		out.Cargo = make(map[string]any)
	}
	out.Cargo[key] = value
	return out
}

// Settle promotes a pending status to ok. Called once the handler returned.
func (c *Context) Settle() *Context {
	if c.Status != StatusPending {
		return c
	}
	return c.WithStatus(StatusOK)
}

// Failed reports whether the invocation recorded any error.
func (c *Context) Failed() bool {
	return c.Status == StatusError || len(c.Errors) > 0
}

// MetaString returns meta[key] when it is a string.
func (c *Context) MetaString(key string) string {
	if c == nil {
		return ""
	}
	s, _ := c.Meta[key].(string)
	return s
}

// MetaBool returns meta[key] when it is a bool.
func (c *Context) MetaBool(key string) bool {
	if c == nil {
		return false
	}
	b, _ := c.Meta[key].(bool)
	return b
}
