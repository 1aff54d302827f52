// Package output turns the result of one command invocation into the text
// printed to the user.
//
// A Context accumulates tagged output items, errors, a status and free-form
// cargo/meta maps. Contexts are values in practice: every update method
// returns a new *Context and leaves the receiver untouched.
//
// Before rendering, the Orchestrator runs the Context (or a legacy string)
// through the "format_output" callbacks of a Registry. It then picks a style
// with a fixed precedence chain and hands the Context to one of the
// renderers:
//
//   - Rich: colors and rounded tables for interactive terminals
//   - Plain: no escape sequences, kubectl-style tables
//   - Dump: a YAML view of the raw Context fields, for debugging
//
// Whatever the style, every error renders as exactly one line beginning
// with "error:".
package output
