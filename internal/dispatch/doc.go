// Package dispatch resolves parse results into handler invocations.
//
// A Dispatcher is shared by the one-shot entry point and the REPL: both
// hand it an argument vector (or a raw line) and render the Output Context
// it returns. Resolve never fails. Grammar errors, unknown commands and
// handler faults, including panics, are turned into failed contexts that
// render as a single "error:" line.
package dispatch
