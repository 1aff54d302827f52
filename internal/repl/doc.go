// Package repl implements the interactive read-eval-print loop.
//
// Every line goes through the same dispatch.Dispatcher and
// output.Orchestrator as one-shot invocations. Lines are recorded in a
// history.Store unless they start with one of the meta commands (history,
// help, redo, flush, tab, exit, quit and ?), so that recalling and
// re-running history never pollutes it.
//
// Tab completion is available both through readline's TAB key and through
// the "tab <prefix>" command, which is handy when input is piped in.
package repl
