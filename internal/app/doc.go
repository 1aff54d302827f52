// Package app wires the replkit components into a runnable application.
//
// # Architecture Overview
//
// An Application owns one instance of every component and is the only
// place where they meet:
//
//  1. **Schema**: built once by command.Setup from the built-in core
//     configurator followed by the host's configurators.
//  2. **Dispatcher**: resolves argument vectors and raw lines against the
//     schema, handing handlers the current settings snapshot.
//  3. **Callbacks and Orchestrator**: every Output Context passes through
//     the format_output callbacks before the orchestrator picks a renderer.
//  4. **History**: the actor-backed store shared by the REPL and the core
//     commands.
//  5. **Settings**: a file or in-memory store, decoded into Preferences and
//     reloaded while the REPL runs.
//
// # Execution Modes
//
//   - RunOnce dispatches a single argument vector and prints the result.
//   - RunREPL starts the interactive loop and, when settings come from a
//     file, a watcher applying changes to the running session.
//
// # Built-in Commands
//
// The core configurator contributes:
//
//   - `history`: prints the recorded lines with their indices
//   - `redo <index>`: re-runs a recorded line through the dispatcher
//   - `flush`: clears the history
//
// Host configurators registered later may replace any of them.
package app
