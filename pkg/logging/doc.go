// Package logging provides structured logging for replkit built on Go's
// standard slog package.
//
// All records carry a subsystem attribute so that output from the
// coordinator, dispatcher, history actor and REPL can be told apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Warn("Coordinator", "duplicate command %q, keeping the last registration", name)
//	logging.Error("Settings", err, "failed to reload %s", path)
//
// Subsystems used across the module:
//
//   - Coordinator: configurator merging and duplicate detection
//   - Dispatch: command resolution and handler faults
//   - Callbacks: output callback chain faults
//   - History: history actor lifecycle
//   - REPL: interactive loop
//   - Settings: settings loading and hot reload
//   - CLI: process entry point
//
// Until InitForCLI is called only warnings and errors are written, to stderr.
// Tests capture records by initialising the package with a bytes.Buffer.
package logging
