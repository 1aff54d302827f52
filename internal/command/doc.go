// Package command defines how applications describe their commands and how
// the descriptions of several configurators are merged into one schema.
//
// A Configurator contributes a list of Descriptors plus Metadata about the
// application. Setup folds any number of configurators into a Schema:
//
//	schema := command.Setup(core, sysinfo.New(), plugins)
//	entry, ok := schema.Lookup("sys.info")
//
// Descriptors may be nested through Subcommands or named with dots
// directly; both forms produce the same dotted full names. Setup never
// fails. Duplicate configurators, malformed names and name collisions are
// reported as warnings through pkg/logging and resolved in favour of the
// later registration.
//
// Handlers form a closed set: ContextFunc returns a structured
// output.Context, TextFunc returns a plain string and Static always
// produces the same text.
package command
