package app

import (
	"io"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/repl"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool
	// Quiet only logs errors.
	Quiet bool

	// SettingsPath is the settings file (.yaml, .yml or .toml). Empty keeps
	// settings in memory.
	SettingsPath string

	// Configurators contribute commands after the built-in core.
	Configurators []command.Configurator

	// Stdout receives rendered output; Stderr receives logs. Both default to
	// the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Getenv and IsTerminal feed the output style selection. They default to
	// os.Getenv and a stdout color probe.
	Getenv     func(string) string
	IsTerminal func() bool

	// Spinner shows a progress spinner on stderr during one-shot runs.
	Spinner bool

	// Reader replaces the terminal line editor in the REPL.
	Reader repl.LineReader
	// HistoryFile persists the line editor's arrow-key history.
	HistoryFile string
}

// NewConfig creates a new application configuration
func NewConfig(debug, quiet bool, settingsPath string, configurators ...command.Configurator) *Config {
	return &Config{
		Debug:         debug,
		Quiet:         quiet,
		SettingsPath:  settingsPath,
		Configurators: configurators,
	}
}
