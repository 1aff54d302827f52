package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/giantswarm/replkit/internal/app"
	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/settings"
	"github.com/giantswarm/replkit/internal/sysinfo"
)

// Exit codes for CLI commands. Failures rendered as error lines still exit
// with ExitCodeSuccess; ExitCodeError is reserved for startup failures.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates the application could not start.
	ExitCodeError = 1
)

// HostConfiguratorName identifies the metadata contributed by the binary.
const HostConfiguratorName = "replkit"

var (
	settingsPath string
	debug        bool
	quiet        bool
)

// rootCmd represents the base command. Every argument after the global
// flags is handed to the application's own dispatcher.
var rootCmd = &cobra.Command{
	Use:   "replkit [command...]",
	Short: "Run a command once or start the interactive shell",
	Long: `replkit runs a single command when arguments are given and prints the
banner and usage when none are. Use "replkit repl" for the interactive shell
with history, redo and tab completion.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "replkit version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

// newApplication builds the application for cmd, writing to the command's
// streams.
func newApplication(cmd *cobra.Command) (*app.Application, error) {
	cfg := app.NewConfig(debug, quiet, settingsPath, configurators()...)
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	cfg.Spinner = spinnerWanted()
	return app.NewApplication(cfg)
}

// configurators lists the command sets of the binary. The host metadata
// comes last so its name and version win.
func configurators() []command.Configurator {
	return []command.Configurator{sysinfo.New(), hostConfigurator()}
}

func hostConfigurator() command.Configurator {
	return command.StaticConfigurator{
		ID: HostConfiguratorName,
		Meta: command.Metadata{
			Name:    "replkit",
			Version: GetVersion(),
		},
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	a, err := newApplication(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.RunOnce(cmd.Context(), args)
}

// defaultSettingsPath falls back to in-memory settings when there is no
// home directory.
func defaultSettingsPath() string {
	path, err := settings.DefaultPath()
	if err != nil {
		return ""
	}
	return path
}

// spinnerWanted reports whether one-shot runs may draw a spinner.
func spinnerWanted() bool {
	return !quiet && term.IsTerminal(int(os.Stderr.Fd()))
}

// newHelpCmd replaces cobra's help command so "replkit help <command>" is
// answered by the application's help rather than cobra's.
func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "help [command...]",
		Short:  "Show help for a command",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, append([]string{"help"}, args...))
		},
	}
}

func init() {
	rootCmd.RunE = runOnce

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", defaultSettingsPath(), "Settings file (.yaml, .yml or .toml); empty keeps settings in memory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Only log errors")

	// Flags after the first command word belong to that command.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(newHelpCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newReplCmd())
}
