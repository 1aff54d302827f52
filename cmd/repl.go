package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giantswarm/replkit/internal/app"
)

var historyFile string

// newReplCmd creates the command that starts the interactive shell.
func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Long: `Start the interactive shell. Every command available one-shot is
available here too, plus the meta commands:

  history      list the recorded commands
  redo <n>     run recorded command n again
  flush        clear the history
  tab <word>   list completions for word
  exit, quit   leave the shell

Settings are reloaded while the shell runs when they come from a file.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	cmd.Flags().StringVar(&historyFile, "history-file", defaultHistoryFile(), "File keeping arrow-key line history")
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg := app.NewConfig(debug, quiet, settingsPath, configurators()...)
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0o750); err == nil {
			cfg.HistoryFile = historyFile
		}
	}

	a, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.RunREPL(ctx)
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "replkit", "history")
}
