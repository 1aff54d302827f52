package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/dispatch"
	"github.com/giantswarm/replkit/internal/history"
	"github.com/giantswarm/replkit/internal/output"
	"github.com/giantswarm/replkit/internal/repl"
	"github.com/giantswarm/replkit/internal/settings"
	"github.com/giantswarm/replkit/pkg/logging"
)

// Application bundles the components of a replkit program.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load settings, build the schema
//  2. Execution phase: RunOnce or RunREPL
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "", sysinfo.New())
//	a, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	defer a.Close()
//	return a.RunOnce(ctx, os.Args[1:])
type Application struct {
	config *Config
	stdout io.Writer

	schema       *command.Schema
	callbacks    *output.Registry
	orchestrator *output.Orchestrator
	history      *history.Store
	dispatcher   *dispatch.Dispatcher
	settings     settings.Store

	mu    sync.RWMutex
	prefs settings.Preferences
	loop  *repl.REPL
}

// NewApplication creates and initializes a new application instance. It
// fails when the settings cannot be loaded or decoded.
func NewApplication(cfg *Config) (*Application, error) {
	logLevel := logging.LevelWarn
	switch {
	case cfg.Debug:
		logLevel = logging.LevelDebug
	case cfg.Quiet:
		logLevel = logging.LevelError
	}
	var logOutput io.Writer = os.Stderr
	if cfg.Stderr != nil {
		logOutput = cfg.Stderr
	}
	logging.InitForCLI(logLevel, logOutput)

	a := &Application{config: cfg, stdout: cfg.Stdout}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}

	if cfg.SettingsPath != "" {
		a.settings = settings.NewFileStore(cfg.SettingsPath)
	} else {
		a.settings = settings.NewMemoryStore(nil)
	}
	values, err := a.settings.Load()
	if err != nil {
		logging.Error("CLI", err, "Failed to load settings")
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if a.prefs, err = settings.Decode(values); err != nil {
		return nil, err
	}

	a.callbacks = output.NewRegistry()
	a.callbacks.Register(output.EventFormatOutput, output.OnContext(a.applyPreferences))

	var opts []output.Option
	if cfg.Getenv != nil {
		opts = append(opts, output.WithEnv(cfg.Getenv))
	}
	if cfg.IsTerminal != nil {
		opts = append(opts, output.WithTerminal(cfg.IsTerminal))
	}
	a.orchestrator = output.NewOrchestrator(a.callbacks, opts...)

	a.history = history.NewStore()

	configurators := append([]command.Configurator{a.core()}, cfg.Configurators...)
	a.schema = command.Setup(configurators...)
	a.dispatcher = dispatch.New(a.schema,
		dispatch.WithSettings(a.settings),
		dispatch.WithWidth(a.width),
	)

	logging.Debug("CLI", "application %q ready", a.schema.Meta.Banner())
	return a, nil
}

// Schema returns the merged command schema.
func (a *Application) Schema() *command.Schema { return a.schema }

// Callbacks returns the registry run before every render. Register
// callbacks before running the application.
func (a *Application) Callbacks() *output.Registry { return a.callbacks }

// History returns the session history.
func (a *Application) History() *history.Store { return a.history }

// Dispatcher returns the dispatcher shared by both execution modes.
func (a *Application) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Orchestrator returns the output orchestrator.
func (a *Application) Orchestrator() *output.Orchestrator { return a.orchestrator }

// Preferences returns the current settings preferences.
func (a *Application) Preferences() settings.Preferences {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.prefs
}

// ApplySettings swaps in a new settings snapshot. A running REPL picks up
// the new prompt immediately.
func (a *Application) ApplySettings(values map[string]any) error {
	prefs, err := settings.Decode(values)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.prefs = prefs
	loop := a.loop
	a.mu.Unlock()

	if loop != nil {
		if err := loop.SetPrompt(prefs.Prompt); err != nil {
			return err
		}
	}
	logging.Info("Settings", "settings reloaded")
	return nil
}

// applyPreferences adds the configured style to contexts that do not choose
// one themselves.
func (a *Application) applyPreferences(c *output.Context) *output.Context {
	prefs := a.Preferences()
	if prefs.NoColor && c.MetaString(output.MetaStyle) == "" {
		c = c.WithMeta(output.MetaNoColor, true)
	}
	if prefs.Style != "" && c.MetaString(output.MetaStyle) == "" {
		if _, ok := output.ParseStyle(prefs.Style); ok {
			c = c.WithMeta(output.MetaStyle, prefs.Style)
		} else {
			logging.Warn("Settings", "ignoring unknown style %q", prefs.Style)
		}
	}
	return c
}

func (a *Application) width() int {
	if w := a.Preferences().Width; w > 0 {
		return w
	}
	f, ok := a.stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Execute dispatches argv and returns the rendered text with the outcome.
func (a *Application) Execute(ctx context.Context, argv []string) (string, dispatch.Outcome) {
	outcome := a.dispatcher.DispatchArgs(ctx, argv)
	return a.orchestrator.Render(outcome.Context), outcome
}

// RunOnce dispatches argv and prints the result. Handled failures are
// printed, not returned. Without arguments the banner precedes the usage.
func (a *Application) RunOnce(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		a.banner()
	}

	var s *spinner.Spinner
	if a.config.Spinner {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Running " + strings.Join(argv, " ")
		s.Start()
	}

	text, _ := a.Execute(ctx, argv)

	if s != nil {
		s.Stop()
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(a.stdout, text)
	return err
}

func (a *Application) banner() {
	if banner := a.schema.Meta.Banner(); banner != "" {
		fmt.Fprintln(a.stdout, banner)
	}
	if about := a.schema.Meta.About; about != "" {
		fmt.Fprintln(a.stdout, about)
	}
}

// RunREPL runs the interactive loop until the user leaves it. When
// settings come from a file they are reloaded on change meanwhile.
func (a *Application) RunREPL(ctx context.Context) error {
	loop, err := repl.New(repl.Config{
		Dispatcher:   a.dispatcher,
		Orchestrator: a.orchestrator,
		History:      a.history,
		Reader:       a.config.Reader,
		Output:       a.stdout,
		Prompt:       a.Preferences().Prompt,
		HistoryFile:  a.config.HistoryFile,
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.loop = loop
	a.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatching := context.WithCancel(gctx)

	g.Go(func() error {
		defer stopWatching()
		return loop.Run(gctx)
	})

	if store, ok := a.settings.(*settings.FileStore); ok {
		watcher := settings.NewWatcher(store, func(values map[string]any) {
			if err := a.ApplySettings(values); err != nil {
				logging.Warn("Settings", "ignoring invalid settings: %v", err)
			}
		})
		g.Go(func() error {
			if err := watcher.Run(watchCtx); err != nil {
				logging.Warn("Settings", "settings will not be reloaded: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Close stops the history actor.
func (a *Application) Close() {
	a.history.Close()
}
