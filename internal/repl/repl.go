package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/chzyer/readline"

	"github.com/giantswarm/replkit/internal/dispatch"
	"github.com/giantswarm/replkit/internal/history"
	"github.com/giantswarm/replkit/internal/output"
	"github.com/giantswarm/replkit/pkg/logging"
)

// State is the loop's current phase.
type State int

const (
	StateRunning State = iota
	StateDispatching
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDispatching:
		return "dispatching"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// MetaCommands are never recorded in history.
var MetaCommands = []string{"history", "help", "redo", "flush", "tab", "exit", "quit", "?"}

// LineReader is the part of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(line string) error
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// Config holds the collaborators of a REPL.
type Config struct {
	Dispatcher   *dispatch.Dispatcher
	Orchestrator *output.Orchestrator
	History      *history.Store
	// Reader defaults to a readline instance on the terminal.
	Reader LineReader
	// Output defaults to stdout.
	Output io.Writer
	// Prompt is a text/template; see ParsePrompt.
	Prompt string
	// HistoryFile persists readline's arrow-key history. Empty keeps it in
	// memory only.
	HistoryFile string
}

// REPL is an interactive loop over a Dispatcher.
type REPL struct {
	dispatcher   *dispatch.Dispatcher
	orchestrator *output.Orchestrator
	history      *history.Store
	reader       LineReader
	out          io.Writer

	mu     sync.RWMutex
	prompt *template.Template
	state  State
}

// New creates a REPL. It fails when the prompt template does not parse or
// readline cannot be initialised.
func New(cfg Config) (*REPL, error) {
	if cfg.Dispatcher == nil || cfg.Orchestrator == nil || cfg.History == nil {
		return nil, errors.New("repl: dispatcher, orchestrator and history are required")
	}
	tmpl, err := ParsePrompt(cfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}

	r := &REPL{
		dispatcher:   cfg.Dispatcher,
		orchestrator: cfg.Orchestrator,
		history:      cfg.History,
		reader:       cfg.Reader,
		out:          cfg.Output,
		prompt:       tmpl,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.reader == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:              r.Prompt(),
			HistoryFile:         cfg.HistoryFile,
			AutoComplete:        &Completer{Names: r.completionNames},
			InterruptPrompt:     "^C",
			EOFPrompt:           "exit",
			HistorySearchFold:   true,
			FuncFilterInputRune: filterInput,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create readline instance: %w", err)
		}
		r.reader = rl
	}
	return r, nil
}

// State returns the loop's current phase.
func (r *REPL) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *REPL) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// SetPrompt replaces the prompt template.
func (r *REPL) SetPrompt(text string) error {
	tmpl, err := ParsePrompt(text)
	if err != nil {
		return fmt.Errorf("invalid prompt template: %w", err)
	}
	r.mu.Lock()
	r.prompt = tmpl
	r.mu.Unlock()
	return nil
}

// Prompt renders the current prompt.
func (r *REPL) Prompt() string {
	r.mu.RLock()
	tmpl := r.prompt
	r.mu.RUnlock()

	meta := r.dispatcher.Schema().Meta
	s, err := renderPrompt(tmpl, PromptData{App: meta.Name, Version: meta.Version, Count: r.history.Len()})
	if err != nil {
		logging.Warn("REPL", "failed to render prompt: %v", err)
		return "> "
	}
	return s
}

func (r *REPL) completionNames() []string {
	return r.dispatcher.Schema().VisibleNames()
}

// Run reads and handles lines until exit, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	defer r.reader.Close()
	defer r.setState(StateStopped)

	r.banner()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		r.reader.SetPrompt(r.Prompt())
		line, err := r.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		if !r.Step(ctx, line) {
			return nil
		}
	}
}

func (r *REPL) banner() {
	meta := r.dispatcher.Schema().Meta
	if banner := meta.Banner(); banner != "" {
		fmt.Fprintln(r.out, banner)
	}
	if meta.About != "" {
		fmt.Fprintln(r.out, meta.About)
	}
	fmt.Fprintln(r.out, "Type 'help' for available commands. Use TAB for completion.")
}

// Step handles one input line and reports whether the loop should go on.
func (r *REPL) Step(ctx context.Context, raw string) bool {
	if strings.HasSuffix(raw, "\t") {
		fields := strings.Fields(raw)
		prefix := ""
		if len(fields) > 0 {
			prefix = fields[len(fields)-1]
		}
		r.printCompletions(prefix)
		return true
	}

	line := strings.TrimSpace(raw)
	if line == "" {
		return true
	}

	words := commandWords(line)
	switch words[0] {
	case "exit", "quit":
		r.setState(StateStopped)
		return false
	case "tab":
		r.printCompletions(strings.Join(words[1:], " "))
		return true
	}

	r.setState(StateDispatching)
	outcome := r.dispatcher.DispatchLine(ctx, line)
	if Recorded(line) {
		r.history.Push(line)
		if err := r.reader.SaveHistory(line); err != nil {
			logging.Debug("REPL", "failed to save readline history: %v", err)
		}
	}
	r.print(r.orchestrator.Render(outcome.Context))
	r.setState(StateRunning)
	return true
}

func (r *REPL) printCompletions(prefix string) {
	candidates := Complete(r.completionNames(), prefix)
	r.print(r.orchestrator.RenderText(strings.Join(candidates, "\n")))
}

func (r *REPL) print(s string) {
	if s == "" {
		return
	}
	fmt.Fprintln(r.out, s)
}

// Recorded reports whether line belongs in history. The command word is
// taken after shell unquoting, the same way the dispatcher reads it.
func Recorded(line string) bool {
	return !slices.Contains(MetaCommands, commandWords(line)[0])
}

// commandWords splits line as the dispatcher does, falling back to plain
// fields for lines that cannot be split. The result is never empty.
func commandWords(line string) []string {
	words, err := dispatch.Split(line)
	if err != nil {
		words = strings.Fields(line)
	}
	if len(words) == 0 {
		return []string{""}
	}
	return words
}
