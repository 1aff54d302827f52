// Package sysinfo is a demo configurator exposing a few commands about the
// running process under the "sys" namespace.
package sysinfo

import (
	"context"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/output"
	pkgstrings "github.com/giantswarm/replkit/pkg/strings"
)

// Name identifies the configurator.
const Name = "sysinfo"

// Configurator provides the sys.* commands.
type Configurator struct {
	environ  func() []string
	hostname func() (string, error)
}

var _ command.Configurator = (*Configurator)(nil)

// New creates a configurator reading the real process environment.
func New() *Configurator {
	return &Configurator{environ: os.Environ, hostname: os.Hostname}
}

// NewWithEnviron is New with a replaced environment source.
func NewWithEnviron(environ func() []string) *Configurator {
	c := New()
	c.environ = environ
	return c
}

func (c *Configurator) Name() string { return Name }

func (c *Configurator) Metadata() command.Metadata {
	return command.Metadata{About: "Inspect the running process."}
}

func (c *Configurator) Commands() []command.Descriptor {
	return []command.Descriptor{{
		Name:    "sys",
		Summary: "Inspect the running process",
		Subcommands: []command.Descriptor{
			{
				Name:    "info",
				Summary: "Show runtime information",
				Handler: command.ContextFunc(c.info),
			},
			{
				Name:        "env",
				Summary:     "List environment variables",
				Description: "List environment variables sorted by name. Values are shortened to fit one line.",
				Options:     []command.Option{{Name: "prefix", Short: "p", Help: "only show variables starting with this prefix"}},
				Flags:       []command.Flag{{Name: "names", Short: "n", Help: "show names only"}},
				Handler:     command.ContextFunc(c.env),
			},
			{
				Name:            "echo",
				Summary:         "Print the arguments",
				Args:            []command.Arg{{Name: "words", Required: true, Variadic: true, Help: "words to print"}},
				ShowHelpOnEmpty: true,
				Handler:         command.TextFunc(echo),
			},
			{
				Name:    "fail",
				Summary: "Raise a fault inside a handler",
				Hidden:  true,
				Handler: command.ContextFunc(fail),
			},
		},
	}}
}

func (c *Configurator) info(_ context.Context, inv command.Invocation) (*output.Context, error) {
	host, err := c.hostname()
	if err != nil {
		host = "unknown"
	}
	rows := [][]string{
		{"os", runtime.GOOS},
		{"arch", runtime.GOARCH},
		{"go", runtime.Version()},
		{"cpus", strconv.Itoa(runtime.NumCPU())},
		{"goroutines", strconv.Itoa(runtime.NumGoroutine())},
		{"hostname", host},
		{"pid", strconv.Itoa(os.Getpid())},
	}
	return inv.Output.Table([]string{"key", "value"}, rows), nil
}

func (c *Configurator) env(_ context.Context, inv command.Invocation) (*output.Context, error) {
	prefix := inv.Option("prefix")
	var entries []string
	for _, kv := range c.environ() {
		name, value, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if inv.Flag("names") {
			entries = append(entries, name)
			continue
		}
		entries = append(entries, pkgstrings.Truncate(name+"="+value, pkgstrings.DefaultSummaryWidth))
	}
	if len(entries) == 0 {
		return inv.Output.Warning("no matching environment variables"), nil
	}
	slices.Sort(entries)
	return inv.Output.List(entries), nil
}

func echo(_ context.Context, inv command.Invocation) (string, error) {
	return strings.Join(inv.Args, " "), nil
}

func fail(context.Context, command.Invocation) (*output.Context, error) {
	panic("sys.fail was asked to fail")
}
