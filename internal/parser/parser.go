package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giantswarm/replkit/internal/command"
)

// Kind classifies a parse result.
type Kind int

const (
	// KindParsed means the input named a command, or nothing at all.
	KindParsed Kind = iota
	// KindImmediate carries text to print verbatim, such as the version.
	KindImmediate
	// KindHelp asks for the help of HelpTarget.
	KindHelp
	// KindError carries a grammar error in Reason.
	KindError
)

// Result is the outcome of parsing one argument vector.
type Result struct {
	Kind Kind
	Text string

	// Command is the full dotted name of the selected command; empty when no
	// command was given.
	Command string
	Args    []string
	Flags   map[string]bool
	Options map[string]string

	// Unknown holds tokens that matched no command.
	Unknown []string
	Reason  string

	// HelpTarget is the full name help was requested for; empty means the
	// top level.
	HelpTarget string

	// Node is the cobra command configured for Command.
	Node *cobra.Command
}

const annotationName = "replkit.name"

// Parser parses argument vectors against a schema.
type Parser struct {
	schema *command.Schema
}

// New creates a Parser for schema.
func New(schema *command.Schema) *Parser {
	return &Parser{schema: schema}
}

// Schema returns the schema the parser was built from.
func (p *Parser) Schema() *command.Schema {
	return p.schema
}

// Tree builds a cobra command tree mirroring the schema. The root carries
// the application name and version.
func (p *Parser) Tree() *cobra.Command {
	root := &cobra.Command{
		Use:           p.appName(),
		Short:         p.schema.Meta.About,
		Version:       p.schema.Meta.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	nodes := map[string]*cobra.Command{"": root}
	for _, e := range p.schema.Entries() {
		parent := nodes[parentName(e.Name)]
		node := newNode(e)
		parent.AddCommand(node)
		nodes[e.Name] = node
	}
	return root
}

func newNode(e command.Entry) *cobra.Command {
	d := e.Descriptor
	segments := e.Path()
	node := &cobra.Command{
		Use:         segments[len(segments)-1],
		Short:       d.Summary,
		Long:        d.Description,
		Hidden:      d.Hidden,
		Annotations: map[string]string{annotationName: e.Name},
	}
	if !e.Namespace {
		node.Run = func(*cobra.Command, []string) {}
	}
	flags := node.Flags()
	for _, f := range d.Flags {
		flags.BoolP(f.Name, f.Short, false, f.Help)
	}
	for _, o := range d.Options {
		flags.StringP(o.Name, o.Short, o.Default, o.Help)
	}
	return node
}

func (p *Parser) appName() string {
	if p.schema.Meta.Name != "" {
		return p.schema.Meta.Name
	}
	return "app"
}

func parentName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return ""
}

// Parse interprets argv.
func (p *Parser) Parse(argv []string) Result {
	if len(argv) == 0 {
		return Result{Kind: KindParsed}
	}

	switch argv[0] {
	case "--version":
		return Result{Kind: KindImmediate, Text: p.versionLine()}
	case "--help", "-h", "help", "?":
		return p.parseHelp(argv[1:])
	}

	root := p.Tree()
	node, rest := locate(root, p.canonical(argv))

	if node == root {
		if words := positional(rest); len(words) > 0 {
			return Result{Kind: KindParsed, Unknown: words}
		}
		if wantsHelp(rest) {
			return Result{Kind: KindHelp}
		}
		return Result{Kind: KindParsed, Unknown: rest}
	}

	entry, _ := p.schema.Lookup(node.Annotations[annotationName])
	if entry.Namespace {
		if words := positional(rest); len(words) > 0 {
			return Result{Kind: KindParsed, Command: entry.Name, Unknown: words}
		}
		if len(rest) == 0 || wantsHelp(rest) {
			return Result{Kind: KindHelp, HelpTarget: entry.Name}
		}
		return Result{Kind: KindParsed, Command: entry.Name, Unknown: rest}
	}
	return p.parseLeaf(entry, node, rest)
}

func (p *Parser) versionLine() string {
	v := p.schema.Meta.Version
	if v == "" {
		v = "unknown"
	}
	return fmt.Sprintf("%s version %s", p.appName(), v)
}

func (p *Parser) parseHelp(target []string) Result {
	if len(target) == 0 {
		return Result{Kind: KindHelp}
	}
	name := strings.Join(target, ".")
	entry, ok := p.schema.Lookup(name)
	if !ok {
		return Result{Kind: KindParsed, Unknown: target}
	}
	return Result{Kind: KindHelp, HelpTarget: entry.Name}
}

// canonical expands a dotted or abbreviated first token into its full path
// segments so that "sys.info" and "sys info" reach the same node.
func (p *Parser) canonical(argv []string) []string {
	entry, ok := p.schema.Lookup(argv[0])
	if !ok {
		return argv
	}
	return append(entry.Path(), argv[1:]...)
}

// locate walks down the tree as long as tokens name subcommands.
func locate(root *cobra.Command, args []string) (*cobra.Command, []string) {
	node := root
	for len(args) > 0 {
		next := child(node, args[0])
		if next == nil {
			break
		}
		node = next
		args = args[1:]
	}
	return node, args
}

func child(node *cobra.Command, name string) *cobra.Command {
	for _, c := range node.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// positional returns the tokens of args that are not switches.
func positional(args []string) []string {
	var words []string
	for _, a := range args {
		if a != "--" && !strings.HasPrefix(a, "-") {
			words = append(words, a)
		}
	}
	return words
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

func (p *Parser) parseLeaf(entry command.Entry, node *cobra.Command, rest []string) Result {
	d := entry.Descriptor
	res := Result{
		Kind:    KindParsed,
		Command: entry.Name,
		Flags:   make(map[string]bool, len(d.Flags)),
		Options: make(map[string]string, len(d.Options)),
		Node:    node,
	}

	if wantsHelp(rest) {
		return Result{Kind: KindHelp, HelpTarget: entry.Name}
	}

	args := rest
	if len(d.Flags) > 0 || len(d.Options) > 0 {
		// Without declared switches every token is positional, which keeps
		// values such as "-1" intact.
		if err := node.ParseFlags(rest); err != nil {
			return Result{Kind: KindError, Command: entry.Name, Reason: err.Error(), Node: node}
		}
		args = node.Flags().Args()
		for _, f := range d.Flags {
			res.Flags[f.Name], _ = node.Flags().GetBool(f.Name)
		}
		for _, o := range d.Options {
			res.Options[o.Name], _ = node.Flags().GetString(o.Name)
		}
	}
	res.Args = slices.Clone(args)

	if len(args) == 0 && d.ShowHelpOnEmpty {
		return Result{Kind: KindHelp, HelpTarget: entry.Name}
	}
	if reason := checkArgs(d.Args, args); reason != "" {
		return Result{Kind: KindError, Command: entry.Name, Reason: reason, Node: node}
	}
	return res
}

func checkArgs(declared []command.Arg, args []string) string {
	variadic := len(declared) > 0 && declared[len(declared)-1].Variadic
	for i, a := range declared {
		if a.Required && i >= len(args) {
			return fmt.Sprintf("missing required argument: %s", a.Name)
		}
	}
	if !variadic && len(args) > len(declared) {
		return fmt.Sprintf("unexpected argument: %s", args[len(declared)])
	}
	return ""
}
