package command

import (
	"regexp"
	"strings"
)

// Arg describes a positional argument.
type Arg struct {
	Name     string
	Help     string
	Required bool
	// Variadic args swallow every remaining positional value. Only the last
	// argument may be variadic.
	Variadic bool
}

// Flag describes a boolean switch such as --all.
type Flag struct {
	Name  string
	Short string
	Help  string
}

// Option describes a string-valued switch such as --prefix=GO.
type Option struct {
	Name    string
	Short   string
	Help    string
	Default string
}

// Descriptor declares a single command. A descriptor with Subcommands is a
// namespace: invoking it without a subcommand shows its help.
type Descriptor struct {
	// Name is a single segment ("info") or a dotted path ("sys.info").
	Name        string
	Summary     string
	Description string

	Args    []Arg
	Flags   []Flag
	Options []Option

	Subcommands []Descriptor

	// ShowHelpOnEmpty shows help instead of running the handler when the
	// command is invoked without any argument.
	ShowHelpOnEmpty bool

	// Hidden commands are dispatchable but left out of help listings and
	// completion.
	Hidden bool

	Handler Handler
}

// Metadata describes the application assembled from the configurators.
type Metadata struct {
	Name    string `yaml:"name,omitempty"`
	Version string `yaml:"version,omitempty"`
	Author  string `yaml:"author,omitempty"`
	About   string `yaml:"about,omitempty"`
}

// merge overwrites every field of m that other sets.
func (m Metadata) merge(other Metadata) Metadata {
	if other.Name != "" {
		m.Name = other.Name
	}
	if other.Version != "" {
		m.Version = other.Version
	}
	if other.Author != "" {
		m.Author = other.Author
	}
	if other.About != "" {
		m.About = other.About
	}
	return m
}

// Banner is the "<name> <version>" line shown above top-level help.
func (m Metadata) Banner() string {
	return strings.TrimSpace(m.Name + " " + m.Version)
}

// Configurator contributes commands and metadata to a Schema. Two
// configurators with the same Name are the same configurator.
type Configurator interface {
	Name() string
	Commands() []Descriptor
	Metadata() Metadata
}

// StaticConfigurator is a Configurator backed by plain values.
type StaticConfigurator struct {
	ID   string
	Cmds []Descriptor
	Meta Metadata
}

var _ Configurator = StaticConfigurator{}

func (s StaticConfigurator) Name() string           { return s.ID }
func (s StaticConfigurator) Commands() []Descriptor { return s.Cmds }
func (s StaticConfigurator) Metadata() Metadata     { return s.Meta }

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// SplitName splits a dotted command name into its segments. It returns nil
// for an empty or malformed name.
func SplitName(name string) []string {
	if name == "" {
		return nil
	}
	parts := strings.Split(name, ".")
	for _, p := range parts {
		if !segmentPattern.MatchString(p) {
			return nil
		}
	}
	return parts
}

// ValidName reports whether name is a well-formed dotted command name.
func ValidName(name string) bool {
	return SplitName(name) != nil
}
