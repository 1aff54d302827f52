package command

import (
	"strings"

	"github.com/giantswarm/replkit/pkg/logging"
)

// Entry is one flattened command of a Schema.
type Entry struct {
	// Name is the full dotted name.
	Name       string
	Descriptor Descriptor
	// Namespace entries have at least one child entry.
	Namespace bool
	// Implicit entries exist only because a dotted name implied them.
	Implicit bool
}

// Path returns the segments of the full name.
func (e Entry) Path() []string {
	return strings.Split(e.Name, ".")
}

// Runnable reports whether invoking the entry runs a handler rather than
// showing help.
func (e Entry) Runnable() bool {
	return !e.Namespace && e.Descriptor.Handler != nil
}

// Schema is the merged command tree of every configurator.
type Schema struct {
	// Commands holds the surviving top-level descriptors in registration
	// order.
	Commands []Descriptor
	Meta     Metadata

	entries []Entry
	index   map[string]int
}

// Setup merges the configurators into a single Schema. Later registrations
// win: metadata fields set by a later configurator overwrite earlier ones,
// and of two commands with the same full name only the later survives.
func Setup(configurators ...Configurator) *Schema {
	s := &Schema{index: make(map[string]int)}

	seen := make(map[string]bool)
	var descriptors []Descriptor
	for i, c := range configurators {
		if c == nil {
			logging.Warn("Coordinator", "ignoring nil configurator at position %d", i)
			continue
		}
		name := c.Name()
		if seen[name] {
			logging.Warn("Coordinator", "duplicate configurator %q ignored", name)
			continue
		}
		seen[name] = true

		descriptors = append(descriptors, c.Commands()...)
		s.Meta = s.Meta.merge(c.Metadata())
	}

	s.Commands = dedupe(validTopLevel(descriptors), func(d Descriptor) string { return d.Name })

	var flat []Entry
	for _, d := range s.Commands {
		flat = flatten(flat, "", d)
	}
	flat = dedupe(flat, func(e Entry) string { return e.Name })
	s.build(flat)

	logging.Debug("Coordinator", "schema ready with %d commands from %d configurators", len(s.entries), len(seen))
	return s
}

func validTopLevel(in []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(in))
	for _, d := range in {
		if !ValidName(d.Name) {
			logging.Warn("Coordinator", "dropping command with invalid name %q", d.Name)
			continue
		}
		out = append(out, d)
	}
	return out
}

// dedupe keeps, for every key, only the last element carrying it. Survivors
// keep their own relative order.
func dedupe[T any](in []T, key func(T) string) []T {
	last := make(map[string]int, len(in))
	for i, v := range in {
		last[key(v)] = i
	}
	out := make([]T, 0, len(last))
	for i, v := range in {
		k := key(v)
		if last[k] != i {
			logging.Warn("Coordinator", "duplicate command %q, keeping the later registration", k)
			continue
		}
		out = append(out, v)
	}
	return out
}

func flatten(acc []Entry, parent string, d Descriptor) []Entry {
	name := d.Name
	if parent != "" {
		name = parent + "." + d.Name
	}
	acc = append(acc, Entry{Name: name, Descriptor: d})
	for _, sub := range d.Subcommands {
		if !ValidName(sub.Name) {
			logging.Warn("Coordinator", "dropping subcommand of %q with invalid name %q", name, sub.Name)
			continue
		}
		acc = flatten(acc, name, sub)
	}
	return acc
}

// build indexes the flattened entries, inserting implicit namespaces for
// dotted names whose parents were never declared.
func (s *Schema) build(flat []Entry) {
	for _, e := range flat {
		segments := e.Path()
		for i := 1; i < len(segments); i++ {
			prefix := strings.Join(segments[:i], ".")
			if _, ok := s.index[prefix]; !ok {
				s.add(Entry{Name: prefix, Descriptor: Descriptor{Name: segments[i-1]}, Implicit: true})
			}
		}
		if pos, ok := s.index[e.Name]; ok {
			// An explicit declaration replaces the implicit placeholder.
			s.entries[pos] = e
			continue
		}
		s.add(e)
	}
	for _, e := range s.entries {
		if idx := strings.LastIndex(e.Name, "."); idx > 0 {
			s.entries[s.index[e.Name[:idx]]].Namespace = true
		}
	}
}

func (s *Schema) add(e Entry) {
	s.index[e.Name] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Lookup resolves a dotted name. An exact match wins; otherwise name may be
// the trailing segments of exactly one full name ("info" for "sys.info").
func (s *Schema) Lookup(name string) (Entry, bool) {
	if s == nil || name == "" {
		return Entry{}, false
	}
	if pos, ok := s.index[name]; ok {
		return s.entries[pos], true
	}
	var (
		match Entry
		found int
	)
	for _, e := range s.entries {
		if strings.HasSuffix(e.Name, "."+name) {
			match = e
			found++
		}
	}
	if found != 1 {
		return Entry{}, false
	}
	return match, true
}

// Entries returns every flattened entry in registration order.
func (s *Schema) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// Names returns the full name of every entry in registration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// VisibleNames is Names without hidden commands and their children.
func (s *Schema) VisibleNames() []string {
	if s == nil {
		return nil
	}
	var names []string
	for _, e := range s.entries {
		if !s.hidden(e.Name) {
			names = append(names, e.Name)
		}
	}
	return names
}

// Children returns the entries directly below name. An empty name returns
// the top-level entries.
func (s *Schema) Children(name string) []Entry {
	if s == nil {
		return nil
	}
	var out []Entry
	for _, e := range s.entries {
		parent := ""
		if idx := strings.LastIndex(e.Name, "."); idx > 0 {
			parent = e.Name[:idx]
		}
		if parent == name {
			out = append(out, e)
		}
	}
	return out
}

func (s *Schema) hidden(name string) bool {
	segments := strings.Split(name, ".")
	for i := 1; i <= len(segments); i++ {
		if pos, ok := s.index[strings.Join(segments[:i], ".")]; ok && s.entries[pos].Descriptor.Hidden {
			return true
		}
	}
	return false
}

// Hidden reports whether name or one of its parents is hidden.
func (s *Schema) Hidden(name string) bool {
	if s == nil {
		return false
	}
	return s.hidden(name)
}
