package repl

import (
	"slices"
	"strings"

	"github.com/chzyer/readline"
)

// Complete returns the names matching prefix, sorted. An empty prefix
// matches every name; a prefix ending in "." matches only the names
// directly inside that namespace.
func Complete(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasSuffix(prefix, ".") && strings.Contains(name[len(prefix):], ".") {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Completer adapts Complete to readline. It completes the first word of a
// line and the command name after "help" or "?".
type Completer struct {
	// Names returns the current candidate names.
	Names func() []string
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	typed := strings.TrimLeft(string(line[:pos]), " ")

	prefix := typed
	if word, rest, found := strings.Cut(typed, " "); found {
		if word != "help" && word != "?" {
			return nil, 0
		}
		prefix = strings.TrimLeft(rest, " ")
		if strings.Contains(prefix, " ") {
			return nil, 0
		}
	}

	names := c.Names()
	var candidates [][]rune
	for _, name := range Complete(names, prefix) {
		suffix := name[len(prefix):]
		// Namespaces get no trailing space so that "." can follow.
		if !isNamespace(names, name) {
			suffix += " "
		}
		candidates = append(candidates, []rune(suffix))
	}
	return candidates, len([]rune(prefix))
}

func isNamespace(names []string, name string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, name+".") {
			return true
		}
	}
	return false
}

// filterInput blocks Ctrl+Z, which would suspend the process mid-line.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
