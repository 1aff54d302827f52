package repl

import (
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
)

var names = []string{"sys.info", "history", "sys", "sys.env", "sys.net.ping", "sys.net", "flush"}

func TestComplete(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"flush", "history", "sys", "sys.env", "sys.info", "sys.net", "sys.net.ping"}},
		{"sys.", []string{"sys.env", "sys.info", "sys.net"}},
		{"sys.net.", []string{"sys.net.ping"}},
		{"sys.i", []string{"sys.info"}},
		{"sy", []string{"sys", "sys.env", "sys.info", "sys.net", "sys.net.ping"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, Complete(names, tt.prefix))
		})
	}
}

func TestComplete_Deduplicates(t *testing.T) {
	assert.Equal(t, []string{"a"}, Complete([]string{"a", "a"}, ""))
}

func suffixes(candidates [][]rune) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = string(c)
	}
	return out
}

func TestCompleter_Do(t *testing.T) {
	c := &Completer{Names: func() []string { return names }}

	tests := []struct {
		line   string
		want   []string
		length int
	}{
		{"sys.e", []string{"nv "}, 5},
		{"sys.", []string{"env ", "info ", "net"}, 4},
		{"hi", []string{"story "}, 2},
		{"  fl", []string{"ush "}, 2},
		{"help sys.i", []string{"nfo "}, 5},
		{"? fl", []string{"ush "}, 2},
		{"sys.info arg", nil, 0},
		{"help sys.info extra", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			line := []rune(tt.line)
			got, length := c.Do(line, len(line))
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, suffixes(got))
			}
			assert.Equal(t, tt.length, length)
		})
	}
}

func TestFilterInput(t *testing.T) {
	_, ok := filterInput(readline.CharCtrlZ)
	assert.False(t, ok)

	r, ok := filterInput('a')
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
}
