package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/replkit/internal/command"
)

func testSchema() *command.Schema {
	return command.Setup(command.StaticConfigurator{
		ID:   "test",
		Meta: command.Metadata{Name: "demo", Version: "1.2.3", About: "A demo application."},
		Cmds: []command.Descriptor{
			{Name: "redo", Summary: "Re-run a command", Args: []command.Arg{{Name: "index", Required: true}}, Handler: command.Static("")},
			{Name: "sys", Summary: "System commands", Subcommands: []command.Descriptor{
				{Name: "info", Summary: "Show system information", Handler: command.Static("info")},
				{
					Name:    "env",
					Summary: "List environment variables",
					Flags:   []command.Flag{{Name: "all", Short: "a", Help: "include empty values"}},
					Options: []command.Option{{Name: "prefix", Short: "p", Help: "only names with this prefix", Default: ""}},
					Args:    []command.Arg{{Name: "names", Variadic: true}},
					Handler: command.Static("env"),
				},
				{Name: "fail", Hidden: true, Handler: command.Static("")},
			}},
			{Name: "greet", Summary: "Say hello", ShowHelpOnEmpty: true, Args: []command.Arg{{Name: "who", Required: true}}, Handler: command.Static("hi")},
		},
	})
}

func TestParse_Empty(t *testing.T) {
	res := New(testSchema()).Parse(nil)

	assert.Equal(t, KindParsed, res.Kind)
	assert.Empty(t, res.Command)
	assert.Empty(t, res.Unknown)
}

func TestParse_Version(t *testing.T) {
	res := New(testSchema()).Parse([]string{"--version"})

	assert.Equal(t, KindImmediate, res.Kind)
	assert.Equal(t, "demo version 1.2.3", res.Text)
}

func TestParse_DottedAndSpacedNamesAgree(t *testing.T) {
	p := New(testSchema())

	dotted := p.Parse([]string{"sys.env", "--all", "-p", "GO", "PATH"})
	spaced := p.Parse([]string{"sys", "env", "--all", "-p", "GO", "PATH"})
	suffix := p.Parse([]string{"env", "--all", "-p", "GO", "PATH"})

	for _, res := range []Result{dotted, spaced, suffix} {
		require.Equal(t, KindParsed, res.Kind)
		assert.Equal(t, "sys.env", res.Command)
		assert.Equal(t, []string{"PATH"}, res.Args)
		assert.Equal(t, map[string]bool{"all": true}, res.Flags)
		assert.Equal(t, map[string]string{"prefix": "GO"}, res.Options)
		assert.NotNil(t, res.Node)
	}
}

func TestParse_FlagStateDoesNotLeak(t *testing.T) {
	p := New(testSchema())

	first := p.Parse([]string{"sys.env", "--all"})
	second := p.Parse([]string{"sys.env"})

	assert.True(t, first.Flags["all"])
	assert.False(t, second.Flags["all"])
}

func TestParse_NoSwitchesKeepsDashValues(t *testing.T) {
	res := New(testSchema()).Parse([]string{"redo", "-1"})

	require.Equal(t, KindParsed, res.Kind)
	assert.Equal(t, []string{"-1"}, res.Args)
}

func TestParse_HelpForms(t *testing.T) {
	p := New(testSchema())

	tests := []struct {
		name   string
		argv   []string
		target string
	}{
		{"help flag", []string{"--help"}, ""},
		{"short help flag", []string{"-h"}, ""},
		{"help word", []string{"help"}, ""},
		{"question mark", []string{"?"}, ""},
		{"help command", []string{"help", "sys.info"}, "sys.info"},
		{"help spaced", []string{"help", "sys", "info"}, "sys.info"},
		{"command help flag", []string{"sys.env", "--help"}, "sys.env"},
		{"namespace alone", []string{"sys"}, "sys"},
		{"namespace help flag", []string{"sys", "-h"}, "sys"},
		{"show help on empty", []string{"greet"}, "greet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.argv)
			assert.Equal(t, KindHelp, res.Kind)
			assert.Equal(t, tt.target, res.HelpTarget)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	p := New(testSchema())

	res := p.Parse([]string{"bogus", "x"})
	assert.Equal(t, KindParsed, res.Kind)
	assert.Equal(t, []string{"bogus", "x"}, res.Unknown)

	res = p.Parse([]string{"sys", "bogus"})
	assert.Equal(t, []string{"bogus"}, res.Unknown)
	assert.Equal(t, "sys", res.Command)

	res = p.Parse([]string{"help", "bogus"})
	assert.Equal(t, []string{"bogus"}, res.Unknown)
}

func TestParse_UnknownBeatsHelpFlag(t *testing.T) {
	p := New(testSchema())

	res := p.Parse([]string{"bogus", "--help"})
	assert.Equal(t, KindParsed, res.Kind)
	assert.Equal(t, []string{"bogus"}, res.Unknown)

	res = p.Parse([]string{"sys", "bogus", "-h"})
	assert.Equal(t, KindParsed, res.Kind)
	assert.Equal(t, "sys", res.Command)
	assert.Equal(t, []string{"bogus"}, res.Unknown)
}

func TestParse_Errors(t *testing.T) {
	p := New(testSchema())

	res := p.Parse([]string{"sys.env", "--bogus"})
	assert.Equal(t, KindError, res.Kind)
	assert.Contains(t, res.Reason, "unknown flag: --bogus")

	res = p.Parse([]string{"redo"})
	assert.Equal(t, KindError, res.Kind)
	assert.Equal(t, "missing required argument: index", res.Reason)

	res = p.Parse([]string{"sys.info", "extra"})
	assert.Equal(t, KindError, res.Kind)
	assert.Equal(t, "unexpected argument: extra", res.Reason)
}

func TestParse_HiddenIsDispatchable(t *testing.T) {
	res := New(testSchema()).Parse([]string{"sys.fail"})

	assert.Equal(t, KindParsed, res.Kind)
	assert.Equal(t, "sys.fail", res.Command)
}

func TestRenderHelp_TopLevel(t *testing.T) {
	lines := New(testSchema()).RenderHelp("", 0)

	assert.Equal(t, "demo 1.2.3", lines[0])
	assert.Equal(t, "A demo application.", lines[1])
	assert.Contains(t, lines, "Usage:")
	assert.Contains(t, lines, "  demo <command> [arguments]")
	assert.Contains(t, lines, "  redo    Re-run a command")
	assert.Contains(t, lines, "  sys     System commands")
	assert.Equal(t, HelpFooter, lines[len(lines)-1])
}

func TestRenderHelp_Command(t *testing.T) {
	lines := New(testSchema()).RenderHelp("sys.env", 0)
	joined := strings.Join(lines, "\n")

	assert.Equal(t, "List environment variables", lines[0])
	assert.Contains(t, lines, "  sys.env [options] [names]...")
	assert.Contains(t, joined, "--all")
	assert.Contains(t, joined, "--prefix")
	assert.Contains(t, joined, "include empty values")
}

func TestRenderHelp_NamespaceHidesHidden(t *testing.T) {
	lines := New(testSchema()).RenderHelp("sys", 0)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, lines, "  sys <command>")
	assert.Contains(t, joined, "sys.info")
	assert.Contains(t, joined, "sys.env")
	assert.NotContains(t, joined, "sys.fail")
}

func TestRenderHelp_Wraps(t *testing.T) {
	s := command.Setup(command.StaticConfigurator{ID: "w", Cmds: []command.Descriptor{
		{Name: "long", Description: "one two three four five six seven eight nine ten"},
	}})

	lines := New(s).RenderHelp("long", 20)

	for _, l := range lines[:2] {
		assert.LessOrEqual(t, len(l), 20)
	}
}

func TestRenderHelp_Unknown(t *testing.T) {
	assert.Equal(t, []string{"unknown command: nope"}, New(testSchema()).RenderHelp("nope", 0))
}
