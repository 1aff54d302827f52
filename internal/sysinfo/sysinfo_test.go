package sysinfo

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/replkit/internal/command"
	"github.com/giantswarm/replkit/internal/dispatch"
	"github.com/giantswarm/replkit/internal/output"
)

func dispatcher(environ ...string) *dispatch.Dispatcher {
	c := NewWithEnviron(func() []string { return environ })
	return dispatch.New(command.Setup(c))
}

func TestCommands(t *testing.T) {
	s := command.Setup(New())

	assert.Equal(t, []string{"sys", "sys.info", "sys.env", "sys.echo", "sys.fail"}, s.Names())
	assert.Equal(t, []string{"sys", "sys.info", "sys.env", "sys.echo"}, s.VisibleNames())
	assert.Equal(t, "Inspect the running process.", s.Meta.About)
}

func TestInfo(t *testing.T) {
	out := dispatcher().DispatchArgs(context.Background(), []string{"sys.info"})

	require.Equal(t, dispatch.Dispatched, out.Kind)
	require.Len(t, out.Context.Output, 1)
	table := out.Context.Output[0].Table
	require.NotNil(t, table)
	assert.Equal(t, []string{"key", "value"}, table.Headers)
	assert.Equal(t, []string{"os", runtime.GOOS}, table.Rows[0])
}

func TestEnv(t *testing.T) {
	d := dispatcher("HOME=/home/ada", "GOPATH=/go", "GOFLAGS=-mod=mod", "EMPTY=")
	ctx := context.Background()

	out := d.DispatchArgs(ctx, []string{"sys.env", "--prefix", "GO"})
	assert.Equal(t, "  - GOFLAGS=-mod=mod\n  - GOPATH=/go", output.Plain(out.Context))

	out = d.DispatchArgs(ctx, []string{"sys", "env", "-n"})
	assert.Equal(t, "  - EMPTY\n  - GOFLAGS\n  - GOPATH\n  - HOME", output.Plain(out.Context))

	out = d.DispatchArgs(ctx, []string{"sys.env", "-p", "NOPE"})
	assert.Equal(t, "warning: no matching environment variables", output.Plain(out.Context))
	assert.Equal(t, output.StatusWarning, out.Context.Status)
}

func TestEnv_TruncatesLongValues(t *testing.T) {
	d := dispatcher("LONG=" + strings.Repeat("x", 200))

	out := d.DispatchArgs(context.Background(), []string{"sys.env"})

	line := output.Plain(out.Context)
	assert.True(t, strings.HasSuffix(line, "..."))
	assert.LessOrEqual(t, len(strings.TrimPrefix(line, "  - ")), 60)
}

func TestEcho(t *testing.T) {
	d := dispatcher()

	out := d.DispatchLine(context.Background(), `sys.echo "a  b" c`)
	assert.Equal(t, "a  b c", output.Plain(out.Context))

	out = d.DispatchArgs(context.Background(), []string{"sys.echo"})
	assert.Equal(t, dispatch.Help, out.Kind)
	assert.Contains(t, output.Plain(out.Context), "sys.echo <words>...")
}

func TestFail(t *testing.T) {
	out := dispatcher().DispatchArgs(context.Background(), []string{"sys.fail"})

	assert.Equal(t, dispatch.Failed, out.Kind)
	assert.Equal(t, "error: sys.fail was asked to fail", output.Plain(out.Context))
}
