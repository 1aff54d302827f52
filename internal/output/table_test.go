package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTableWriter_SetHeaders(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)

	tw.SetHeaders([]string{"name", "Description", "STATUS"})

	assert.Equal(t, []string{"NAME", "DESCRIPTION", "STATUS"}, tw.headers)
	assert.Equal(t, []int{4, 11, 6}, tw.columnWidths)
}

func TestPlainTableWriter_AppendRow(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"COL1", "COL2"})

	tw.AppendRow([]string{"longer-name", "v"})
	tw.AppendRow([]string{"only"})
	tw.AppendRow([]string{"a", "b", "dropped"})

	assert.Equal(t, 11, tw.columnWidths[0])
	assert.Equal(t, []string{"only", ""}, tw.rows[1])
	assert.Equal(t, []string{"a", "b"}, tw.rows[2])
}

func TestPlainTableWriter_Render(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"index", "command"})
	tw.AppendRow([]string{"0", "echo hi"})
	tw.AppendRow([]string{"10", "ls"})

	tw.Render()

	expected := "INDEX   COMMAND\n" +
		"0       echo hi\n" +
		"10      ls\n"
	assert.Equal(t, expected, buf.String())
}

func TestPlainTableWriter_RenderWideRunes(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"k", "v"})
	tw.AppendRow([]string{"日本", "x"})
	tw.AppendRow([]string{"a", "y"})

	tw.Render()

	expected := "K      V\n" +
		"日本   x\n" +
		"a      y\n"
	assert.Equal(t, expected, buf.String())
}

func TestPlainTableWriter_NoHeadersNoRows(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"A"})
	tw.SetNoHeaders(true)

	tw.Render()

	assert.Empty(t, buf.String())
}
