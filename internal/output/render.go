package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Renderer turns a Context into display text.
type Renderer func(*Context) string

// Rich renders c with colors and rounded tables.
func Rich(c *Context) string {
	if c == nil {
		return ""
	}
	var lines []string
	for _, item := range c.Output {
		switch item.Kind {
		case KindSuccess:
			lines = append(lines, text.FgGreen.Sprint("✔ ")+item.Text)
		case KindError:
			lines = append(lines, errorLineRich(item.Text))
		case KindWarning:
			lines = append(lines, text.FgYellow.Sprint("warning:")+" "+item.Text)
		case KindInfo:
			lines = append(lines, text.FgCyan.Sprint(item.Text))
		case KindTable:
			lines = append(lines, richTable(item.Table))
		case KindList:
			for _, entry := range item.List {
				lines = append(lines, text.FgHiBlack.Sprint("  • ")+entry)
			}
		default:
			lines = append(lines, item.Text)
		}
	}
	for _, e := range c.Errors {
		lines = append(lines, errorLineRich(e))
	}
	return strings.Join(lines, "\n")
}

func errorLineRich(msg string) string {
	return text.Colors{text.Bold, text.FgRed}.Sprint("error:") + " " + errorMessage(msg)
}

// errorMessage folds msg onto one line.
func errorMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}

func richTable(t *Table) string {
	if t == nil {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Color.Header = text.Colors{text.FgHiCyan}

	header := make(table.Row, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

// Plain renders c without any escape sequences.
func Plain(c *Context) string {
	if c == nil {
		return ""
	}
	var lines []string
	for _, item := range c.Output {
		switch item.Kind {
		case KindError:
			lines = append(lines, "error: "+errorMessage(item.Text))
		case KindWarning:
			lines = append(lines, "warning: "+item.Text)
		case KindTable:
			lines = append(lines, plainTable(item.Table))
		case KindList:
			for _, entry := range item.List {
				lines = append(lines, "  - "+entry)
			}
		default:
			lines = append(lines, item.Text)
		}
	}
	for _, e := range c.Errors {
		lines = append(lines, "error: "+errorMessage(e))
	}
	return strings.Join(lines, "\n")
}

func plainTable(t *Table) string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	tw := NewPlainTableWriter(&sb)
	tw.SetHeaders(t.Headers)
	for _, row := range t.Rows {
		tw.AppendRow(row)
	}
	tw.Render()
	return strings.TrimRight(sb.String(), "\n")
}

// dumpView is the YAML shape of a Context.
type dumpView struct {
	Command string         `yaml:"command"`
	Args    []string       `yaml:"args"`
	Options map[string]any `yaml:"options"`
	Status  Status         `yaml:"status"`
	Output  []Item         `yaml:"output"`
	Errors  []string       `yaml:"errors"`
	Cargo   map[string]any `yaml:"cargo"`
	Meta    map[string]any `yaml:"meta"`
}

// Dump renders the raw fields of c as YAML. It is meant for debugging and
// tests, not for regular output.
func Dump(c *Context) string {
	if c == nil {
		return "null"
	}
	data, err := yaml.Marshal(dumpView{
		Command: c.Command,
		Args:    c.Args,
		Options: c.Options,
		Status:  c.Status,
		Output:  c.Output,
		Errors:  c.Errors,
		Cargo:   c.Cargo,
		Meta:    c.Meta,
	})
	if err != nil {
		return fmt.Sprintf("error: cannot dump output context: %v", err)
	}
	return strings.TrimRight(string(data), "\n")
}
