package parser

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/giantswarm/replkit/internal/command"
	pkgstrings "github.com/giantswarm/replkit/pkg/strings"
)

// HelpFooter closes the top-level help.
const HelpFooter = `Use "help <command>" for more information about a command.`

// RenderHelp returns the help lines for target, a full command name, or for
// the top level when target is empty. Prose is wrapped at width columns
// when width is positive.
func (p *Parser) RenderHelp(target string, width int) []string {
	if target == "" {
		return p.topLevelHelp(width)
	}
	entry, ok := p.schema.Lookup(target)
	if !ok {
		return []string{fmt.Sprintf("unknown command: %s", target)}
	}
	node, _ := locate(p.Tree(), entry.Path())
	return p.commandHelp(entry, node, width)
}

func (p *Parser) topLevelHelp(width int) []string {
	var lines []string
	if banner := p.schema.Meta.Banner(); banner != "" {
		lines = append(lines, banner)
	}
	if about := p.schema.Meta.About; about != "" {
		lines = append(lines, wrap(about, width)...)
	}
	lines = append(lines, "", "Usage:", fmt.Sprintf("  %s <command> [arguments]", p.appName()))
	if listing := p.listing(""); len(listing) > 0 {
		lines = append(lines, "", "Commands:")
		lines = append(lines, listing...)
	}
	return append(lines, "", HelpFooter)
}

func (p *Parser) commandHelp(entry command.Entry, node *cobra.Command, width int) []string {
	d := entry.Descriptor
	var lines []string
	switch {
	case d.Description != "":
		lines = append(lines, wrap(d.Description, width)...)
	case d.Summary != "":
		lines = append(lines, wrap(d.Summary, width)...)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines, "Usage:", "  "+usageLine(entry))

	if len(d.Args) > 0 {
		lines = append(lines, "", "Arguments:")
		pad := 0
		for _, a := range d.Args {
			pad = max(pad, len(a.Name))
		}
		for _, a := range d.Args {
			lines = append(lines, strings.TrimRight("  "+text.Pad(a.Name, pad+3, ' ')+a.Help, " "))
		}
	}

	if node != nil && node.HasAvailableLocalFlags() {
		lines = append(lines, "", "Options:")
		usages := strings.TrimRight(node.LocalFlags().FlagUsagesWrapped(width), "\n")
		lines = append(lines, strings.Split(usages, "\n")...)
	}

	if entry.Namespace {
		if listing := p.listing(entry.Name); len(listing) > 0 {
			lines = append(lines, "", "Commands:")
			lines = append(lines, listing...)
		}
	}
	return lines
}

// listing renders the visible children of parent as aligned name/summary
// rows.
func (p *Parser) listing(parent string) []string {
	var visible []command.Entry
	pad := 0
	for _, e := range p.schema.Children(parent) {
		if e.Descriptor.Hidden {
			continue
		}
		visible = append(visible, e)
		pad = max(pad, len(e.Name))
	}
	lines := make([]string, 0, len(visible))
	for _, e := range visible {
		summary := pkgstrings.Truncate(pkgstrings.FirstLine(e.Descriptor.Summary), pkgstrings.DefaultSummaryWidth)
		lines = append(lines, strings.TrimRight("  "+text.Pad(e.Name, pad+3, ' ')+summary, " "))
	}
	return lines
}

func usageLine(entry command.Entry) string {
	d := entry.Descriptor
	parts := []string{entry.Name}
	if entry.Namespace {
		parts = append(parts, "<command>")
	}
	if len(d.Flags) > 0 || len(d.Options) > 0 {
		parts = append(parts, "[options]")
	}
	for _, a := range d.Args {
		var s string
		if a.Required {
			s = "<" + a.Name + ">"
		} else {
			s = "[" + a.Name + "]"
		}
		if a.Variadic {
			s += "..."
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func wrap(s string, width int) []string {
	if width > 0 {
		s = text.WrapSoft(s, width)
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
