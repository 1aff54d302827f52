package repl

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultPrompt is used when no prompt template is configured.
const DefaultPrompt = `{{ .App | default "replkit" }} » `

// PromptData is what the prompt template is rendered with.
type PromptData struct {
	App     string
	Version string
	// Count is the number of recorded history entries.
	Count int
}

// ParsePrompt compiles a prompt template. The sprig function library is
// available, for example {{ .App | upper }}.
func ParsePrompt(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultPrompt
	}
	return template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(text)
}

func renderPrompt(tmpl *template.Template, data PromptData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
