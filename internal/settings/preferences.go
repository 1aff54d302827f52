package settings

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Preferences are the settings keys replkit itself reads. Unknown keys are
// left for command handlers.
type Preferences struct {
	// Style forces an output style: rich, plain or diagnostic.
	Style string `mapstructure:"style" yaml:"style,omitempty"`
	// NoColor disables colored output like the NO_COLOR variable.
	NoColor bool `mapstructure:"no_color" yaml:"no_color,omitempty"`
	// Prompt is a text/template rendered before every REPL line.
	Prompt string `mapstructure:"prompt" yaml:"prompt,omitempty"`
	// Width wraps help text; zero means the terminal width.
	Width int `mapstructure:"width" yaml:"width,omitempty"`
}

// Decode extracts Preferences from a settings map. Values are converted
// weakly, so "80" is accepted for Width.
func Decode(values map[string]any) (Preferences, error) {
	var prefs Preferences
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &prefs,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Preferences{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return Preferences{}, fmt.Errorf("invalid settings: %w", err)
	}
	return prefs, nil
}
