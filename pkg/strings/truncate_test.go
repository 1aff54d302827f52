package strings

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			width:    10,
			expected: "hello",
		},
		{
			name:     "exact width unchanged",
			input:    "hello",
			width:    5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world this is a long string",
			width:    15,
			expected: "hello world ...",
		},
		{
			name:     "newlines replaced with spaces",
			input:    "hello\nworld",
			width:    20,
			expected: "hello world",
		},
		{
			name:     "tabs and runs collapsed",
			input:    "hello\t\t   world",
			width:    20,
			expected: "hello world",
		},
		{
			name:     "width clamped to minimum",
			input:    "abcdefgh",
			width:    1,
			expected: "a...",
		},
		{
			name:     "wide runes count double",
			input:    "日本語テキスト",
			width:    7,
			expected: "日本...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"single":              "single",
		"\n\n  second  \nrest": "second",
		"   \n\t\n":           "",
	}
	for in, want := range tests {
		if got := FirstLine(in); got != want {
			t.Errorf("FirstLine(%q) = %q, want %q", in, got, want)
		}
	}
}
