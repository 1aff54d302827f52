package output

import (
	"os"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
)

func TestMain(m *testing.M) {
	// go-pretty reads NO_COLOR at init; rich assertions need escapes.
	text.EnableColors()
	os.Exit(m.Run())
}
