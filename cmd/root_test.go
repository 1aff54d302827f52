package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/replkit/pkg/logging"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("REPLKIT_TEST_MODE", "1")
	t.Cleanup(logging.Discard)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	settingsFile := filepath.Join(t.TempDir(), "settings.yaml")
	rootCmd.SetArgs(append([]string{"--settings", settingsFile}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "replkit [command...]", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)

	for _, name := range []string{"settings", "debug", "quiet"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestSubcommands(t *testing.T) {
	found := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	assert.True(t, found["version"])
	assert.True(t, found["repl"])
	assert.True(t, found["help"])
	assert.False(t, found["completion"])
}

func TestSetVersion(t *testing.T) {
	original := GetVersion()
	defer SetVersion(original)

	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
}

func TestRunOnce_ForwardsCommandAndFlags(t *testing.T) {
	stdout, _, err := run(t, "sys.echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", stdout)

	t.Setenv("REPLKIT_CMD_TEST_MARKER", "yes")
	stdout, _, err = run(t, "sys.env", "--prefix", "REPLKIT_CMD_TEST", "--names")
	require.NoError(t, err)
	assert.Contains(t, stdout, "REPLKIT_CMD_TEST_MARKER")
	assert.NotContains(t, stdout, "yes")
}

func TestRunOnce_HandledFailureExitsCleanly(t *testing.T) {
	stdout, _, err := run(t, "nope")
	require.NoError(t, err)
	assert.Equal(t, "error: unknown command: nope\n", stdout)
}

func TestRunOnce_NoArgsPrintsBannerAndUsage(t *testing.T) {
	original := GetVersion()
	defer SetVersion(original)
	SetVersion("9.9.9")

	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "replkit 9.9.9\n")
	assert.Contains(t, stdout, "Usage:\n")
	assert.Contains(t, stdout, "  sys")
}

func TestHelpCommand_UsesApplicationHelp(t *testing.T) {
	stdout, _, err := run(t, "help", "sys.env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--prefix")
}

func TestRunOnce_BadSettingsIsStartupFailure(t *testing.T) {
	t.Setenv("REPLKIT_TEST_MODE", "1")
	t.Cleanup(logging.Discard)

	path := filepath.Join(t.TempDir(), "settings.ini")
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--settings", path, "sys.info"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestDefaultSettingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "replkit", "settings.yaml"), defaultSettingsPath())
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("settings"))
}
