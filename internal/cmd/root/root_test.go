package root

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "render", "strip", "tokens", "apply", "preview", "languages", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_PersistentFlags(t *testing.T) {
	cmd := NewCmdRoot()

	for _, name := range []string{"config", "output", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestNewCmdRoot_Render(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("languages:\n  - iso: de\n  - iso: en\n"), 0600))
	input := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(input, []byte("<p>{mlang de}Hallo{mlang}</p>"), 0600))

	cmd := NewCmdRoot()
	cmd.SetArgs([]string{"render", input, "--config", configPath, "-o", "json"})

	require.NoError(t, cmd.Execute())
}

func TestNewCmdRoot_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCmdRoot()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "mlang version dev (commit: unknown, built: unknown)\n", out.String())
}
