package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and returns standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CANDID_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(append(args, "--color", "never"))
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "candid", cmd.Use)
	assert.Contains(t, cmd.Long, "Internet Computer")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"parse", "type", "encode", "decode", "principal", "hash", "meta", "repl"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	color := cmd.PersistentFlags().Lookup("color")
	require.NotNil(t, color)
	assert.Equal(t, "auto", color.DefValue)

	width := cmd.PersistentFlags().Lookup("width")
	require.NotNil(t, width)
	assert.Equal(t, "80", width.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestDecodeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	decode, _, err := cmd.Find([]string{"decode"})
	require.NoError(t, err)

	format := decode.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "", format.DefValue, "defaults to the configured format")

	file := decode.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "f", file.Shorthand)
}

func TestInvalidColorFlag(t *testing.T) {
	t.Setenv("CANDID_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"hash", "a", "--color", "sometimes"})
	assert.ErrorContains(t, cmd.Execute(), "invalid color")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0o600))

	out, err := run(t, "decode", "--config", path, "4449444c00017e01")
	require.NoError(t, err)
	assert.Equal(t, "- true\n", out)
}
