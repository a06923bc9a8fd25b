package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, name := range []string{"PONTIFEX_DEFAULT_DECK", "PONTIFEX_RULES", "PONTIFEX_GROUP_SIZE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	colorize.NoColor = true
	return dir
}

// run executes the root command with fresh flag values
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestEncodeDecodeWithFactoryDeck(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "deck", "new", "plain")
	require.NoError(t, err)
	_, err = run(t, "", "deck", "set-default", "plain")
	require.NoError(t, err)

	out, err := run(t, "", "encode", "AAAAA", "AAAAA")
	require.NoError(t, err)
	assert.Equal(t, "EXKYI ZSGEH\n", out)

	out, err = run(t, "EXKYIZSGEH", "decode", "--group", "0")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAA\n", out)

	out, err = run(t, "", "keystream", "5")
	require.NoError(t, err)
	assert.Equal(t, "4 49 10 24 8\n", out)

	out, err = run(t, "", "keystream", "1", "--rules", "legacy")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestShuffledRoundTrip(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "deck", "new", "field", "--shuffle", "--seed", "99", "--per-suit", "7", "--suits", "3")
	require.NoError(t, err)

	enc, err := run(t, "", "encode", "-d", "field", "Meet me at noon!")
	require.NoError(t, err)

	dec, err := run(t, "", "decode", "-d", "field", "--group", "0", strings.TrimSpace(enc))
	require.NoError(t, err)
	assert.Equal(t, "MEETMEATNOON\n", dec)
}

func TestDeckCommands(t *testing.T) {
	setupHome(t)

	out, err := run(t, "", "deck", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")

	_, err = run(t, "", "deck", "init")
	require.NoError(t, err)

	_, err = run(t, "", "deck", "new", "field", "--shuffle", "--seed", "1")
	require.NoError(t, err)
	_, err = run(t, "", "deck", "new", "field")
	assert.Error(t, err)

	_, err = run(t, "", "deck", "set-default", "field")
	require.NoError(t, err)

	out, err = run(t, "", "deck", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "* field (field, 54 cards) [DEFAULT]")

	out, err = run(t, "", "validate", "field")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = run(t, "", "show", "field", "--after", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "After: 3 keystream values")
	assert.Contains(t, out, "RJ")
}

func TestValidateReportsErrors(t *testing.T) {
	dir := setupHome(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[deck]
name = "bad"
cards_per_suit = 1
suits = 1
order = ["AC", "RJ", "RJ"]
`), 0644))

	out, err := run(t, "", "validate", path)
	assert.Error(t, err)
	assert.Contains(t, out, "black joker")
}

func TestMissingDefaultDeck(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "encode", "hello")
	assert.ErrorContains(t, err, "no default deck")
}
