package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tablediff", cmd.Use)
	assert.Contains(t, cmd.Long, "tablediff.yaml")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, cmdName := range []string{"compare", "test"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestCompareCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	compareCmd, _, err := cmd.Find([]string{"compare"})
	require.NoError(t, err)

	styleFlag := compareCmd.Flags().Lookup("style")
	require.NotNil(t, styleFlag)
	assert.Equal(t, "aligned", styleFlag.DefValue)

	for _, name := range []string{"locale", "sheet", "query", "table"} {
		f := compareCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestRootCommandInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "test", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeInput(t, dir, "tablediff.yaml", "style: raw\n")
	expected := writeInput(t, dir, "expected.yaml", expectedYAML)
	actual := writeInput(t, dir, "actual.yaml", "- {name: apple, qty: 3}\n- {name: pear, qty: 1}\n- {name: plum, qty: 7}\n")

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "compare", expected, actual})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "+ | plum | 7 |")
	assert.Contains(t, out.String(), "tables differ: 0 missing, 1 extra")
}

func TestRootCommandVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	expected := writeInput(t, dir, "expected.yaml", expectedYAML)
	actual := writeInput(t, dir, "actual.yaml", "- {name: apple, qty: 3}\n- {name: pear, qty: 1}\n")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"-v", "--format", "json", "compare", expected, actual})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "tables compared")
	assert.Contains(t, errOut.String(), "matched=2")
	assert.Contains(t, errOut.String(), "trace_id=")
	assert.NotContains(t, out.String(), "tables compared")
	assert.Contains(t, out.String(), `"status": "ok"`)
}
