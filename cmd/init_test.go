package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// chdirTemp runs the test inside a fresh temporary directory.
func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func executeInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init", "--" + logFileFlagName, filepath.Join(t.TempDir(), "shroud.log")}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestInitCmd_WritesShroudSettings(t *testing.T) {
	tempDir := chdirTemp(t)

	output, err := executeInit(t)
	require.NoError(t, err)
	assert.Contains(t, output, "wrote "+configFileName)

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)

	var written struct {
		Version    int      `yaml:"version"`
		Complexity int      `yaml:"complexity"`
		Lang       string   `yaml:"lang"`
		Symbols    []string `yaml:"symbols"`
		Rename     struct {
			Parameters      *bool    `yaml:"parameters"`
			Underscore      string   `yaml:"underscore"`
			ProtectPrefixes []string `yaml:"protect_prefixes"`
		} `yaml:"rename"`
		Batch struct {
			Parallel int    `yaml:"parallel"`
			OutDir   string `yaml:"out_dir"`
		} `yaml:"batch"`
	}
	require.NoError(t, yaml.Unmarshal(contents, &written))

	assert.Equal(t, currentConfigVersion, written.Version)
	assert.Equal(t, 3, written.Complexity)
	assert.Equal(t, "auto", written.Lang)
	require.NotNil(t, written.Rename.Parameters)
	assert.True(t, *written.Rename.Parameters)
	assert.Equal(t, "sentinel", written.Rename.Underscore)
	assert.Equal(t, defaultBatchParallel, written.Batch.Parallel)
	assert.Equal(t, defaultBatchOutDir, written.Batch.OutDir)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &raw))
	assert.Contains(t, raw, "symbols")
	assert.Contains(t, raw["rename"], "protect_prefixes")
	assert.Contains(t, string(contents), "complexity: 3\n")
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := chdirTemp(t)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("complexity: 5\n"), 0o644))

	_, err := executeInit(t)
	require.Error(t, err)

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "complexity: 5\n", string(contents))
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tempDir := chdirTemp(t)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("stale: true\n"), 0o644))

	_, err := executeInit(t, "--"+forceFlagName)
	require.NoError(t, err)

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "stale")
	assert.Contains(t, string(contents), "underscore: sentinel")
}
