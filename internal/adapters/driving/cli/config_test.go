package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driven/config/file"
)

func setupTestConfigStore(t *testing.T) func() {
	t.Helper()
	cleanup := setupTestServices(&stubAnalysis{})

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store
	return cleanup
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
}

func TestConfigShowCmd_PrintsSettings(t *testing.T) {
	cleanup := setupTestConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "server_url:      http://localhost:5000")
	assert.Contains(t, out, "page_size:       10")
}

func TestConfigSetCmd_UpdatesSetting(t *testing.T) {
	cleanup := setupTestConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "server_url", "http://analysis.internal:8080"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "http://analysis.internal:8080", configStore.Settings().ServerURL)
}

func TestConfigSetCmd_RejectsUnknownKey(t *testing.T) {
	cleanup := setupTestConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "nonsense", "1"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestConfigSetCmd_RejectsInvalidNumber(t *testing.T) {
	cleanup := setupTestConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "page_size", "zero"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")
}
