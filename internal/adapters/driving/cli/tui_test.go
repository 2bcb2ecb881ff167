package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_HasPathFlags(t *testing.T) {
	require.NotNil(t, tuiCmd.Flags().Lookup("business"))
	require.NotNil(t, tuiCmd.Flags().Lookup("demographics"))
}

func TestTUICmd_FailsWithoutServices(t *testing.T) {
	cleanup := setupTestServices(&stubAnalysis{})
	analysisService = nil
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"tui"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
