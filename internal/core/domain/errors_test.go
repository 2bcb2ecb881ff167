package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRoleMismatch(t *testing.T) {
	assert.True(t, IsRoleMismatch("no valid zip column found"))
	assert.True(t, IsRoleMismatch("No valid ZIP column found"))
	assert.True(t, IsRoleMismatch("error: NO VALID ZIP COLUMN FOUND in business file"))

	assert.False(t, IsRoleMismatch(""))
	assert.False(t, IsRoleMismatch("invalid CSV header"))
	assert.False(t, IsRoleMismatch("zip column"))
}

func TestAnalysisError_Error(t *testing.T) {
	single := &AnalysisError{Message: "no valid zip column found"}
	assert.Equal(t, "analysis failed: no valid zip column found", single.Error())

	combined := &AnalysisError{
		Message:      "no valid zip column found",
		RetryMessage: "file is not a CSV",
	}
	assert.Equal(t,
		"analysis failed: no valid zip column found (retry with swapped files: file is not a CSV)",
		combined.Error())

	empty := &AnalysisError{}
	assert.Equal(t, "analysis failed", empty.Error())
}
