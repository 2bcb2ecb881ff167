package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects the logger to a buffer for the duration of a test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	return &buf
}

func TestSetVerbose_Toggles(t *testing.T) {
	capture(t, false)

	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_Verbose(t *testing.T) {
	buf := capture(t, true)

	Debug("analyzing %s", "business.csv")

	assert.Equal(t, "[DEBUG] analyzing business.csv\n", buf.String())
}

func TestDebug_Quiet(t *testing.T) {
	buf := capture(t, false)

	Debug("should not appear")

	assert.Zero(t, buf.Len())
}

func TestLevels_Prefixes(t *testing.T) {
	buf := capture(t, true)

	Info("uploaded %d files", 2)
	Warn("watcher unavailable")
	Section("Analysis")

	assert.Contains(t, buf.String(), "[INFO] uploaded 2 files\n")
	assert.Contains(t, buf.String(), "[WARN] watcher unavailable\n")
	assert.Contains(t, buf.String(), "\n=== Analysis ===\n")
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(true)
		}(i)
	}
	wg.Wait()
}
