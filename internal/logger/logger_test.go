package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLog_AppendsToMemoryAndDisk checks both destinations get the
// stamped line.
func TestLog_AppendsToMemoryAndDisk(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l := New()
	l.Log("select instance 0/1")
	l.Logf("rotate z %.2f", 1.57)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "select instance 0/1")
	assert.Contains(t, lines[1], "rotate z 1.57")
	assert.True(t, strings.HasPrefix(lines[0], "["))

	data, err := os.ReadFile(LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "select instance 0/1")
}

// TestLines_ReturnsCopy mutating the returned slice must not affect the
// logger.
func TestLines_ReturnsCopy(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l := New()
	l.Log("first")

	lines := l.Lines()
	lines[0] = "mutated"

	assert.Contains(t, l.Lines()[0], "first")
}
