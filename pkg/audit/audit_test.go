package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerAppendsAndReadsBack(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "audit.log"))

	require.NoError(t, logger.Log(Event{
		User:    "web",
		Action:  "test_triggered",
		Success: true,
		Details: map[string]string{"distribution": "debian-12"},
	}))
	require.NoError(t, logger.Log(Event{
		Action:  "test_triggered",
		Success: false,
	}))

	events, err := logger.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "test_triggered", events[0].Action)
	require.Equal(t, "debian-12", events[0].Details["distribution"])
	require.False(t, events[0].Time.IsZero())
	require.False(t, events[1].Success)
}

func TestLoggerDisabledWithEmptyPath(t *testing.T) {
	logger := NewLogger("")
	require.NoError(t, logger.Log(Event{Action: "noop"}))

	events, err := logger.Events()
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestLoggerSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger := NewLogger(path)
	require.NoError(t, logger.Log(Event{Action: "first"}))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{truncated\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, logger.Log(Event{Action: "second"}))

	events, err := logger.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "first", events[0].Action)
	require.Equal(t, "second", events[1].Action)
}
