package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhQGIuY29tIn0.sig"

	got := sanitizeKVs([]any{
		"access_token", "abc",
		"Email", "a@b.com",
		"course_id", "42",
		"header", jwt,
		"dangling",
	})

	assert.Equal(t, []any{
		"access_token", "[REDACTED]",
		"Email", "[REDACTED]",
		"course_id", "42",
		"header", "[REDACTED]",
		"dangling",
	}, got)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coursegen.log")

	l, err := New(Options{Mode: "prod", Path: path, Level: "info"})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("course loaded", "course_id", "c1", "token", "secret-value")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "course loaded")
	assert.Contains(t, out, `"course_id":"c1"`)
	assert.NotContains(t, out, "secret-value")
	assert.False(t, strings.Contains(out, "hidden"), "debug line should be filtered at info level")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
