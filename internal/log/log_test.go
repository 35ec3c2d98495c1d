// SPDX-License-Identifier: Unlicense OR MIT

package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, exp := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	old := Logger()
	defer SetLogger(old)

	var buf bytes.Buffer
	l, err := New("warn", &buf)
	require.NoError(t, err)
	SetLogger(l)
	Logger().Info("hidden")
	Logger().Warn("shown", "shader", "sky")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shader=sky")

	SetLogger(nil)
	assert.NotNil(t, Logger())
}
