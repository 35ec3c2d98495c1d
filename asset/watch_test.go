// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "water.vert")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()
	assert.Empty(t, w.Poll())

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("c"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("d"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		return len(got) > 0
	}, 5*time.Second, 10*time.Millisecond)
	// Later polls may still see the second write, never the other file.
	time.Sleep(50 * time.Millisecond)
	got = append(got, w.Poll()...)
	for _, name := range got {
		assert.Equal(t, watched, name)
	}

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherBurstKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	busy := filepath.Join(dir, "busy.frag")
	quiet := filepath.Join(dir, "quiet.frag")
	for _, p := range []string{busy, quiet} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
	w, err := NewWatcher(busy, quiet)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 200; i++ {
		require.NoError(t, os.WriteFile(busy, []byte{byte(i)}, 0o644))
	}
	require.NoError(t, os.WriteFile(quiet, []byte("x"), 0o644))

	seen := make(map[string]int)
	require.Eventually(t, func() bool {
		for _, name := range w.Poll() {
			seen[name]++
		}
		return seen[quiet] > 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Positive(t, seen[busy])
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "a.glsl"))
	assert.Error(t, err)
}
