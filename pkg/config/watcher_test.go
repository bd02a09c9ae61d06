package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsValidChanges(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "truthscene.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { got <- c }, nil)
	require.NoError(t, err)
	w.setDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	cfg := DefaultConfig()
	cfg.Render.FPS = 30
	require.NoError(t, cfg.Save(path))

	select {
	case c := <-got:
		assert.Equal(t, 30, c.Render.FPS)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after a valid change")
	}

	// Invalid edits are skipped.
	require.NoError(t, os.WriteFile(path, []byte("render:\n  fps: 0\n"), 0o644))
	require.Eventually(t, func() bool {
		_, rejected := w.Stats()
		return rejected > 0
	}, 5*time.Second, 10*time.Millisecond)
	select {
	case c := <-got:
		t.Fatalf("invalid config was applied: fps %d", c.Render.FPS)
	default:
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "truthscene.yaml")
	w, err := NewWatcher(path, func(*Config) { t.Error("unexpected reload") }, nil)
	require.NoError(t, err)
	w.setDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	w.Stop()

	reloads, rejected := w.Stats()
	assert.Zero(t, reloads)
	assert.Zero(t, rejected)
}

func TestWatcherRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "truthscene.yaml")
	w, err := NewWatcher(path, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherStopAfterFailedStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "missing", "truthscene.yaml")
	w, err := NewWatcher(path, nil, nil)
	require.NoError(t, err)

	require.Error(t, w.Run(context.Background()))

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked after Start failed")
	}
}
