package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, t.TempDir(), "field:\n  particle_count: 10\n")
	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("field:\n  particle_count: 33\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		require.Equal(t, 33, cfg.Field.ParticleCount)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcherSkipsInvalidEdit(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, t.TempDir(), "field:\n  particle_count: 10\n")
	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("field:\n  line_color: nope\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected reload: %+v", cfg.Field)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(writeConfig(t, t.TempDir(), ""), nil)
	require.NoError(t, err)
	w.Stop()
}
