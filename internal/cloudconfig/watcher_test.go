package cloudconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cloud_configs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clouds:\n  - keystoneHostname: a.example.org\n    friendlyName: A\n"), 0o600))

	r, err := cloudconfig.NewRegistry(cloudconfig.NewLoader("", path))
	require.NoError(t, err)

	w, err := cloudconfig.NewWatcher(r, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("clouds:\n  - keystoneHostname: b.example.org\n    friendlyName: B\n"), 0o600))

	select {
	case err := <-w.Reloaded():
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	_, ok := r.Lookup("b.example.org")
	assert.True(t, ok)

	cancel()
	assert.NoError(t, <-done)
}

func TestNewWatcher_RequiresLoader(t *testing.T) {
	r, err := cloudconfig.NewRegistryFromConfigs(nil, cloudconfig.CloudConfigs{})
	require.NoError(t, err)

	_, err = cloudconfig.NewWatcher(r, 0)
	assert.ErrorIs(t, err, cloudconfig.ErrNoLoader)
}
