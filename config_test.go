package lockstep

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
)

//go:embed testdata/*
var embedFS embed.FS

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), "embed:///testdata/lockstep.yaml", &embedFS)
	require.NoError(t, err)
	assert.Equal(t, "world", cfg.Conductor.Name)
	assert.Equal(t, "trusted", cfg.Conductor.Guard)
	assert.Equal(t, "inverse", cfg.Conductor.Order)
	assert.Equal(t, 5*time.Millisecond, cfg.Conductor.Interval)
	assert.Equal(t, 10, cfg.Conductor.Ticks)
	assert.True(t, cfg.Thread.LockOSThread)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, 16, cfg.Events.QueueBuffer)
	assert.Equal(t, "world-sim", cfg.Tracing.ServiceName)
	assert.Equal(t, "0.1.0", cfg.Tracing.ServiceVersion)
}

func TestLoadConfig_File(t *testing.T) {
	location := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte("conductor:\n  ticks: 3\n"), 0o644))
	cfg, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Conductor.Ticks)
	assert.Equal(t, "checked", cfg.Conductor.Guard)

	_, err = LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(c *Config) {}},
		{description: "unknown guard", mutate: func(c *Config) { c.Conductor.Guard = "loose" }, expectErr: true},
		{description: "unknown order", mutate: func(c *Config) { c.Conductor.Order = "sideways" }, expectErr: true},
		{description: "negative interval", mutate: func(c *Config) { c.Conductor.Interval = -time.Second }, expectErr: true},
		{description: "negative ticks", mutate: func(c *Config) { c.Conductor.Ticks = -1 }, expectErr: true},
		{description: "events without buffer", mutate: func(c *Config) { c.Events = EventsConfig{Enabled: true} }, expectErr: true},
		{description: "fs without path", mutate: func(c *Config) { c.Snapshot = SnapshotConfig{Vendor: SnapshotFs} }, expectErr: true},
		{description: "unknown snapshot vendor", mutate: func(c *Config) { c.Snapshot.Vendor = "s3" }, expectErr: true},
	}
	for _, testCase := range testCases {
		cfg := DefaultConfig()
		testCase.mutate(cfg)
		if testCase.expectErr {
			assert.Error(t, cfg.Validate(), testCase.description)
			continue
		}
		assert.NoError(t, cfg.Validate(), testCase.description)
	}

	_, err := DecodeConfig([]byte("conductor: ["))
	assert.Error(t, err)
}
