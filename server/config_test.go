package server

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigOverridesDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "recheckd-*.toml")
	require.NoError(t, err)
	_, err = f.WriteString("addr = \":9090\"\nmax_nfa_size = 5000\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := LoadServerConfig(f.Name())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5000, cfg.MaxNFASize)
	assert.Equal(t, DefaultServerConfig().MaxDeltaSize, cfg.MaxDeltaSize)
}

func TestRedosConfigRejectsUnknownMatchMode(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MatchMode = "sideways"
	_, err := cfg.redosConfig()
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxNFASize = -1
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewBuildsServer(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Addr = ":0"
	srv, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, ":0", srv.Addr())
}
