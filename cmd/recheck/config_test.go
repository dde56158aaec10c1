package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetPageSpeed/recheck/redos"
)

func TestLoadConfigFileOverridesOnlySetFields(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "recheck-*.toml")
	require.NoError(t, err)
	_, err = f.WriteString("max_nfa_size = 5000\nmatch_mode = \"full\"\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg := redos.DefaultConfig()
	require.NoError(t, loadConfigFile(f.Name(), &cfg))

	assert.Equal(t, 5000, cfg.MaxNFASize)
	assert.Equal(t, redos.MatchFull, cfg.MatchMode)
	assert.Equal(t, redos.DefaultConfig().MaxDeltaSize, cfg.MaxDeltaSize)
}

func TestBuildConfigFlagsOverrideFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "recheck-*.toml")
	require.NoError(t, err)
	_, err = f.WriteString("max_nfa_size = 5000\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	opts := &Options{ConfigFile: f.Name(), MaxNFASize: 9000}
	cfg, err := opts.buildConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.MaxNFASize)
}

func TestBuildConfigRejectsInvalidOverride(t *testing.T) {
	opts := &Options{MaxNFASize: -1}
	_, err := opts.buildConfig()
	assert.Error(t, err)
}
