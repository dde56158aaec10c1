package main

import (
	"github.com/BurntSushi/toml"

	"github.com/GetPageSpeed/recheck/redos"
)

// tomlConfig mirrors redos.Config's fields for file-based overrides,
// grounded on dekarrin-tunaq/internal/tqw's toml.Unmarshal/Decode usage.
type tomlConfig struct {
	MaxNFASize        int    `toml:"max_nfa_size"`
	MaxDeltaSize      int    `toml:"max_delta_size"`
	MaxEpsilonPathLen int    `toml:"max_epsilon_path_len"`
	MatchMode         string `toml:"match_mode"`
	AttackLimit       int    `toml:"attack_limit"`
	TimeoutMs         int    `toml:"timeout_ms"`
}

// loadConfigFile decodes path as TOML and merges any set field into cfg.
// Zero-valued fields in the file are treated as "not set" and leave cfg's
// existing value in place.
func loadConfigFile(path string, cfg *redos.Config) error {
	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return err
	}

	if tc.MaxNFASize != 0 {
		cfg.MaxNFASize = tc.MaxNFASize
	}
	if tc.MaxDeltaSize != 0 {
		cfg.MaxDeltaSize = tc.MaxDeltaSize
	}
	if tc.MaxEpsilonPathLen != 0 {
		cfg.MaxEpsilonPathLen = tc.MaxEpsilonPathLen
	}
	if tc.AttackLimit != 0 {
		cfg.AttackLimit = tc.AttackLimit
	}
	if tc.TimeoutMs != 0 {
		cfg.TimeoutMs = tc.TimeoutMs
	}
	switch tc.MatchMode {
	case "full":
		cfg.MatchMode = redos.MatchFull
	case "partial":
		cfg.MatchMode = redos.MatchPartial
	case "auto":
		cfg.MatchMode = redos.MatchAuto
	}

	return nil
}
