package server

import (
	"github.com/BurntSushi/toml"

	"github.com/GetPageSpeed/recheck/redos"
)

// ServerConfig holds the listener address and the Config new analyze
// requests default to, loaded from a TOML file per dekarrin-tunaq's
// toml.Unmarshal config-file convention.
type ServerConfig struct {
	Addr string `toml:"addr"`

	MaxNFASize        int    `toml:"max_nfa_size"`
	MaxDeltaSize      int    `toml:"max_delta_size"`
	MaxEpsilonPathLen int    `toml:"max_epsilon_path_len"`
	MatchMode         string `toml:"match_mode"`
	AttackLimit       int    `toml:"attack_limit"`
	TimeoutMs         int    `toml:"timeout_ms"`
}

// DefaultServerConfig returns the listener default paired with
// redos.DefaultConfig's analyzer defaults.
func DefaultServerConfig() ServerConfig {
	d := redos.DefaultConfig()
	return ServerConfig{
		Addr:              ":8080",
		MaxNFASize:        d.MaxNFASize,
		MaxDeltaSize:      d.MaxDeltaSize,
		MaxEpsilonPathLen: d.MaxEpsilonPathLen,
		MatchMode:         "auto",
		AttackLimit:       d.AttackLimit,
		TimeoutMs:         d.TimeoutMs,
	}
}

// LoadServerConfig decodes path as TOML on top of DefaultServerConfig,
// so an omitted field in the file keeps its default rather than zeroing.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// redosConfig converts the analyzer-relevant fields of sc into a
// redos.Config, validating it in the process.
func (sc ServerConfig) redosConfig() (redos.Config, error) {
	cfg := redos.Config{
		MaxNFASize:        sc.MaxNFASize,
		MaxDeltaSize:      sc.MaxDeltaSize,
		MaxEpsilonPathLen: sc.MaxEpsilonPathLen,
		AttackLimit:       sc.AttackLimit,
		TimeoutMs:         sc.TimeoutMs,
	}
	switch sc.MatchMode {
	case "full":
		cfg.MatchMode = redos.MatchFull
	case "partial":
		cfg.MatchMode = redos.MatchPartial
	case "auto", "":
		cfg.MatchMode = redos.MatchAuto
	default:
		return redos.Config{}, &redos.ConfigError{Field: "MatchMode", Message: "unrecognized match mode"}
	}
	return cfg, cfg.Validate()
}
