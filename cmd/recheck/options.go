// Package main implements the recheck CLI: a static ReDoS analyzer over
// one pattern or a file of patterns, printed as text or JSON. Grounded
// on projectdiscovery-alterx's internal/runner/runner.go's goflags
// grouped-flag layout and gologger leveling.
package main

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/GetPageSpeed/recheck/redos"
)

// Options holds the parsed CLI flags.
type Options struct {
	Pattern      string
	List         goflags.StringSlice
	ConfigFile   string
	JSON         bool
	Verbose      bool
	Silent       bool
	MaxNFASize   int
	MaxDeltaSize int
	TimeoutMs    int
	MatchMode    string
}

// ParseFlags parses os.Args into an Options.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Static regular-expression denial-of-service (ReDoS) complexity analyzer.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression pattern to analyze"),
		flagSet.StringSliceVarP(&opts.List, "list", "l", nil, "file of patterns to analyze, one per line", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVar(&opts.JSON, "json", false, "emit diagnostics as JSON instead of text"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.ConfigFile, "config", "", "recheck TOML config file overriding the resource-bound defaults"),
		flagSet.IntVar(&opts.MaxNFASize, "max-nfa-size", 0, "override Config.MaxNFASize (0 keeps the default)"),
		flagSet.IntVar(&opts.MaxDeltaSize, "max-delta-size", 0, "override Config.MaxDeltaSize (0 keeps the default)"),
		flagSet.IntVar(&opts.TimeoutMs, "timeout", 0, "analysis timeout in milliseconds (0 keeps the config file's value; no timeout by default)"),
		flagSet.StringVar(&opts.MatchMode, "match-mode", "", "auto, full, or partial (default auto)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Pattern == "" && len(opts.List) == 0 {
		gologger.Fatal().Msgf("recheck: no pattern given, pass -p or -l\n")
	}

	return opts
}

// buildConfig resolves redos.Config from defaults, an optional TOML file,
// and any flag overrides, in that precedence order (flags win).
func (o *Options) buildConfig() (redos.Config, error) {
	cfg := redos.DefaultConfig()

	if o.ConfigFile != "" {
		if err := loadConfigFile(o.ConfigFile, &cfg); err != nil {
			return redos.Config{}, err
		}
	}

	if o.MaxNFASize != 0 {
		cfg.MaxNFASize = o.MaxNFASize
	}
	if o.MaxDeltaSize != 0 {
		cfg.MaxDeltaSize = o.MaxDeltaSize
	}
	if o.TimeoutMs != 0 {
		cfg.TimeoutMs = o.TimeoutMs
	}
	switch o.MatchMode {
	case "full":
		cfg.MatchMode = redos.MatchFull
	case "partial":
		cfg.MatchMode = redos.MatchPartial
	case "", "auto":
		// keep whatever the config file or default set
	}

	return cfg, cfg.Validate()
}
