package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/GetPageSpeed/recheck/diagnostics"
	"github.com/GetPageSpeed/recheck/redos"
)

func main() {
	opts := ParseFlags()

	cfg, err := opts.buildConfig()
	if err != nil {
		gologger.Fatal().Msgf("recheck: invalid configuration: %v\n", err)
	}

	analyzer, err := redos.NewAnalyzer(cfg)
	if err != nil {
		gologger.Fatal().Msgf("recheck: %v\n", err)
	}

	patterns, err := collectPatterns(opts)
	if err != nil {
		gologger.Fatal().Msgf("recheck: %v\n", err)
	}

	exitCode := 0
	for _, pattern := range patterns {
		ctx := context.Background()
		var cancel context.CancelFunc
		if cfg.TimeoutMs > 0 {
			ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		}
		d := analyzer.Analyze(ctx, pattern)
		if cancel != nil {
			cancel()
		}

		if d.Status == diagnostics.StatusVulnerable {
			exitCode = 1
		}

		if opts.JSON {
			printJSON(pattern, d)
		} else {
			printText(pattern, d)
		}
	}

	os.Exit(exitCode)
}

// collectPatterns gathers patterns from -p and/or each line of -l's files.
func collectPatterns(opts *Options) ([]string, error) {
	var patterns []string
	if opts.Pattern != "" {
		patterns = append(patterns, opts.Pattern)
	}
	for _, path := range opts.List {
		lines, err := readLines(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		patterns = append(patterns, lines...)
	}
	return patterns, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

type jsonReport struct {
	Pattern    string               `json:"pattern"`
	Status     string               `json:"status"`
	Complexity string               `json:"complexity,omitempty"`
	Reason     string               `json:"reason,omitempty"`
	Attack     string               `json:"attack,omitempty"`
	Hotspot    *diagnostics.Hotspot `json:"hotspot,omitempty"`
}

func printJSON(pattern string, d diagnostics.Diagnostics) {
	report := jsonReport{Pattern: pattern, Status: d.Status.String(), Reason: d.Reason}
	if d.Complexity != nil {
		report.Complexity = d.Complexity.String()
	}
	if d.Attack != nil {
		report.Attack = attackString(*d.Attack)
	}
	report.Hotspot = d.Hotspot

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

func printText(pattern string, d diagnostics.Diagnostics) {
	fmt.Printf("%-10s %q\n", d.Status.String(), pattern)
	if d.Complexity != nil {
		fmt.Printf("  complexity: %s\n", d.Complexity.String())
	}
	if d.Reason != "" {
		fmt.Printf("  reason: %s\n", d.Reason)
	}
	if d.Attack != nil {
		fmt.Printf("  attack: %s\n", attackString(*d.Attack))
	}
	if d.Hotspot != nil {
		fmt.Printf("  hotspot: [%d:%d] %q\n", d.Hotspot.Start, d.Hotspot.End, d.Hotspot.Snippet)
	}
}

func attackString(a diagnostics.Attack) string {
	out := make([]rune, 0, len(a.Prefix)+len(a.Pump)*a.RepeatCount+len(a.Suffix))
	out = append(out, a.Prefix...)
	for i := 0; i < a.RepeatCount; i++ {
		out = append(out, a.Pump...)
	}
	out = append(out, a.Suffix...)
	return string(out)
}
