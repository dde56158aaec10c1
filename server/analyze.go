package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GetPageSpeed/recheck/diagnostics"
	"github.com/GetPageSpeed/recheck/redos"
)

// analyzeRequest is the POST /v1/analyze request body: a pattern and an
// optional sparse override of the server's default Config.
type analyzeRequest struct {
	Pattern     string `json:"pattern"`
	MatchMode   string `json:"match_mode,omitempty"`
	TimeoutMs   int    `json:"timeout_ms,omitempty"`
	AttackLimit int    `json:"attack_limit,omitempty"`
}

// analyzeResponse mirrors diagnostics.Diagnostics as wire JSON, keeping
// the HTTP contract independent of that type's own field tags.
type analyzeResponse struct {
	Pattern    string               `json:"pattern"`
	Status     string               `json:"status"`
	Complexity string               `json:"complexity,omitempty"`
	Reason     string               `json:"reason,omitempty"`
	Attack     *attackPayload       `json:"attack,omitempty"`
	Hotspot    *diagnostics.Hotspot `json:"hotspot,omitempty"`
}

type attackPayload struct {
	Prefix      string `json:"prefix"`
	Pump        string `json:"pump"`
	Suffix      string `json:"suffix"`
	RepeatCount int    `json:"repeat_count"`
}

func toAnalyzeResponse(pattern string, d diagnostics.Diagnostics) analyzeResponse {
	resp := analyzeResponse{Pattern: pattern, Status: d.Status.String(), Reason: d.Reason, Hotspot: d.Hotspot}
	if d.Complexity != nil {
		resp.Complexity = d.Complexity.String()
	}
	if d.Attack != nil {
		resp.Attack = &attackPayload{
			Prefix:      string(d.Attack.Prefix),
			Pump:        string(d.Attack.Pump),
			Suffix:      string(d.Attack.Suffix),
			RepeatCount: d.Attack.RepeatCount,
		}
	}
	return resp
}

// handleAnalyze decodes an analyzeRequest, runs it through analyzer with
// any per-request overrides applied on top of base, and reports the
// Diagnostics as JSON.
func handleAnalyze(analyzer *redos.Analyzer, base redos.Config) EndpointFunc {
	return func(req *http.Request) EndpointResult {
		var body analyzeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return jsonBadRequest("malformed request body", "decode error: %v", err)
		}
		if body.Pattern == "" {
			return jsonBadRequest("pattern is required", "empty pattern field")
		}

		cfg := base
		switch body.MatchMode {
		case "full":
			cfg.MatchMode = redos.MatchFull
		case "partial":
			cfg.MatchMode = redos.MatchPartial
		case "auto", "":
		default:
			return jsonBadRequest("match_mode must be auto, full, or partial", "unrecognized match_mode %q", body.MatchMode)
		}
		if body.TimeoutMs > 0 {
			cfg.TimeoutMs = body.TimeoutMs
		}
		if body.AttackLimit > 0 {
			cfg.AttackLimit = body.AttackLimit
		}

		requestAnalyzer := analyzer
		if cfg != base {
			var err error
			requestAnalyzer, err = redos.NewAnalyzer(cfg)
			if err != nil {
				return jsonBadRequest("invalid configuration override", "config error: %v", err)
			}
		}

		ctx := req.Context()
		if cfg.TimeoutMs > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
			defer cancel()
		}

		d := requestAnalyzer.Analyze(ctx, body.Pattern)
		return jsonOK(toAnalyzeResponse(body.Pattern, d), "analyzed pattern, status=%s", d.Status.String())
	}
}

// handleHealthz reports liveness: if the process can respond at all, it
// is healthy, since the analyzer carries no external dependency to probe.
func handleHealthz(req *http.Request) EndpointResult {
	return jsonOK(map[string]string{"status": "ok"}, "healthz")
}
