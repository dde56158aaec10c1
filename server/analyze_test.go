package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetPageSpeed/recheck/redos"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := redos.DefaultConfig()
	analyzer, err := redos.NewAnalyzer(cfg)
	require.NoError(t, err)
	return NewRouter(analyzer, cfg)
}

func doAnalyze(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandleHealthz(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleAnalyzeSafePattern(t *testing.T) {
	router := newTestRouter(t)
	rec, env := doAnalyze(t, router, `{"pattern": "^abc$"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Error)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "SAFE", resp.Status)
}

func TestHandleAnalyzeVulnerablePattern(t *testing.T) {
	router := newTestRouter(t)
	rec, env := doAnalyze(t, router, `{"pattern": "^(a+)+$"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "VULNERABLE", resp.Status)
	assert.NotNil(t, resp.Attack)
}

func TestHandleAnalyzeRejectsEmptyPattern(t *testing.T) {
	router := newTestRouter(t)
	rec, env := doAnalyze(t, router, `{"pattern": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, env.Error)
}

func TestHandleAnalyzeRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)
	rec, env := doAnalyze(t, router, `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, env.Error)
}

func TestHandleAnalyzeRejectsUnknownMatchMode(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := doAnalyze(t, router, `{"pattern": "a+", "match_mode": "sideways"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
