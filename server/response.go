// Package server exposes the analyzer over HTTP: POST /v1/analyze takes a
// pattern and optional config overrides and returns its Diagnostics as
// JSON; GET /healthz is a liveness probe. Grounded on dekarrin-tunaq/
// server's EndpointResult/jsonOK/jsonErr envelope style (trimmed of the
// auth/DB machinery a stateless analyzer has no use for) and go-chi/
// chi/v5's Router/middleware conventions.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// envelope is the JSON shape every response — success or error — is
// wrapped in, carrying a request ID for log correlation.
type envelope struct {
	RequestID string      `json:"request_id"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// EndpointResult is the outcome of one EndpointFunc invocation: an HTTP
// status, a response payload (success) or a user-facing error message,
// and an internal log message kept separate from what the caller sees.
type EndpointResult struct {
	status      int
	respObj     interface{}
	userErrMsg  string
	internalMsg string
}

// jsonOK builds a 200 result carrying respObj.
func jsonOK(respObj interface{}, internalMsgFmt string, args ...interface{}) EndpointResult {
	return EndpointResult{status: http.StatusOK, respObj: respObj, internalMsg: fmt.Sprintf(internalMsgFmt, args...)}
}

// jsonBadRequest builds a 400 result with userMsg shown to the caller.
func jsonBadRequest(userMsg string, internalMsgFmt string, args ...interface{}) EndpointResult {
	return EndpointResult{status: http.StatusBadRequest, userErrMsg: userMsg, internalMsg: fmt.Sprintf(internalMsgFmt, args...)}
}

// jsonInternalError builds a 500 result; userMsg is deliberately generic
// so internal detail never leaks to a caller.
func jsonInternalError(internalMsgFmt string, args ...interface{}) EndpointResult {
	return EndpointResult{status: http.StatusInternalServerError, userErrMsg: "internal error", internalMsg: fmt.Sprintf(internalMsgFmt, args...)}
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	reqID := uuid.New().String()
	log.Printf("[%s] %s %s -> %d (%s)", reqID, req.Method, req.URL.Path, r.status, r.internalMsg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)

	env := envelope{RequestID: reqID, Data: r.respObj, Error: r.userErrMsg}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("[%s] failed to encode response: %v", reqID, err)
	}
}
