package server

import (
	"net/http"
	"runtime/debug"
)

// EndpointFunc handles one HTTP request and returns the result to send,
// rather than writing to the ResponseWriter directly. This lets handler
// logic be tested without standing up a real http.ResponseWriter and
// keeps panic recovery and response writing in exactly one place.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc to http.HandlerFunc, recovering from a
// panic inside ep and turning it into a 500 rather than crashing the
// server.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		result := panicTo500(ep, req)
		result.writeResponse(w, req)
	}
}

func panicTo500(ep EndpointFunc, req *http.Request) (result EndpointResult) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			result = jsonInternalError("panic: %v\n%s", panicErr, debug.Stack())
		}
	}()
	return ep(req)
}
