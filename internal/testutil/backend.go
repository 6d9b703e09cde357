// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Request is one call recorded by Backend
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// Decode unmarshals the recorded JSON body into v
func (r Request) Decode(v any) error {
	return json.Unmarshal([]byte(r.Body), v)
}

// Responder produces the status and JSON payload for a request
type Responder func(r Request) (int, any)

type failure struct {
	status int
	body   string
}

// Backend is a recording REST fake. Unrouted requests get json-server-like
// defaults: POST echoes the body with a generated id, PUT/PATCH echo the body
// with the path id, DELETE answers {}, GET answers [].
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	routes   map[string]Responder
	failures map[string]failure
	nextID   map[string]int
}

// NewBackend starts a Backend closed at test cleanup
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		routes:   make(map[string]Responder),
		failures: make(map[string]failure),
		nextID:   make(map[string]int),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Handle routes method+path to fn
func (b *Backend) Handle(method, path string, fn Responder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[routeKey(method, path)] = fn
}

// Reply routes method+path to a fixed response
func (b *Backend) Reply(method, path string, status int, payload any) {
	b.Handle(method, path, func(Request) (int, any) {
		return status, payload
	})
}

// FailWith makes method+path answer status with a raw body
func (b *Backend) FailWith(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[routeKey(method, path)] = failure{status: status, body: body}
}

// Requests returns a copy of every recorded request in arrival order
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// Filter returns the recorded requests with method whose path starts with prefix
func (b *Backend) Filter(method, prefix string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   string(body),
	}
	key := routeKey(r.Method, r.URL.Path)

	b.mu.Lock()
	b.requests = append(b.requests, req)
	fail, failing := b.failures[key]
	route, routed := b.routes[key]
	b.mu.Unlock()

	if failing {
		w.WriteHeader(fail.status)
		_, _ = io.WriteString(w, fail.body)
		return
	}

	var status int
	var payload any
	if routed {
		status, payload = route(req)
	} else {
		status, payload = b.fallback(req)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (b *Backend) fallback(req Request) (int, any) {
	segments := strings.Split(strings.Trim(req.Path, "/"), "/")
	switch req.Method {
	case http.MethodGet:
		return http.StatusOK, []any{}
	case http.MethodDelete:
		return http.StatusOK, map[string]any{}
	case http.MethodPost:
		obj := map[string]any{}
		_ = req.Decode(&obj)
		if _, ok := obj["id"]; !ok {
			b.mu.Lock()
			b.nextID[segments[0]]++
			obj["id"] = fmt.Sprintf("%s-%d", segments[0], b.nextID[segments[0]])
			b.mu.Unlock()
		}
		return http.StatusCreated, obj
	default:
		obj := map[string]any{}
		_ = req.Decode(&obj)
		if len(segments) > 1 {
			obj["id"] = segments[1]
		}
		return http.StatusOK, obj
	}
}
