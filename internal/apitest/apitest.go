// Package apitest provides an in-memory storefront API for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Request is one call the fake storefront received.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

type failure struct {
	method string
	prefix string
	status int
	times  int
}

type collection struct {
	ids     []string
	records map[string]map[string]any
}

// Storefront is a fake of the storefront API backed by memory.
type Storefront struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	data     map[string]*collection
	failures []*failure
	seq      int
}

var collections = []string{
	"products",
	"categories",
	"currencies",
	"banners",
	"special-offers",
	"constructor/pages",
}

func NewStorefront() *Storefront {
	s := &Storefront{data: map[string]*collection{}}
	r := chi.NewRouter()
	r.Use(s.record, s.inject)

	r.Route("/api", func(r chi.Router) {
		for _, c := range collections {
			c := c
			r.Get("/"+c, s.list(c))
			r.Post("/"+c, s.create(c))
			r.Get("/"+c+"/{id}", s.get(c))
			r.Put("/"+c+"/{id}", s.update(c))
			r.Patch("/"+c+"/{id}", s.update(c))
			r.Delete("/"+c+"/{id}", s.remove(c))
			r.Patch("/"+c+"/{id}/toggle", s.toggle(c))
		}
		r.Get("/constructor/pages/{id}/blocks", s.listBlocks)
		r.Post("/constructor/pages/{id}/blocks", s.createBlock)
		r.Patch("/constructor/blocks/{id}", s.update("constructor/blocks"))
		r.Delete("/constructor/blocks/{id}", s.remove("constructor/blocks"))

		r.Put("/local-upload/{fileId}", s.putUpload)
		r.Post("/local-upload", s.postUpload)
		r.Post("/ar/create-admin", s.createAR)
	})
	s.Server = httptest.NewServer(r)
	return s
}

func (s *Storefront) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Storefront) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var status int
		for _, f := range s.failures {
			if f.times > 0 && f.method == r.Method && strings.HasPrefix(r.URL.Path, f.prefix) {
				f.times--
				status = f.status
				break
			}
		}
		s.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes the next n requests matching method and path prefix answer
// with status.
func (s *Storefront) Fail(method, pathPrefix string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, &failure{method: method, prefix: pathPrefix, status: status, times: n})
}

// Requests returns every request received so far.
func (s *Storefront) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count counts requests with method whose path equals path.
func (s *Storefront) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Writes counts non-GET requests.
func (s *Storefront) Writes() int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method != http.MethodGet {
			n++
		}
	}
	return n
}

// Seed stores records in a collection; each must carry an "id".
func (s *Storefront) Seed(coll string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	for _, rec := range records {
		id := fmt.Sprint(rec["id"])
		if _, ok := c.records[id]; !ok {
			c.ids = append(c.ids, id)
		}
		c.records[id] = rec
	}
}

// Record returns a stored record.
func (s *Storefront) Record(coll, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.coll(coll).records[id]
	return rec, ok
}

func (s *Storefront) coll(name string) *collection {
	c, ok := s.data[name]
	if !ok {
		c = &collection{records: map[string]map[string]any{}}
		s.data[name] = c
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request) (map[string]any, error) {
	rec := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}
