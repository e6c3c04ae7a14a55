// Package registrysdktest provides an in-memory OAuth2 client registration
// API for tests. It speaks the same wire format as the real service and
// applies PATCH documents with a full RFC 6902 implementation.
package registrysdktest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk"
)

// Server is a fake registration API backed by a map of JSON documents.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	order   []string
	docs    map[string][]byte
	calls   map[string]int
	nextID  int
	failure *failure
	last    Request
	now     func() time.Time
}

// Request captures the most recent write request seen by the server.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

type failure struct {
	status int
	body   string
	count  int
}

// NewServer starts a fake registration API. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		docs:  make(map[string][]byte),
		calls: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", s.handleList)
	mux.HandleFunc("POST /clients", s.handleCreate)
	mux.HandleFunc("GET /clients/{id}", s.handleGet)
	mux.HandleFunc("PUT /clients/{id}", s.handleReplace)
	mux.HandleFunc("PATCH /clients/{id}", s.handlePatch)

	s.Server = httptest.NewServer(s.intercept(mux))
	return s
}

// Seed stores records as-is, keeping their order for list responses.
func (s *Server) Seed(records ...registrysdk.ClientRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		doc, err := normalize(rec)
		if err != nil {
			panic(err)
		}
		if _, ok := s.docs[rec.ClientID]; !ok {
			s.order = append(s.order, rec.ClientID)
		}
		s.docs[rec.ClientID] = doc
	}
}

// SeedJSON stores raw JSON client objects, members the SDK does not model
// included.
func (s *Server) SeedJSON(docs ...string) {
	for _, doc := range docs {
		var rec registrysdk.ClientRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			panic(err)
		}
		s.Seed(rec)
	}
}

// Record returns the stored record for id.
func (s *Server) Record(id string) (registrysdk.ClientRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return registrysdk.ClientRecord{}, false
	}
	var rec registrysdk.ClientRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		panic(err)
	}
	return rec, true
}

// Calls reports how many requests with the given method reached the server.
// An empty method returns the total.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if method == "" {
		total := 0
		for _, n := range s.calls {
			total += n
		}
		return total
	}
	return s.calls[method]
}

// LastWrite returns the most recent POST, PUT or PATCH request.
func (s *Server) LastWrite() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// FailNext makes the next n requests answer with status and body.
func (s *Server) FailNext(n, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &failure{status: status, body: body, count: n}
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		s.mu.Lock()
		s.calls[r.Method]++
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			s.last = Request{
				Method:      r.Method,
				Path:        r.URL.Path,
				ContentType: r.Header.Get("Content-Type"),
				Body:        body,
			}
		}
		f := s.failure
		if f != nil {
			f.count--
			if f.count <= 0 {
				s.failure = nil
			}
		}
		s.mu.Unlock()

		if f != nil {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]json.RawMessage, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc, ok := s.docs[r.PathValue("id")]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "invalid_client_id", "client not found")
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(doc))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var meta registrysdk.ClientMetadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_client_metadata", err.Error())
		return
	}

	s.mu.Lock()
	s.nextID++
	rec := registrysdk.ClientRecord{
		ClientID:       fmt.Sprintf("client-%03d", s.nextID),
		ClientMetadata: meta,
	}
	if meta.TokenEndpointAuthMethod != "none" {
		secret := fmt.Sprintf("secret-%03d", s.nextID)
		rec.ClientSecret = &secret
	}
	stamp := s.stamp()
	rec.CreatedAt, rec.UpdatedAt = stamp, stamp
	s.mu.Unlock()

	s.Seed(rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var next registrysdk.ClientRecord
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_client_metadata", err.Error())
		return
	}

	current, ok := s.Record(id)
	if !ok {
		writeError(w, http.StatusNotFound, "invalid_client_id", "client not found")
		return
	}

	// Server assigned members cannot be replaced.
	next.ClientID = current.ClientID
	next.ClientSecret = current.ClientSecret
	next.CreatedAt = current.CreatedAt
	s.mu.Lock()
	next.UpdatedAt = s.stamp()
	s.mu.Unlock()

	s.Seed(next)
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_patch", err.Error())
		return
	}

	s.mu.Lock()
	doc, ok := s.docs[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "invalid_client_id", "client not found")
		return
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_patch", err.Error())
		return
	}

	var rec registrysdk.ClientRecord
	if err := json.Unmarshal(patched, &rec); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_client_metadata", err.Error())
		return
	}
	if rec.ClientID != id {
		writeError(w, http.StatusBadRequest, "invalid_patch", "client_id is immutable")
		return
	}

	s.mu.Lock()
	rec.UpdatedAt = s.stamp()
	s.mu.Unlock()

	s.Seed(rec)
	writeJSON(w, http.StatusOK, rec)
}

// optionalKeys are stored as explicit nulls so that a JSON Patch replace on
// an unset optional field has an existing target, as RFC 6902 requires.
var optionalKeys = []string{
	"client_secret", "owner", "client_uri", "logo_uri", "tos_uri", "created_at", "updated_at",
}

func normalize(rec registrysdk.ClientRecord) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for _, k := range optionalKeys {
		if _, ok := doc[k]; !ok {
			doc[k] = json.RawMessage("null")
		}
	}
	return json.Marshal(doc)
}

// stamp must be called with s.mu held.
func (s *Server) stamp() registrysdk.OpaqueTime {
	raw, _ := json.Marshal(s.now().Format(time.RFC3339))
	return registrysdk.OpaqueTime(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	writeJSON(w, status, registrysdk.ErrorResponse{Error: code, ErrorDescription: desc})
}
