// Package ledgertest provides an in-process fake of the ledger gateway.
package ledgertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// HandlerFunc answers one ledger method. A returned *Rejection is sent back
// as a ledger rejection; any other error becomes a 500.
type HandlerFunc func(args []json.RawMessage) (interface{}, error)

type Rejection struct {
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func Reject(message string) error {
	return &Rejection{Message: message}
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    map[string][][]json.RawMessage
	tokens   map[string]string
	down     bool
}

func NewServer() *Server {
	s := &Server{
		handlers: make(map[string]HandlerFunc),
		calls:    make(map[string][][]json.RawMessage),
		tokens:   make(map[string]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) Handle(method string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = fn
}

// Returns makes method answer with a fixed value.
func (s *Server) Returns(method string, v interface{}) {
	s.Handle(method, func([]json.RawMessage) (interface{}, error) { return v, nil })
}

// Rejects makes method fail with the given message.
func (s *Server) Rejects(method, message string) {
	s.Handle(method, func([]json.RawMessage) (interface{}, error) { return nil, Reject(message) })
}

// SetDown makes every request answer 503 until reset.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls[method])
}

// LastArgs returns the arguments of the most recent call to method.
func (s *Server) LastArgs(method string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.calls[method]
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1]
}

// LastToken returns the bearer token of the most recent call to method.
func (s *Server) LastToken(method string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[method]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	down := s.down
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if down {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{}`))
		return
	}

	if r.URL.Path == "/api/v1/status" {
		w.Write([]byte(`{"ok":"running"}`))
		return
	}

	method := strings.TrimPrefix(r.URL.Path, "/api/v1/call/")
	if method == r.URL.Path || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"err":"not found"}`))
		return
	}

	var body struct {
		Args []json.RawMessage `json:"args"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"err": err.Error()})
		return
	}

	s.mu.Lock()
	s.calls[method] = append(s.calls[method], body.Args)
	s.tokens[method] = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	handler, ok := s.handlers[method]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"err": "unknown method " + method})
		return
	}

	result, err := handler(body.Args)
	if err != nil {
		if rej, isRejection := err.(*Rejection); isRejection {
			w.WriteHeader(http.StatusBadRequest)
			if rej.Message == "" {
				w.Write([]byte(`{}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"err": rej.Message})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"ok": result})
}
