// Package studiotest provides an in-process stand-in for the Studio API,
// used by the client tests.
package studiotest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Request is one call recorded by the server.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Auth      string
	RequestID string
	Body      []byte
}

// Server fakes the Studio endpoints the client talks to. Response behavior
// is controlled through the exported fields; set them before issuing calls.
type Server struct {
	*httptest.Server

	// LiveStatus and LiveBody control the response of the live endpoint.
	LiveStatus int
	LiveBody   string

	// Models is served by the get-download-uris endpoint.
	Models map[string]string

	// RegistryStatus and RegistryBody override the registry response when
	// RegistryStatus is non-zero.
	RegistryStatus int
	RegistryBody   string

	// PendingPolls is how many authorization_pending replies the token
	// endpoint returns before granting AccessToken.
	PendingPolls int

	// AccessToken is granted once polling succeeds.
	AccessToken string

	// Expired makes the token endpoint report an expired device code.
	Expired bool

	mu       sync.Mutex
	requests []Request
	polls    int
}

// New starts a fake Studio server. The caller owns shutdown via Close.
func New(logger *zap.SugaredLogger) *Server {
	s := &Server{
		LiveStatus:  http.StatusOK,
		AccessToken: "isat_access_token",
	}

	router := chi.NewRouter()
	router.Use(LoggingMiddleware(logger))
	router.Use(middleware.StripSlashes)
	router.Post("/api/live", s.handleLive)
	router.Get("/api/model-registry/get-download-uris", s.handleDownloadURIs)
	router.Post("/api/device-login", s.handleDeviceLogin)
	router.Post("/api/device-login/token", s.handleDeviceToken)

	s.Server = httptest.NewServer(router)
	return s
}

// Requests returns a copy of everything the server has seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls counts recorded requests for the given path; an empty path counts
// every request.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, request := range s.requests {
		if path == "" || request.Path == path {
			count++
		}
	}
	return count
}

func (s *Server) record(r *http.Request) Request {
	body, _ := io.ReadAll(r.Body)
	recorded := Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Auth:      r.Header.Get("Authorization"),
		RequestID: r.Header.Get("X-Request-Id"),
		Body:      body,
	}
	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	s.mu.Unlock()
	return recorded
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	w.WriteHeader(s.LiveStatus)
	if s.LiveBody != "" {
		w.Write([]byte(s.LiveBody))
	}
}

func (s *Server) handleDownloadURIs(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.RegistryStatus != 0 {
		w.WriteHeader(s.RegistryStatus)
		w.Write([]byte(s.RegistryBody))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"models": s.Models})
}

func (s *Server) handleDeviceLogin(w http.ResponseWriter, r *http.Request) {
	request := s.record(r)

	var login struct {
		TokenName string `json:"token_name"`
	}
	json.Unmarshal(request.Body, &login)
	if login.TokenName == "" {
		login.TokenName = "random-name"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"device_code":      "random-value",
		"user_code":        "MOCKCODE",
		"verification_uri": s.URL + "/auth/device-login",
		"token_uri":        s.URL + "/api/device-login/token",
		"token_name":       login.TokenName,
		"expires_in":       300,
	})
}

func (s *Server) handleDeviceToken(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	w.Header().Set("Content-Type", "application/json")

	if s.Expired {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "authorization_expired"})
		return
	}

	s.mu.Lock()
	s.polls++
	pending := s.polls <= s.PendingPolls
	s.mu.Unlock()

	if pending {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "authorization_pending"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"access_token": s.AccessToken})
}
