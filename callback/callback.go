// Package callback runs a short-lived local HTTP server that captures the
// authorization-code redirect of the OAuth2 flow. It is the counterpart to
// the client's AuthorizationURL: point the redirect URI at this server,
// open the authorization URL in a browser, then Wait for the code.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultPath is the redirect path served when none is configured.
const DefaultPath = "/callback"

// Result carries the parameters captured from the redirect.
type Result struct {
	Code  string
	State string
}

// Server is a single-use local redirect listener. Create one with
// NewServer, build the authorization URL with RedirectURI, then Wait.
type Server struct {
	srv     *http.Server
	ln      net.Listener
	path    string
	state   string
	results chan Result
	fails   chan error
	serve   chan error
}

// NewServer binds a listener on addr (e.g. "127.0.0.1:8484", or port 0 for
// an ephemeral port) and starts serving the redirect path. A non-empty
// state is required to match the redirect's state parameter; a mismatch
// fails the wait.
func NewServer(addr, path, state string) (*Server, error) {
	if path == "" {
		path = DefaultPath
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	s := &Server{
		ln:      ln,
		path:    path,
		state:   state,
		results: make(chan Result, 1),
		fails:   make(chan error, 1),
		serve:   make(chan error, 1),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(path, s.handleRedirect)

	s.srv = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.serve <- s.srv.Serve(ln)
	}()

	return s, nil
}

// Addr returns the bound host:port, useful with an ephemeral port.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// RedirectURI returns the URI to register as the OAuth redirect target.
func (s *Server) RedirectURI() string {
	return "http://" + s.Addr() + s.path
}

// Wait blocks until the redirect arrives, the authorization server reports
// a denial, or ctx is done.
func (s *Server) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-s.results:
		return res, nil
	case err := <-s.fails:
		return Result{}, err
	case err := <-s.serve:
		return Result{}, fmt.Errorf("callback server: %w", err)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close shuts the listener down. Safe to call after Wait returns.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return s.srv.Close()
	}
	return nil
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		s.fail(fmt.Errorf("authorization denied: %s: %s", errCode, q.Get("error_description")))
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code.", http.StatusBadRequest)
		return
	}

	if s.state != "" && q.Get("state") != s.state {
		http.Error(w, "State mismatch. You can close this window.", http.StatusBadRequest)
		s.fail(errors.New("state parameter mismatch"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><html><body><p>Authorization received. You can close this window.</p></body></html>")

	select {
	case s.results <- Result{Code: code, State: q.Get("state")}:
	default:
		// A result is already pending; ignore duplicate redirects.
	}
}

func (s *Server) fail(err error) {
	select {
	case s.fails <- err:
	default:
	}
}
