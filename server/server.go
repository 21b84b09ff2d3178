// Package server implements the websearch HTTP front end.
package server

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/initializ/websearch/agent"
	"github.com/initializ/websearch/logging"
	"github.com/initializ/websearch/search"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Searcher runs a query and always returns a renderable result list.
type Searcher interface {
	Search(ctx context.Context, query string) []search.Result
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr string

	ProxyBasePath        string
	BaseHref             string
	TrustForwardedPrefix bool
	MaskErrors           bool

	Logger logging.Logger
}

// Server is the single-port HTTP front end.
type Server struct {
	cfg      ServerConfig
	searcher Searcher
	sessions *agent.Sessions
	logger   logging.Logger
	methods  map[string]http.HandlerFunc

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

// NewServer creates a front end backed by searcher. sessions may be nil, in
// which case the chat route is not served.
func NewServer(cfg ServerConfig, searcher Searcher, sessions *agent.Sessions) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		cfg:      cfg,
		searcher: searcher,
		sessions: sessions,
		logger:   logger,
	}
	s.methods = map[string]http.HandlerFunc{
		http.MethodGet:     s.handleGet,
		http.MethodHead:    s.handleGet,
		http.MethodPost:    s.handlePost,
		http.MethodOptions: s.handleOptions,
		http.MethodPut:     s.handleMethodNotAllowed,
		http.MethodDelete:  s.handleMethodNotAllowed,
		http.MethodPatch:   s.handleMethodNotAllowed,
		http.MethodTrace:   s.handleMethodNotAllowed,
		http.MethodConnect: s.handleMethodNotAllowed,
	}
	return s
}

// Handler returns the root handler with logging and panic recovery applied.
func (s *Server) Handler() http.Handler {
	return s.instrument(http.HandlerFunc(s.dispatch))
}

// Start begins serving HTTP. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.ln = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.logger.Info("web search server listening", map[string]any{"addr": ln.Addr().String()})
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Addr returns the bound listener address, or "" before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	h, ok := s.methods[r.Method]
	if !ok {
		writeText(w, http.StatusNotImplemented, "501 Unsupported method")
		return
	}
	h(w, r)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", "/index.html":
		s.handlePage(w, r)
	case "/search":
		s.handleSearchGet(w, r)
	case "/healthz":
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/search":
		s.handleSearchPost(w, r)
	case r.URL.Path == "/chat" && s.sessions != nil:
		s.handleChat(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, OPTIONS, HEAD")
	writeText(w, http.StatusMethodNotAllowed, "405 Method Not Allowed")
}

type pageData struct {
	ProxyBasePath string
	BaseHref      string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{ProxyBasePath: s.cfg.ProxyBasePath, BaseHref: s.cfg.BaseHref}
	if s.cfg.TrustForwardedPrefix {
		if prefix := forwardedPrefix(r); prefix != "" {
			data.ProxyBasePath = prefix
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := page.Execute(w, data); err != nil {
		s.logger.Error("rendering page", map[string]any{"error": err.Error()})
	}
}
