package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"submission-spool/internal/spool"
)

// Config carries everything the HTTP server needs. The spool and the
// metrics aggregate are the only mutable state; both are owned by the
// Server and shared across handlers by reference.
type Config struct {
	Addr          string
	Spool         *spool.Dir
	JWTSecret     string
	MaxBodyBytes  int64
	IndexHTMLPath string

	// RateLimit requests per RateWindow per client IP; zero disables
	// the limiter.
	RateLimit  int
	RateWindow time.Duration
}

type Server struct {
	httpServer    *http.Server
	spool         *spool.Dir
	auth          authConfig
	metrics       *Metrics
	maxBodyBytes  int64
	indexHTMLPath string
}

// New wires the endpoints and the middleware chain. The submission, status
// and authtest endpoints sit behind the authentication gate; landing page,
// metrics and health do not.
func New(cfg Config) *Server {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	s := &Server{
		spool:         cfg.Spool,
		auth:          authConfig{secret: cfg.JWTSecret},
		metrics:       NewMetrics(),
		maxBodyBytes:  maxBody,
		indexHTMLPath: cfg.IndexHTMLPath,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/submit", s.requireAuth(s.handleSubmit))
	mux.HandleFunc("/status", s.requireAuth(s.handleStatus))
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/authtest", s.requireAuth(s.handleAuthTest))

	// Wrap middleware: requestID -> logging -> ratelimit -> headers -> mux
	var handler http.Handler = mux
	handler = securityHeadersMiddleware(handler)
	if cfg.RateLimit > 0 {
		handler = newRateLimiter(cfg.RateLimit, cfg.RateWindow).middleware(handler)
	}
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Metrics exposes the server's counter aggregate.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
