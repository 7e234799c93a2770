package infra

import (
	"context"
	"net/http"
)

// Server fronts the REST API with an http.Server whose timeouts all come
// from Config, so slow readers and idle keep-alives are bounded per
// deployment rather than by compiled-in values.
type Server struct {
	srv *http.Server
}

func NewHTTPServer(cfg *Config, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadHeaderTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}}
}

// Start serves requests until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and drains in-flight requests until
// ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
