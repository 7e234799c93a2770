package infra

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPServerAppliesConfig(t *testing.T) {
	cfg := &Config{
		Port:                  "9090",
		HTTPReadTimeout:       10 * time.Second,
		HTTPReadHeaderTimeout: 2 * time.Second,
		HTTPWriteTimeout:      20 * time.Second,
		HTTPIdleTimeout:       45 * time.Second,
	}

	s := NewHTTPServer(cfg, http.NewServeMux())

	if s.srv.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", s.srv.Addr)
	}
	if s.srv.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", s.srv.ReadTimeout)
	}
	if s.srv.ReadHeaderTimeout != 2*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want 2s", s.srv.ReadHeaderTimeout)
	}
	if s.srv.WriteTimeout != 20*time.Second {
		t.Errorf("WriteTimeout = %v, want 20s", s.srv.WriteTimeout)
	}
	if s.srv.IdleTimeout != 45*time.Second {
		t.Errorf("IdleTimeout = %v, want 45s", s.srv.IdleTimeout)
	}
}

func TestLoadConfigDefaultsReadHeaderTimeout(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("HTTP_READ_HEADER_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HTTPReadHeaderTimeout != 5*time.Second {
		t.Fatalf("HTTPReadHeaderTimeout = %v, want 5s", cfg.HTTPReadHeaderTimeout)
	}
}
