package infra

import "testing"

func TestLoadConfigDefaultsToMemoryBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StoreBackend != StoreBackendMemory {
		t.Fatalf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBackendMemory)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadConfigPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig expected error for missing DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/yajna")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/yajna" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig expected error for unknown backend")
	}
}

func TestLoadConfigParsesOriginList(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ALLOWED_ORIGINS", "https://yajna.example, https://staging.yajna.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://staging.yajna.example" {
		t.Fatalf("AllowedOrigins = %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigIdentityIssuerNeedsAudience(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("IDENTITY_ISSUER", "https://accounts.example.com")
	t.Setenv("IDENTITY_AUDIENCE", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig expected error for missing IDENTITY_AUDIENCE")
	}
}
