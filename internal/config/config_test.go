package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caretide/triage/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8000
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "triage"
user = "triage"
password = "triage"
ssl_mode = "disable"

[storage]
container_name = "exports"
connection_string = "DefaultEndpointsProtocol=http;AccountName=triagestore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/triagestore;"

[api]
base_path = "/api"
max_upload_size = "100MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[auth]
client_id = "client"
client_secret = "secret"
redirect_url = "http://localhost:8000/api/auth/callback"
allowed_domain = "example.com"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[auth]
cookie_secure = true
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("server port: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Name != "triage" {
		t.Errorf("db name: got %s, want triage", cfg.Database.Name)
	}
	if cfg.Storage.ContainerName != "exports" {
		t.Errorf("storage container: got %s, want exports", cfg.Storage.ContainerName)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 100*1024*1024 {
		t.Errorf("max upload size: got %d, want 100MB", got)
	}
	if cfg.Auth.AllowedDomain != "example.com" {
		t.Errorf("allowed_domain: got %s, want example.com", cfg.Auth.AllowedDomain)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("TRIAGE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if !cfg.Auth.CookieSecure {
		t.Error("cookie_secure: got false, want true (from overlay)")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("TRIAGE_DB_HOST", "envhost")
	t.Setenv("TRIAGE_AUTH_ALLOWED_DOMAIN", "corp.example.com")
	t.Setenv("TRIAGE_AUTH_SESSION_TTL", "8h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Host != "envhost" {
		t.Errorf("db host: got %s, want envhost (from env)", cfg.Database.Host)
	}
	if cfg.Auth.AllowedDomain != "corp.example.com" {
		t.Errorf("allowed_domain: got %s, want corp.example.com (from env)", cfg.Auth.AllowedDomain)
	}
	if cfg.Auth.SessionTTLDuration() != 8*time.Hour {
		t.Errorf("session ttl: got %v, want 8h (from env)", cfg.Auth.SessionTTLDuration())
	}
}

func TestAuthDefaults(t *testing.T) {
	cfg := config.AuthConfig{AllowedDomain: "example.com"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Issuer != "https://accounts.google.com" {
		t.Errorf("issuer default: got %s", cfg.Issuer)
	}
	if cfg.CookieName != "triage_session" {
		t.Errorf("cookie name default: got %s", cfg.CookieName)
	}
	if cfg.SessionTTLDuration() != 12*time.Hour {
		t.Errorf("session ttl default: got %v", cfg.SessionTTLDuration())
	}
}

func TestAuthRequiresDomain(t *testing.T) {
	cfg := config.AuthConfig{}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for missing allowed_domain")
	}
}

func TestLoggingDefaults(t *testing.T) {
	cfg := config.LoggingConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Level != "info" {
		t.Errorf("level default: got %s", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("format default: got %s", cfg.Format)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("slog level: got %v", cfg.SlogLevel())
	}
}

func TestLoggingEnvOverrides(t *testing.T) {
	t.Setenv("TRIAGE_LOG_LEVEL", "debug")
	t.Setenv("TRIAGE_LOG_FORMAT", "json")

	cfg := config.LoggingConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("slog level: got %v, want debug", cfg.SlogLevel())
	}
	if cfg.Format != "json" {
		t.Errorf("format: got %s, want json", cfg.Format)
	}
}

func TestLoggingRejectsUnknownLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "verbose"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for unknown level")
	}
}
