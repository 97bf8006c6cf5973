package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
log:
  level: debug
  format: text
database:
  dsn: "host=db user=app dbname=jobs"
redis:
  addr: "localhost:6379"
  channel: "shopfloor"
minio:
  endpoint: "localhost:9000"
  access_key: "key"
  secret_key: "secret"
  bucket: "attachments"
  expire_days: 3
auth:
  jwt_secret: "secret"
  token_expire_hours: 12
workflow:
  allow_implicit_steps: true
users:
  - username: admin
    password: pass
    role: supervisor
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.Redis.Channel != "shopfloor" {
		t.Errorf("Expected channel shopfloor, got %s", cfg.Redis.Channel)
	}
	if cfg.Minio.ExpireDays != 3 {
		t.Errorf("Expected expire_days 3, got %d", cfg.Minio.ExpireDays)
	}
	if cfg.Auth.TokenExpireHours != 12 {
		t.Errorf("Expected 12 hours, got %d", cfg.Auth.TokenExpireHours)
	}
	if !cfg.Workflow.AllowImplicitSteps {
		t.Error("Expected implicit steps enabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=db"
auth:
  jwt_secret: "secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Redis.Channel != "job-updates" {
		t.Errorf("Expected default channel, got %s", cfg.Redis.Channel)
	}
	if cfg.Minio.ExpireDays != 7 {
		t.Errorf("Expected default expire_days 7, got %d", cfg.Minio.ExpireDays)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default 24 hours, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Workflow.AllowImplicitSteps {
		t.Error("Expected implicit steps disabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: valid")
	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for invalid yaml")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "admin", Password: "pass", Role: "supervisor"},
			{Username: "op1", Password: "pass", Role: "operator"},
		},
	}

	if u := cfg.FindUser("op1"); u == nil || u.Role != "operator" {
		t.Errorf("Expected operator op1, got %+v", u)
	}
	if u := cfg.FindUser("ghost"); u != nil {
		t.Errorf("Expected nil for unknown user, got %+v", u)
	}
}
