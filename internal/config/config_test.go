package config

import (
	"strings"
	"testing"
	"time"
)

func setAPIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CRM_API_BASE_URL", "https://data.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setAPIEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendAPI {
		t.Errorf("Store.Backend = %q, want api", cfg.Store.Backend)
	}
	if cfg.Import.MaxFileSize != 10*1024*1024 {
		t.Errorf("Import.MaxFileSize = %d, want 10MB", cfg.Import.MaxFileSize)
	}
	if cfg.Import.CommitWidth != 1 {
		t.Errorf("Import.CommitWidth = %d, want 1", cfg.Import.CommitWidth)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	setAPIEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("IMPORT_COMMIT_WIDTH", "8")
	t.Setenv("CRM_API_TIMEOUT", "30s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Import.CommitWidth != 8 {
		t.Errorf("Import.CommitWidth = %d, want 8", cfg.Import.CommitWidth)
	}
	if cfg.Store.APITimeout != 30*time.Second {
		t.Errorf("Store.APITimeout = %v, want 30s", cfg.Store.APITimeout)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadDatabaseURLAlias(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/salesflow")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.DatabaseURL != "postgres://localhost/salesflow" {
		t.Errorf("DatabaseURL = %q, want value from DB_URL", cfg.Store.DatabaseURL)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "api backend without base URL",
			env:     map[string]string{},
			wantMsg: "CRM_API_BASE_URL",
		},
		{
			name: "postgres backend without database URL",
			env: map[string]string{
				"STORE_BACKEND": "postgres",
			},
			wantMsg: "DATABASE_URL",
		},
		{
			name: "unknown backend",
			env: map[string]string{
				"STORE_BACKEND": "dynamo",
			},
			wantMsg: "STORE_BACKEND",
		},
		{
			name: "invalid port",
			env: map[string]string{
				"CRM_API_BASE_URL": "https://x",
				"SERVER_PORT":      "70000",
			},
			wantMsg: "SERVER_PORT",
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"CRM_API_BASE_URL": "https://x",
				"LOG_LEVEL":        "loud",
			},
			wantMsg: "LOG_LEVEL",
		},
		{
			name: "zero commit width",
			env: map[string]string{
				"CRM_API_BASE_URL":    "https://x",
				"IMPORT_COMMIT_WIDTH": "0",
			},
			wantMsg: "IMPORT_COMMIT_WIDTH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want validation failure")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestStringMasksSecrets(t *testing.T) {
	setAPIEnv(t)
	t.Setenv("CRM_API_KEY", "super-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Error("String() leaks the API key")
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Error("String() should mask secrets explicitly")
	}
}
