package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_FullConfig(t *testing.T) {
	data := []byte(`
database:
  host: db.internal
  port: 3307
  user: fleet
  password: secret
  name: minefleet
http:
  port: 9090
telemetry:
  query_limit: 50
  retention_days: 90
alerts:
  slack_webhook_url: https://hooks.slack.com/services/T00/B00/xyz
  channel: "#fleet-alerts"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 3307 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.UseMySQL() {
		t.Error("UseMySQL() = false, want true")
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("http.port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Telemetry.QueryLimit != 50 || cfg.Telemetry.RetentionDays != 90 {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
	if cfg.Alerts.Channel != "#fleet-alerts" {
		t.Errorf("alerts.channel = %q", cfg.Alerts.Channel)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("database.port = %d, want 3306", cfg.Database.Port)
	}
	if cfg.Database.SQLitePath != "minefleet.db" {
		t.Errorf("database.sqlite_path = %q, want minefleet.db", cfg.Database.SQLitePath)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("http.port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Telemetry.QueryLimit != 100 {
		t.Errorf("telemetry.query_limit = %d, want 100", cfg.Telemetry.QueryLimit)
	}
	if cfg.UseMySQL() {
		t.Error("UseMySQL() = true with no MySQL settings, want false")
	}
}

func TestParse_SQLiteFallback(t *testing.T) {
	// Host alone is not enough; user and db name must also be present.
	cfg, err := Parse([]byte("database:\n  host: db.internal\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.UseMySQL() {
		t.Error("UseMySQL() = true with incomplete MySQL settings")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "database: [", "config: parse"},
		{"negative retention", "telemetry:\n  retention_days: -1\n", "retention_days"},
		{"bad webhook", "alerts:\n  slack_webhook_url: http://insecure\n", "https"},
		{"port out of range", "http:\n  port: 70000\n", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minefleet.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8181\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("http.port = %d, want 8181", cfg.HTTP.Port)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil for missing file")
	}
}
