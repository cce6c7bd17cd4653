package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "consulted")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "consulted")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.Token.TTL != 24*time.Hour {
		t.Errorf("TTL = %v, want 24h", cfg.Token.TTL)
	}
	if got := len(cfg.ProgramCodes); got != 3 {
		t.Errorf("ProgramCodes = %v, want IT,CS,GRAD", cfg.ProgramCodes)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing required variables")
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
app:
  port: "8081"
database:
  user: fromfile
  host: db.internal
  name: consulted
jwt:
  secret: file-secret
  expires_in: 7d
programs: [it, cs]
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_USER", "fromenv")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PROGRAM_CODES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBUser != "fromenv" {
		t.Errorf("DBUser = %q, want env override", cfg.DBUser)
	}
	if cfg.DBHost != "db.internal" || cfg.Port != "8081" {
		t.Errorf("file values not applied: host=%q port=%q", cfg.DBHost, cfg.Port)
	}
	if cfg.Token.TTL != 7*24*time.Hour {
		t.Errorf("TTL = %v, want 168h", cfg.Token.TTL)
	}
	if len(cfg.ProgramCodes) != 2 || cfg.ProgramCodes[0] != "IT" {
		t.Errorf("ProgramCodes = %v", cfg.ProgramCodes)
	}
}

func TestParseExpiresIn(t *testing.T) {
	cases := map[string]time.Duration{
		"24h": 24 * time.Hour,
		"90m": 90 * time.Minute,
		"2d":  48 * time.Hour,
	}
	for in, want := range cases {
		got, err := parseExpiresIn(in)
		if err != nil || got != want {
			t.Errorf("parseExpiresIn(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseExpiresIn("soon"); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	rl := LoadRateLimitConfig()
	if rl.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", rl.Capacity)
	}
	if rl.TTL != 5*time.Second {
		t.Errorf("TTL = %v, want 5s", rl.TTL)
	}
}
