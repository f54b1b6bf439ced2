package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDurationUnmarshalText(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"hours", "8h", 8 * time.Hour, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"compound", "1h30m", 90 * time.Minute, false},
		{"invalid", "eight hours", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for input %q, got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tc.want {
				t.Errorf("got %v, want %v", d.Duration, tc.want)
			}
		})
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}
	if cfg.Jwt.AccessTokenDuration.Duration != 8*time.Hour {
		t.Errorf("access token duration = %v, want 8h", cfg.Jwt.AccessTokenDuration.Duration)
	}
	if cfg.Jwt.RefreshTokenDuration.Duration != 7*24*time.Hour {
		t.Errorf("refresh token duration = %v, want 168h", cfg.Jwt.RefreshTokenDuration.Duration)
	}
	if cfg.Jwt.CodeDuration.Duration != 5*time.Minute {
		t.Errorf("code duration = %v, want 5m", cfg.Jwt.CodeDuration.Duration)
	}
	if cfg.Jwt.AccessSecret == cfg.Jwt.RefreshSecret {
		t.Error("access and refresh secrets must be generated independently")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	content := `
db_file = "shop.db"

[jwt]
access_token_duration = "1h"

[server]
addr = ":9999"
`
	path := filepath.Join(t.TempDir(), "alba.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != "shop.db" {
		t.Errorf("DBFile = %q, want shop.db", cfg.DBFile)
	}
	if cfg.Jwt.AccessTokenDuration.Duration != time.Hour {
		t.Errorf("access token duration = %v, want 1h", cfg.Jwt.AccessTokenDuration.Duration)
	}
	if cfg.Server.Addr != "localhost:9999" {
		t.Errorf("server addr = %q, want localhost:9999", cfg.Server.Addr)
	}
	// Untouched sections keep defaults.
	if cfg.Scheduler.MaxJobsPerTick != 10 {
		t.Errorf("scheduler max jobs = %d, want default 10", cfg.Scheduler.MaxJobsPerTick)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateJwt(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"short access secret", func(c *Config) { c.Jwt.AccessSecret = "short" }, true},
		{"short refresh secret", func(c *Config) { c.Jwt.RefreshSecret = "short" }, true},
		{"short code secret", func(c *Config) { c.Jwt.CodeSecret = "short" }, true},
		{"zero access duration", func(c *Config) { c.Jwt.AccessTokenDuration = Duration{} }, true},
		{"zero code duration", func(c *Config) { c.Jwt.CodeDuration = Duration{} }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateServerAddr(t *testing.T) {
	testCases := []struct {
		name     string
		addr     string
		wantAddr string
		wantErr  bool
	}{
		{"port only", ":8080", "localhost:8080", false},
		{"host and port", "example.com:8080", "example.com:8080", false},
		{"empty", "", "", true},
		{"no port", "example.com", "", true},
		{"bad port", ":notaport", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Server.Addr = tc.addr
			err := Validate(cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			if cfg.Server.Addr != tc.wantAddr {
				t.Errorf("addr = %q, want %q", cfg.Server.Addr, tc.wantAddr)
			}
		})
	}
}

func TestValidateSmtpEnabled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Smtp.Enabled = true
	cfg.Smtp.FromAddress = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for enabled smtp without from_address")
	}

	cfg.Smtp.FromAddress = "shop@example.com"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProviderUpdate(t *testing.T) {
	first := NewDefaultConfig()
	provider := NewProvider(first)

	if got := provider.Get(); got != first {
		t.Fatal("Get did not return the initial config")
	}

	second := NewDefaultConfig()
	second.Server.Addr = "localhost:9000"
	provider.Update(second)

	if got := provider.Get(); got != second {
		t.Fatal("Get did not return the updated config")
	}
}
