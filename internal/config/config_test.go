package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresUpstreamBaseURL(t *testing.T) {
	os.Unsetenv("UPSTREAM_BASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when UPSTREAM_BASE_URL is missing")
	}
}

func TestLoad_WithUpstreamBaseURL(t *testing.T) {
	os.Setenv("UPSTREAM_BASE_URL", "https://clinic.example.com/api")
	defer os.Unsetenv("UPSTREAM_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UpstreamBaseURL != "https://clinic.example.com/api" {
		t.Errorf("expected UPSTREAM_BASE_URL to be set, got %s", cfg.UpstreamBaseURL)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}

	if cfg.DayStartHour != 8 || cfg.DayEndHour != 20 {
		t.Errorf("expected default hour window 8..20, got %d..%d", cfg.DayStartHour, cfg.DayEndHour)
	}

	if cfg.RowHeightPx != 164 {
		t.Errorf("expected default row height 164, got %v", cfg.RowHeightPx)
	}

	if cfg.RefreshSpec != "@every 1m" {
		t.Errorf("expected default refresh spec '@every 1m', got %s", cfg.RefreshSpec)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		UpstreamBaseURL: "https://clinic.example.com/api",
		DayStartHour:    8,
		DayEndHour:      20,
		RowHeightPx:     164,
		MinEventHeight:  96,
		ColumnPadPct:    4,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted window", func(c *Config) { c.DayStartHour, c.DayEndHour = 20, 8 }},
		{"end past midnight", func(c *Config) { c.DayEndHour = 25 }},
		{"zero row height", func(c *Config) { c.RowHeightPx = 0 }},
		{"negative min height", func(c *Config) { c.MinEventHeight = -1 }},
		{"pad too wide", func(c *Config) { c.ColumnPadPct = 100 }},
		{"non-http upstream", func(c *Config) { c.UpstreamBaseURL = "ftp://clinic.example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
