package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	UpstreamBaseURL string   `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamToken   string   `mapstructure:"UPSTREAM_TOKEN"`
	DayStartHour    int      `mapstructure:"DAY_START_HOUR"`
	DayEndHour      int      `mapstructure:"DAY_END_HOUR"`
	RowHeightPx     float64  `mapstructure:"ROW_HEIGHT_PX"`
	MinEventHeight  float64  `mapstructure:"MIN_EVENT_HEIGHT_PX"`
	ColumnPadPct    float64  `mapstructure:"COLUMN_PAD_PCT"`
	ScrollLeadPx    float64  `mapstructure:"SCROLL_LEAD_PX"`
	RefreshSpec     string   `mapstructure:"REFRESH_SPEC"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DAY_START_HOUR", 8)
	v.SetDefault("DAY_END_HOUR", 20)
	v.SetDefault("ROW_HEIGHT_PX", 164)
	v.SetDefault("MIN_EVENT_HEIGHT_PX", 96)
	v.SetDefault("COLUMN_PAD_PCT", 4)
	v.SetDefault("SCROLL_LEAD_PX", 120)
	v.SetDefault("REFRESH_SPEC", "@every 1m")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("UPSTREAM_BASE_URL")
	v.BindEnv("UPSTREAM_TOKEN")
	v.BindEnv("DAY_START_HOUR")
	v.BindEnv("DAY_END_HOUR")
	v.BindEnv("ROW_HEIGHT_PX")
	v.BindEnv("MIN_EVENT_HEIGHT_PX")
	v.BindEnv("COLUMN_PAD_PCT")
	v.BindEnv("SCROLL_LEAD_PX")
	v.BindEnv("REFRESH_SPEC")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run: the hour window must
// be renderable and the upstream URL must look like an HTTP endpoint.
func (c *Config) Validate() error {
	if c.DayStartHour < 0 || c.DayEndHour > 24 || c.DayStartHour >= c.DayEndHour {
		return fmt.Errorf("DAY_START_HOUR..DAY_END_HOUR must be a valid window within 0..24, got %d..%d",
			c.DayStartHour, c.DayEndHour)
	}
	if c.RowHeightPx <= 0 {
		return fmt.Errorf("ROW_HEIGHT_PX must be positive, got %v", c.RowHeightPx)
	}
	if c.MinEventHeight < 0 {
		return fmt.Errorf("MIN_EVENT_HEIGHT_PX must not be negative, got %v", c.MinEventHeight)
	}
	if c.ColumnPadPct < 0 || c.ColumnPadPct >= 100 {
		return fmt.Errorf("COLUMN_PAD_PCT must be in [0, 100), got %v", c.ColumnPadPct)
	}
	if !strings.HasPrefix(c.UpstreamBaseURL, "http://") && !strings.HasPrefix(c.UpstreamBaseURL, "https://") {
		return fmt.Errorf("UPSTREAM_BASE_URL must be an http(s) URL, got %q", c.UpstreamBaseURL)
	}
	return nil
}
