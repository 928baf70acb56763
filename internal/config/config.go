package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken    string `yaml:"bot_token"`
		AdminChatID int64  `yaml:"admin_chat_id"`
	} `yaml:"telegram"`
	Portals struct {
		BaseURL         string        `yaml:"base_url"`
		AuthData        string        `yaml:"auth_data"`
		AuthFile        string        `yaml:"auth_file"`
		HistoryLimit    int           `yaml:"history_limit"`
		RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"portals"`
	Session struct {
		StateFile string        `yaml:"state_file"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"session"`
	Icons struct {
		URLTemplate string        `yaml:"url_template"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"icons"`
	Gifts struct {
		CatalogPath string `yaml:"catalog_path"`
	} `yaml:"gifts"`
	Render struct {
		FontPaths []string `yaml:"font_paths"`
		AssetDir  string   `yaml:"asset_dir"`
		Watermark string   `yaml:"watermark"`
		Seed      int64    `yaml:"seed"`
	} `yaml:"render"`
	Chart struct {
		Window    time.Duration `yaml:"window"`
		MaxPoints int           `yaml:"max_points"`
	} `yaml:"chart"`
	Rates struct {
		TONPerStar float64 `yaml:"ton_per_star"`
		USDPerTON  float64 `yaml:"usd_per_ton"`
	} `yaml:"rates"`
	Bot struct {
		RateLimit     time.Duration `yaml:"rate_limit"`
		MaxConcurrent int64         `yaml:"max_concurrent"`
		UpdateTimeout time.Duration `yaml:"update_timeout"`
	} `yaml:"bot"`
	Schedule struct {
		SessionRefreshCron string `yaml:"session_refresh_cron"`
		PruneCron          string `yaml:"prune_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.AdminChatID = id
		}
	}
	if v := os.Getenv("PORTALS_AUTH_DATA"); v != "" {
		cfg.Portals.AuthData = v
	}
	if v := os.Getenv("PORTALS_AUTH_FILE"); v != "" {
		cfg.Portals.AuthFile = v
	}
	if v := os.Getenv("PORTALS_BASE_URL"); v != "" {
		cfg.Portals.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("FONT_PATHS"); v != "" {
		cfg.Render.FontPaths = splitList(v)
	}

	// Defaults
	if cfg.Portals.BaseURL == "" {
		cfg.Portals.BaseURL = "https://portal-market.com/api"
	}
	if cfg.Portals.HistoryLimit == 0 {
		cfg.Portals.HistoryLimit = 1000000
	}
	if cfg.Portals.RateLimitPerSec == 0 {
		cfg.Portals.RateLimitPerSec = 5
	}
	if cfg.Portals.Timeout == 0 {
		cfg.Portals.Timeout = 15 * time.Second
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session.json"
	}
	if cfg.Icons.Timeout == 0 {
		cfg.Icons.Timeout = 10 * time.Second
	}
	if cfg.Render.AssetDir == "" {
		cfg.Render.AssetDir = "assets"
	}
	if cfg.Render.Watermark == "" {
		cfg.Render.Watermark = "@GiftChartBot"
	}
	if cfg.Chart.Window == 0 {
		cfg.Chart.Window = 12 * time.Hour
	}
	if cfg.Chart.MaxPoints == 0 {
		cfg.Chart.MaxPoints = 80
	}
	if cfg.Rates.TONPerStar == 0 {
		cfg.Rates.TONPerStar = 0.0053
	}
	if cfg.Rates.USDPerTON == 0 {
		cfg.Rates.USDPerTON = 2.90
	}
	if cfg.Bot.RateLimit == 0 {
		cfg.Bot.RateLimit = 10 * time.Second
	}
	if cfg.Bot.MaxConcurrent == 0 {
		cfg.Bot.MaxConcurrent = 4
	}
	if cfg.Bot.UpdateTimeout == 0 {
		cfg.Bot.UpdateTimeout = 2 * time.Minute
	}
	if cfg.Schedule.SessionRefreshCron == "" {
		cfg.Schedule.SessionRefreshCron = "0 0 */6 * * *"
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 */10 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/giftchart.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Portals.AuthData == "" && c.Portals.AuthFile == "" {
		return fmt.Errorf("portals.auth_data or portals.auth_file is required")
	}
	if c.Chart.MaxPoints < 2 {
		return fmt.Errorf("chart.max_points must be at least 2")
	}
	if c.Chart.Window <= 0 {
		return fmt.Errorf("chart.window must be positive")
	}
	if c.Rates.TONPerStar <= 0 || c.Rates.USDPerTON <= 0 {
		return fmt.Errorf("rates must be positive")
	}
	if c.Bot.MaxConcurrent < 1 {
		return fmt.Errorf("bot.max_concurrent must be at least 1")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
