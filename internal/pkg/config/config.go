package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      LogConfig             `yaml:"log"`
	Store    StoreConfig           `yaml:"store"`
	Postgres PostgresConfig        `yaml:"postgres"`
	Telegram TelegramConfig        `yaml:"telegram"`
	Updater  UpdaterConfig         `yaml:"updater"`
	Server   ServerConfig          `yaml:"server"`
	Games    map[string]GameConfig `yaml:"games"`
	Sources  SourcesConfig         `yaml:"sources"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type StoreConfig struct {
	Dir  string `yaml:"dir"`
	Keep int    `yaml:"keep"` // retained records per game
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty disables the archive
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // empty disables notifications
	ChatID   int64  `yaml:"chat_id"`
}

type UpdaterConfig struct {
	Interval   time.Duration `yaml:"interval"`    // -loop re-run interval
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`     // per-request transport timeout
	IssueDelay time.Duration `yaml:"issue_delay"` // pause between per-issue vendor fetches
	MaxAdvance int           `yaml:"max_advance"` // forward-walk bound per run
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type GameConfig struct {
	// Sources to consult, in priority order. Names must be registered.
	Sources []string `yaml:"sources"`
	// Issue to walk from when the store is empty, canonical 7-digit form.
	SeedIssue string `yaml:"seed_issue"`
}

type SourcesConfig struct {
	CWL       CWLConfig       `yaml:"cwl"`
	W500      W500Config      `yaml:"w500"`
	X500      X500Config      `yaml:"x500"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Sporttery SportteryConfig `yaml:"sporttery"`
}

type CWLConfig struct {
	BaseURL    string `yaml:"base_url"`
	IssueCount int    `yaml:"issue_count"`
}

type W500Config struct {
	BaseURL string `yaml:"base_url"`
}

type X500Config struct {
	BaseURL string `yaml:"base_url"`
}

type MirrorConfig struct {
	URL string `yaml:"url"`
}

type SportteryConfig struct {
	BaseURL string `yaml:"base_url"`
	// Vendor-side numeric code per game ID (e.g. dlt: "85").
	GameCodes map[string]string `yaml:"game_codes"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "data"
	}
	if c.Store.Keep <= 0 {
		c.Store.Keep = 50
	}
	if c.Updater.Interval <= 0 {
		c.Updater.Interval = 6 * time.Hour
	}
	if c.Updater.UserAgent == "" {
		c.Updater.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Updater.Timeout <= 0 {
		c.Updater.Timeout = 20 * time.Second
	}
	if c.Updater.IssueDelay <= 0 {
		c.Updater.IssueDelay = 2 * time.Second
	}
	if c.Updater.MaxAdvance <= 0 {
		c.Updater.MaxAdvance = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
}
