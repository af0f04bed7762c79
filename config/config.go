package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NewsAPI  NewsAPIConfig  `yaml:"newsapi"`
	Videos   VideosConfig   `yaml:"videos"`
	Cron     CronConfig     `yaml:"cron"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type NewsAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Country        string `yaml:"country"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxPageSize    int    `yaml:"max_page_size"`
	RatePerMinute  int    `yaml:"rate_per_minute"` // 0 disables the limiter
}

type VideosConfig struct {
	// Optional RSS feeds to pull video entries from, on top of the
	// built-in catalog.
	Feeds []string `yaml:"feeds"`
}

type CronConfig struct {
	RefreshSpec string `yaml:"refresh_spec"` // auto-refresh tick
}

// Load reads the yaml config, falling back to defaults when the file
// is missing, then applies environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: "3000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Path: "data/newsdesk.db",
		},
		NewsAPI: NewsAPIConfig{
			BaseURL:        "https://newsapi.org/v2",
			Country:        "us",
			TimeoutSeconds: 10,
			MaxPageSize:    100,
			RatePerMinute:  30,
		},
		Cron: CronConfig{
			RefreshSpec: "* * * * *", // check auto-refresh every minute
		},
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		log.Printf("config file not found: %s, using defaults", configPath)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.NewsAPI.APIKey = key
	}

	return cfg, nil
}

// GetServerAddress returns the listen address, prefixing bare ports
// with a colon.
func (c *Config) GetServerAddress() string {
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
