package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "15m" decode directly
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	d.Duration = parsed
	return nil
}

// Config holds all application configuration
type Config struct {
	Server struct {
		Port         int      `yaml:"port"`
		ReadTimeout  Duration `yaml:"read_timeout"`
		WriteTimeout Duration `yaml:"write_timeout"`
		CORSOrigins  []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Params   string `yaml:"params"`
	} `yaml:"database"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret          string   `yaml:"secret"`
		AccessTokenTTL  Duration `yaml:"access_token_ttl"`
		RefreshTokenTTL Duration `yaml:"refresh_token_ttl"`
	} `yaml:"jwt"`

	Storage struct {
		Enabled         bool   `yaml:"enabled"`
		Endpoint        string `yaml:"endpoint"`
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
		Bucket          string `yaml:"bucket"`
		CDNURL          string `yaml:"cdn_url"`
		BasePath        string `yaml:"base_path"`
		ForcePathStyle  bool   `yaml:"force_path_style"`
	} `yaml:"storage"`
}

// Load reads a yaml config file and applies environment variable overrides.
// Secrets are expected from the environment in production; the yaml values
// are deployment defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set JWT_SECRET)")
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = Duration{10 * time.Second}
	cfg.Server.WriteTimeout = Duration{30 * time.Second}
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 3306
	cfg.Database.Name = "vinea"
	cfg.Database.Params = "charset=utf8mb4&parseTime=True&loc=UTC"
	cfg.Redis.Port = 6379
	cfg.Redis.PoolSize = 10
	cfg.JWT.AccessTokenTTL = Duration{15 * time.Minute}
	cfg.JWT.RefreshTokenTTL = Duration{24 * time.Hour}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Database.Host, "DB_HOST")
	setStr(&cfg.Database.User, "DB_USER")
	setStr(&cfg.Database.Password, "DB_PASSWORD")
	setStr(&cfg.Database.Name, "DB_NAME")
	setStr(&cfg.Redis.Host, "REDIS_HOST")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setStr(&cfg.JWT.Secret, "JWT_SECRET")
	setStr(&cfg.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setStr(&cfg.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Params)
}
