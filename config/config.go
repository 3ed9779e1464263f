package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Hotel        HotelConfig        `yaml:"hotel"`
	Auth         AuthConfig         `yaml:"auth"`
	Push         PushConfig         `yaml:"push"`
	WorkerPool   WorkerPoolConfig   `yaml:"worker_pool"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // postgres, mysql or sqlite
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	SeedRoomTypes          bool   `yaml:"seed_room_types"`
}

// HotelConfig holds operational settings shared by every tenant.
type HotelConfig struct {
	Timezone    string         `yaml:"timezone"`
	Location    *time.Location `yaml:"-"`
	SearchLimit int            `yaml:"search_limit"`
	LogLimit    int            `yaml:"log_limit"`
}

// AuthConfig controls how the acting tenant is resolved.
type AuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	TenantHeader string `yaml:"tenant_header"`
}

// HousekeepingConfig schedules the daily start of cleaning.
type HousekeepingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	StartDayAt string `yaml:"start_day_at"` // HH:MM, hotel time
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets secrets come from the environment instead of the file.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DRIVER")); v != "" {
		cfg.Database.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("VAPID_PRIVATE_KEY")); v != "" {
		cfg.Push.PrivateKey = v
	}
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	switch cfg.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Hotel.Timezone == "" {
		cfg.Hotel.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(cfg.Hotel.Timezone)
	if err != nil {
		return fmt.Errorf("invalid hotel timezone %q: %w", cfg.Hotel.Timezone, err)
	}
	cfg.Hotel.Location = loc
	if cfg.Hotel.SearchLimit <= 0 {
		cfg.Hotel.SearchLimit = 5
	}
	if cfg.Hotel.LogLimit <= 0 {
		cfg.Hotel.LogLimit = 20
	}

	if cfg.Auth.TenantHeader == "" {
		cfg.Auth.TenantHeader = "X-Tenant-ID"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Housekeeping.StartDayAt == "" {
		cfg.Housekeeping.StartDayAt = "07:00"
	}
	return nil
}
