package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "WORLDSEED_CONFIG"

// DefaultPath is used when EnvPath is not set.
const DefaultPath = "config/worldseed.yaml"

// Seeder holds all configuration for the world seeding tool.
type Seeder struct {
	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Content
	ContentDir   string `yaml:"content_dir"` // пусто → встроенные карты
	SealOnFinish bool   `yaml:"seal_on_finish"`

	// Persistence
	Persist  bool           `yaml:"persist"`
	Force    bool           `yaml:"force"` // перезаписывать карты с тем же digest
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// SlogLevel maps LogLevel onto slog. Unknown values are an error.
func (s Seeder) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// DefaultSeeder returns Seeder config with sensible defaults.
func DefaultSeeder() Seeder {
	return Seeder{
		LogLevel:     "info",
		SealOnFinish: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "worldseed",
			Password: "worldseed",
			DBName:   "worldseed",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config location, honouring EnvPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadSeeder loads seeder config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSeeder(path string) (Seeder, error) {
	cfg := DefaultSeeder()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
