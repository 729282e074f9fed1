package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Storage backend names accepted in configuration.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string `mapstructure:"env"`      // current application environment (local, dev, production etc)
	Storage string `mapstructure:"storage"`  // storage backend: "postgres" or "memory"
	HTTP    HTTP   `mapstructure:"http"`     // HTTP server configuration section
	DB      DB     `mapstructure:"database"` // database configuration section
	Assets  Assets `mapstructure:"assets"`   // seed data locations
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port            string        `mapstructure:"port"`             // port the API listens on
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // graceful shutdown grace period
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Assets points at the seed data JSON files.
type Assets struct {
	WordsPath   string `mapstructure:"words_path"`   // path to JSON file with the seed word catalog
	StoriesPath string `mapstructure:"stories_path"` // path to JSON file with the seed stories
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("storage", StoragePostgres)
	v.SetDefault("http.port", "5000")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("assets.words_path", "assets/data/words.json")
	v.SetDefault("assets.stories_path", "assets/data/stories.json")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage", "STORAGE_BACKEND")
	_ = v.BindEnv("http.port", "PORT")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// The connection string is sensitive and only ever comes from the environment.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.Storage == StoragePostgres && cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
