// Package config loads TaskFlow settings.
//
// Values are resolved in three layers: built-in defaults, an optional TOML file
// ($TASKFLOW_CONFIG, or config.toml in the data directory), then environment
// variables. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yukikurage/taskflow/internal/constants"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver     string `toml:"db_driver"`
	DBPath       string `toml:"db_path"`
	DBHost       string `toml:"db_host"`
	DBPort       string `toml:"db_port"`
	DBUser       string `toml:"db_user"`
	DBPassword   string `toml:"db_password"`
	DBName       string `toml:"db_name"`
	ListenAddr   string `toml:"listen_addr"`
	GinMode      string `toml:"gin_mode"`
	LogLevel     string `toml:"log_level"`
	SeedDefaults bool   `toml:"seed_defaults"`
	// ServerURL points the CLI at a running server. Empty means open the database directly.
	ServerURL string `toml:"server_url"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DBDriver:     DriverSQLite,
		DBPath:       filepath.Join(DataDir(), constants.DatabaseFile),
		DBHost:       "localhost",
		DBPort:       "",
		DBUser:       "taskflow",
		DBPassword:   "",
		DBName:       "taskflow",
		ListenAddr:   "127.0.0.1:8080",
		GinMode:      "release",
		LogLevel:     "warn",
		SeedDefaults: true,
	}
}

// Load resolves the configuration from defaults, the config file and the environment
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := FilePath()
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePath returns the config file location and whether it was set explicitly
func FilePath() (string, bool) {
	if p := os.Getenv("TASKFLOW_CONFIG"); p != "" {
		return p, true
	}
	return filepath.Join(DataDir(), constants.ConfigFileName), false
}

// DataDir returns the per-user data directory, honouring XDG_DATA_HOME
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, constants.AppName)
}

func (c *Config) loadFile(path string, explicit bool) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.ListenAddr = getEnv("LISTEN_ADDR", c.ListenAddr)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.ServerURL = getEnv("TASKFLOW_SERVER_URL", c.ServerURL)
	if v, ok := getEnvBool("SEED_DEFAULTS"); ok {
		c.SeedDefaults = v
	}
}

// Port returns db_port, or the standard port of the configured driver when it is unset
func (c *Config) Port() string {
	if c.DBPort != "" {
		return c.DBPort
	}
	switch c.DBDriver {
	case DriverMySQL:
		return "3306"
	case DriverPostgres:
		return "5432"
	}
	return ""
}

// Validate checks that the configuration can be used to open a store
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for the sqlite driver")
		}
	case DriverMySQL, DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("db_host and db_name are required for the %s driver", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	switch strings.ToLower(c.LogLevel) {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
