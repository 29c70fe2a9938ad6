package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/keyring"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// KeyringDSN as the database value resolves the connection string from the
// OS keyring.
const KeyringDSN = "keyring"

// ErrEmbeddedCredentials rejects Postgres DSNs that carry a password.
var ErrEmbeddedCredentials = errors.New("database DSN must not embed a password; store it with 'stride db keyring set' and use database: keyring")

// Config holds all runtime settings. Empty fields are filled with defaults
// by Load and DefaultConfig.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	Database  string `yaml:"database"`
	Timezone  string `yaml:"timezone"`
	WeekStart string `yaml:"week_start"`
	Debug     bool   `yaml:"debug"`
}

// DefaultConfig returns the settings used when nothing is configured:
// everything under ~/.stride, local time, weeks starting on Monday.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// DefaultPath is the config file read when Load is given no path.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stride"
	}
	return filepath.Join(home, ".stride")
}

// Load layers, lowest to highest precedence: defaults, the YAML file at path
// (DefaultPath when empty; a missing default file is fine), a .env file in
// the working directory, then STRIDE_* environment variables.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	cfg.applyEnvironmentOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv("STRIDE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STRIDE_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("STRIDE_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("STRIDE_WEEK_START"); v != "" {
		c.WeekStart = v
	}
	if v := os.Getenv("STRIDE_DEBUG"); v != "" {
		c.Debug, _ = strconv.ParseBool(v)
	}
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.Database == "" {
		c.Database = filepath.Join(c.DataDir, "stride.db")
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
}

// Validate checks that every setting can be resolved.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, err := c.WeekStartDay(); err != nil {
		return fmt.Errorf("week_start: %w", err)
	}
	if c.Database != KeyringDSN && db.DialectFor(c.Database) == db.DialectPostgres && hasPassword(c.Database) {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	return calendar.LoadLocation(c.Timezone)
}

func (c Config) WeekStartDay() (calendar.Weekday, error) {
	return calendar.ParseWeekday(c.WeekStart)
}

// DSN returns the connection string to open, consulting the keyring when
// Database is KeyringDSN.
func (c Config) DSN() (string, error) {
	if c.Database != KeyringDSN {
		return c.Database, nil
	}
	dsn, err := keyring.GetConnectionString()
	if err != nil {
		return "", fmt.Errorf("resolving database from keyring: %w", err)
	}
	return dsn, nil
}

func hasPassword(dsn string) bool {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			return true
		}
	}
	for _, field := range strings.Fields(dsn) {
		if strings.HasPrefix(strings.ToLower(field), "password=") {
			return true
		}
	}
	return false
}
