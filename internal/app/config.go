package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lingo/internal/domain"
	"lingo/internal/gateway"
)

// Storage backends selectable in Config.Storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds runtime wiring options for building the app.
//
// Values are layered: defaults, then the YAML file, then LINGO_* environment
// variables, then command-line flags applied by the caller.
type Config struct {
	Home      string        `yaml:"home"`       // state directory, e.g. $HOME/.lingo
	APIURL    string        `yaml:"api_url"`    // API base, e.g. http://localhost:5130/api
	Timeout   time.Duration `yaml:"timeout"`    // per-request timeout
	RateLimit float64       `yaml:"rate_limit"` // requests per second; 0 disables
	RateBurst int           `yaml:"rate_burst"`
	Storage   string        `yaml:"storage"` // file, sqlite or memory

	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Serve   ServeConfig   `yaml:"serve"`

	// Never read from the file.
	Passphrase string           `yaml:"-"`
	HTTP       *http.Client     `yaml:"-"` // optional; built from Timeout when nil
	Navigator  domain.Navigator `yaml:"-"`
	LogOutput  io.Writer        `yaml:"-"` // defaults to os.Stderr
}

type SessionConfig struct {
	Policy string `yaml:"policy"` // trust or verify
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a working configuration rooted at home.
func DefaultConfig(home string) *Config {
	return &Config{
		Home:      home,
		APIURL:    gateway.DefaultBaseURL,
		Timeout:   30 * time.Second,
		RateBurst: 1,
		Storage:   StorageFile,
		Session:   SessionConfig{Policy: "trust"},
		Log:       LogConfig{Level: "warn", Format: "text"},
		Serve:     ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// DefaultHome returns ~/.lingo.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".lingo"), nil
}

// LoadConfig reads path over the defaults. An empty path or a missing file
// yields the defaults unchanged; an unreadable or malformed file is an error.
func LoadConfig(path string, defaults *Config) (*Config, error) {
	cfg := defaults
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays LINGO_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set("LINGO_HOME", &c.Home)
	set("LINGO_API_URL", &c.APIURL)
	set("LINGO_STORAGE", &c.Storage)
	set("LINGO_SESSION_POLICY", &c.Session.Policy)
	set("LINGO_LOG_LEVEL", &c.Log.Level)
	set("LINGO_LOG_FORMAT", &c.Log.Format)
	set("LINGO_SERVE_ADDR", &c.Serve.Addr)
	if v := getenv("LINGO_PASSPHRASE"); v != "" {
		c.Passphrase = v
	}
	if v := strings.TrimSpace(getenv("LINGO_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LINGO_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(getenv("LINGO_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LINGO_RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
	}
	return nil
}

// Validate checks the fields NewWire depends on.
func (c *Config) Validate() error {
	if c.Home == "" && c.Storage != StorageMemory {
		return errors.New("config: home directory is required")
	}
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if c.Timeout < 0 || c.RateLimit < 0 {
		return errors.New("config: timeout and rate_limit must not be negative")
	}
	return nil
}
