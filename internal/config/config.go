package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "sportzone.yml"

// EnvPrefix prefixes every environment override, e.g. SPORTZONE_API_BASE_URL.
const EnvPrefix = "SPORTZONE"

// Session store kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config represents the top-level sportzone.yml configuration
type Config struct {
	Version string        `yaml:"version"`
	API     APIConfig     `yaml:"api"`
	Media   MediaConfig   `yaml:"media"`
	Session SessionConfig `yaml:"session"`
}

// APIConfig locates the backend
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// MediaConfig configures image uploads
type MediaConfig struct {
	CloudName    string `yaml:"cloud_name"`
	UploadPreset string `yaml:"upload_preset"`
	Folder       string `yaml:"folder"`
	APIKey       string `yaml:"api_key,omitempty"`    // optional; enables rollback deletes
	APISecret    string `yaml:"api_secret,omitempty"` // optional; enables rollback deletes
	UploadPrefix string `yaml:"upload_prefix,omitempty"`
}

// SessionConfig controls where the logged-in user is kept between runs
type SessionConfig struct {
	Store     string        `yaml:"store"` // "memory" or "redis"
	RedisAddr string        `yaml:"redis_addr,omitempty"`
	TTL       time.Duration `yaml:"ttl"`
	Profile   string        `yaml:"profile"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL: sportzone.DefaultBaseURL,
			Timeout: sportzone.DefaultTimeout,
		},
		Media: MediaConfig{
			CloudName:    media.DefaultCloudName,
			UploadPreset: media.DefaultUploadPreset,
			Folder:       media.DefaultFolder,
		},
		Session: SessionConfig{
			Store:   StoreMemory,
			TTL:     7 * 24 * time.Hour,
			Profile: "default",
		},
	}
}

var profilePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}

	if c.Media.CloudName == "" {
		return fmt.Errorf("media.cloud_name is required")
	}
	if c.Media.UploadPreset == "" {
		return fmt.Errorf("media.upload_preset is required")
	}
	if (c.Media.APIKey == "") != (c.Media.APISecret == "") {
		return fmt.Errorf("media.api_key and media.api_secret must be set together")
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("session.redis_addr is required when session.store is 'redis'")
		}
	default:
		return fmt.Errorf("invalid session.store: %s (must be 'memory' or 'redis')", c.Session.Store)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must be >= 0 (0 = no expiry), got %s", c.Session.TTL)
	}
	if !profilePattern.MatchString(c.Session.Profile) {
		return fmt.Errorf("invalid session.profile: %q (lowercase letters, digits, '-' and '_')", c.Session.Profile)
	}

	return nil
}

// Parse decodes YAML on top of the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Load reads sportzone.yml from path, applies environment overrides and validates.
// A missing file at DefaultPath yields the defaults; a missing file at any
// other explicitly requested path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := ApplyEnv(cfg, ".env"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv loads dotenvPath (if present) into the process environment without
// overriding variables that are already set, then applies every SPORTZONE_*
// variable on top of cfg.
func ApplyEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	stringKeys := map[string]*string{
		"version":             &cfg.Version,
		"api.base_url":        &cfg.API.BaseURL,
		"media.cloud_name":    &cfg.Media.CloudName,
		"media.upload_preset": &cfg.Media.UploadPreset,
		"media.folder":        &cfg.Media.Folder,
		"media.api_key":       &cfg.Media.APIKey,
		"media.api_secret":    &cfg.Media.APISecret,
		"media.upload_prefix": &cfg.Media.UploadPrefix,
		"session.store":       &cfg.Session.Store,
		"session.redis_addr":  &cfg.Session.RedisAddr,
		"session.profile":     &cfg.Session.Profile,
	}
	for key, dst := range stringKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	durations := map[string]*time.Duration{
		"api.timeout": &cfg.API.Timeout,
		"session.ttl": &cfg.Session.TTL,
	}
	for key, dst := range durations {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
		if !v.IsSet(key) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("invalid %s_%s: %w", EnvPrefix, envName(key), err)
		}
		*dst = d
	}
	return nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
