// Package config resolves ghprofile settings from the environment, an optional
// YAML file and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends for the recent-search list.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

const (
	defaultAPIURL  = "https://api.github.com"
	defaultTimeout = 15 * time.Second
)

var defaultSuggestions = []string{"torvalds", "gaearon", "sindresorhus"}

// Config holds application configuration.
type Config struct {
	HomeDir     string
	APIURL      string
	Token       string
	Timeout     time.Duration
	Store       string
	Suggestions []string
	Debug       bool
}

// fileConfig is the shape of <home>/config.yaml.
type fileConfig struct {
	APIURL      string   `yaml:"api_url"`
	Token       string   `yaml:"token"`
	Timeout     string   `yaml:"timeout"`
	Store       string   `yaml:"store"`
	Suggestions []string `yaml:"suggestions"`
	Debug       bool     `yaml:"debug"`
}

// Environment lookup, replaceable in tests.
type lookupFunc func(string) (string, bool)

// Load resolves configuration from the process environment.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup lookupFunc) (*Config, error) {
	home, err := homeDir(lookup)
	if err != nil {
		return nil, err
	}

	fc, err := readFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HomeDir:     home,
		APIURL:      firstNonEmpty(env(lookup, "GHPROFILE_API_URL"), fc.APIURL, defaultAPIURL),
		Token:       strings.TrimSpace(firstNonEmpty(env(lookup, "GITHUB_TOKEN"), fc.Token, readTokenFile(home))),
		Store:       strings.ToLower(firstNonEmpty(env(lookup, "GHPROFILE_STORE"), fc.Store, StoreFile)),
		Suggestions: defaultSuggestions,
		Debug:       fc.Debug,
	}

	timeout := firstNonEmpty(env(lookup, "GHPROFILE_TIMEOUT"), fc.Timeout)
	cfg.Timeout = defaultTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid timeout %q", timeout)
		}
		cfg.Timeout = d
	}

	switch cfg.Store {
	case StoreFile, StoreSQLite:
	default:
		return nil, fmt.Errorf("config: unknown store %q (want %q or %q)", cfg.Store, StoreFile, StoreSQLite)
	}

	if fc.Suggestions != nil {
		cfg.Suggestions = cleanList(fc.Suggestions)
	}
	if v := env(lookup, "GHPROFILE_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
	return cfg, nil
}

// StatePath returns the location of the recent-search data for the configured store.
func (c *Config) StatePath() string {
	if c.Store == StoreSQLite {
		return filepath.Join(c.HomeDir, "ghprofile.db")
	}
	return filepath.Join(c.HomeDir, "state")
}

// LogPath returns the debug log location.
func (c *Config) LogPath() string {
	return filepath.Join(c.HomeDir, "debug.log")
}

// HasToken reports whether requests will be authenticated.
func (c *Config) HasToken() bool {
	return c.Token != ""
}

func homeDir(lookup lookupFunc) (string, error) {
	if dir := env(lookup, "GHPROFILE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: get home dir: %w", err)
	}
	return filepath.Join(home, ".ghprofile"), nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc, nil
}

// readTokenFile returns the contents of <home>/token, or "" if absent.
func readTokenFile(home string) string {
	data, err := os.ReadFile(filepath.Join(home, "token"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func env(lookup lookupFunc, key string) string {
	v, _ := lookup(key)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
