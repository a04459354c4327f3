// ABOUTME: Logly configuration management and storage factory.
// ABOUTME: JSON config under XDG paths with ~ expansion for overrides.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/obycajnypes/logly/internal/nutrition"
	"github.com/obycajnypes/logly/internal/storage"
)

// Config stores logly tool configuration.
type Config struct {
	// DataDir is the root directory for the tracker database. Supports
	// ~ expansion. Defaults to ~/.local/share/logly.
	DataDir string `json:"data_dir,omitempty"`

	// CacheDir holds the food lookup cache. Defaults to a cache/
	// directory next to the database.
	CacheDir string `json:"cache_dir,omitempty"`

	// FoodAPIBaseURL overrides the food database endpoint.
	FoodAPIBaseURL string `json:"food_api_base_url,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCacheDir returns the lookup cache directory.
func (c *Config) GetCacheDir() string {
	if c.CacheDir == "" {
		return filepath.Join(c.GetDataDir(), "cache")
	}
	return ExpandPath(c.CacheDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the tracker database under the configured data
// directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "logly.db")
	return storage.Open(dbPath)
}

// NewNutritionClient builds the food database client, with the lookup
// cache attached when it can be opened. A cache failure degrades to
// uncached lookups rather than blocking food logging.
func (c *Config) NewNutritionClient() (*nutrition.Client, func()) {
	opts := []nutrition.Option{}
	if c.FoodAPIBaseURL != "" {
		opts = append(opts, nutrition.WithBaseURL(c.FoodAPIBaseURL))
	}

	cleanup := func() {}
	if cache, err := nutrition.OpenCache(c.GetCacheDir()); err == nil {
		opts = append(opts, nutrition.WithCache(cache))
		cleanup = func() { _ = cache.Close() }
	}
	return nutrition.NewClient(opts...), cleanup
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "logly", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
