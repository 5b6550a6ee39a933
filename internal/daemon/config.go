// Package daemon handles configuration and home-directory layout for the
// Dev vs Byte engine process.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the engine configuration, loaded from config.toml in the
// engine home directory.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Game    GameConfig    `toml:"game"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the listen address in host:port form.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig configures the sqlite database location.
type StorageConfig struct {
	// Path overrides the database location. Empty means
	// <home>/devbyte.db.
	Path string `toml:"path"`
}

// GameConfig holds gameplay policy switches.
type GameConfig struct {
	// DailyReset lets daily tasks be completed again 24h after the
	// previous completion.
	DailyReset bool `toml:"daily_reset"`
	// Notifications enables user-facing popups and log notices.
	Notifications bool `toml:"notifications"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7373,
		},
		Game: GameConfig{
			DailyReset:    true,
			Notifications: true,
		},
	}
}

// ─── Home Directory ─────────────────────────────────────────────────────────

// Home returns the engine home directory. DEVBYTE_HOME overrides the
// default ~/.devbyte.
func Home() string {
	if env := os.Getenv("DEVBYTE_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devbyte"
	}
	return filepath.Join(home, ".devbyte")
}

// EnsureHome creates the home directory if missing and returns it.
func EnsureHome() (string, error) {
	dir := Home()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create home directory: %w", err)
	}
	return dir, nil
}

// DatabasePath resolves the sqlite file location for this config.
func (c Config) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(Home(), "devbyte.db")
}

// ─── Loading ────────────────────────────────────────────────────────────────

// Load reads a config file, layering it over the defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromHome reads <home>/config.toml.
func LoadFromHome() (Config, error) {
	return Load(filepath.Join(Home(), "config.toml"))
}
