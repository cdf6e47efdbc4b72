package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings Forkify reads at startup.
type Config struct {
	APIURL         string
	APIKey         string
	ResultsPerPage int
	CloseDelay     time.Duration
	RequestTimeout time.Duration
	DataDir        string
}

const (
	defaultConfigPath     = "~/.config/forkify/config.toml"
	defaultDataDir        = "~/.local/share/forkify"
	defaultAPIURL         = "https://forkify-api.herokuapp.com/api/v2/recipes"
	defaultResultsPerPage = 10
	defaultCloseDelay     = 2500 * time.Millisecond
	defaultRequestTimeout = 10 * time.Second

	// APIKeyEnv overrides api_key when set, either in the environment or in
	// a .env file in the working directory.
	APIKeyEnv = "FORKIFY_API_KEY"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := cfg.parse(file); err != nil {
			return Config{}, err
		}
	}

	if key := apiKeyFromEnv(); key != "" {
		cfg.APIKey = key
	}
	cfg.DataDir = mustExpand(cfg.DataDir)
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		ResultsPerPage: defaultResultsPerPage,
		CloseDelay:     defaultCloseDelay,
		RequestTimeout: defaultRequestTimeout,
		DataDir:        defaultDataDir,
	}
}

func (c *Config) parse(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string  `toml:"api_url"`
		APIKey                string  `toml:"api_key"`
		ResultsPerPage        int     `toml:"results_per_page"`
		CloseDelaySeconds     float64 `toml:"close_delay_seconds"`
		RequestTimeoutSeconds float64 `toml:"request_timeout_seconds"`
		DataDir               string  `toml:"data_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	c.APIKey = strings.TrimSpace(raw.APIKey)
	if raw.ResultsPerPage > 0 {
		c.ResultsPerPage = raw.ResultsPerPage
	}
	if raw.CloseDelaySeconds > 0 {
		c.CloseDelay = seconds(raw.CloseDelaySeconds)
	}
	if raw.RequestTimeoutSeconds > 0 {
		c.RequestTimeout = seconds(raw.RequestTimeoutSeconds)
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		c.DataDir = v
	}
	return nil
}

// BookmarksPath returns the bbolt database holding bookmarks.
func (c Config) BookmarksPath() string {
	return filepath.Join(c.dataDir(), "bookmarks.db")
}

// LogPath returns the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "forkify.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// apiKeyFromEnv prefers the process environment over a .env file.
func apiKeyFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(APIKeyEnv)); v != "" {
		return v
	}
	values, err := godotenv.Read()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(values[APIKeyEnv])
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
