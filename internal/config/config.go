package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/scraper"
	"github.com/pfrederiksen/novel-search/internal/storage"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultConfigPath = "~/.config/novel-search/config.toml"

	// DefaultSearchURL is the Amazon search page opened while annotating
	DefaultSearchURL = "https://www.amazon.com/s?k=%s"

	// DefaultAfter matches the award years the tool was built around
	DefaultAfter = 1990

	EnvDataFile = "NOVEL_SEARCH_DATA_FILE"
	EnvLogLevel = "NOVEL_SEARCH_LOG_LEVEL"
	EnvAfter    = "NOVEL_SEARCH_AFTER"
)

// Config contains all novel-search settings
type Config struct {
	DataFile       string           `toml:"data_file"`
	After          int              `toml:"after"`
	SearchURL      string           `toml:"search_url"`
	UserAgent      string           `toml:"user_agent"`
	TimeoutSeconds int              `toml:"timeout_seconds"`
	LogLevel       string           `toml:"log_level"`
	Sources        []scraper.Source `toml:"sources"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DataFile:       storage.DefaultPath,
		After:          DefaultAfter,
		SearchURL:      DefaultSearchURL,
		UserAgent:      scraper.UserAgent,
		TimeoutSeconds: int(scraper.Timeout / time.Second),
		LogLevel:       "warn",
		Sources:        scraper.DefaultSources(),
	}
}

// SampleConfig returns a commented config file with the default values
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the expanded default config file location
func DefaultConfigPath() (string, error) {
	return storage.ExpandHome(defaultConfigPath)
}

// Load reads the config file at path, or the default location when path is
// empty. It returns the config, the resolved file path and whether that file
// existed. A missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// sources in the file replace the defaults rather than appending to them
		cfg.Sources = nil
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
		if cfg.Sources == nil {
			cfg.Sources = scraper.DefaultSources()
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}

	expanded, err := storage.ExpandHome(strings.TrimSpace(path))
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return "", false, fmt.Errorf("config file not found: %s", expanded)
			}
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path is a directory: %s", expanded)
	}

	return expanded, true, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAfter)); v != "" {
		after, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAfter, v, err)
		}
		c.After = after
	}
	return nil
}

func (c *Config) normalize() error {
	c.DataFile = strings.TrimSpace(c.DataFile)
	c.SearchURL = strings.TrimSpace(c.SearchURL)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	for i := range c.Sources {
		c.Sources[i].Award = strings.TrimSpace(c.Sources[i].Award)
		c.Sources[i].URL = strings.TrimSpace(c.Sources[i].URL)
	}

	expanded, err := storage.ExpandHome(c.DataFile)
	if err != nil {
		return err
	}
	c.DataFile = expanded
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data_file must not be empty")
	}
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	seen := make(map[string]bool)
	for i, src := range c.Sources {
		if src.Award == "" {
			return fmt.Errorf("sources[%d]: award must not be empty", i)
		}
		if strings.Contains(src.Award, "|") {
			return fmt.Errorf("sources[%d]: award %q must not contain '|'", i, src.Award)
		}
		if !strings.HasPrefix(src.URL, "http://") && !strings.HasPrefix(src.URL, "https://") {
			return fmt.Errorf("sources[%d]: url %q must be http or https", i, src.URL)
		}
		if seen[src.Award] {
			return fmt.Errorf("sources[%d]: duplicate award %q", i, src.Award)
		}
		seen[src.Award] = true
	}
	if strings.Count(c.SearchURL, "%s") != 1 {
		return fmt.Errorf("search_url %q must contain exactly one %%s", c.SearchURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.After < 0 {
		return fmt.Errorf("after must not be negative, got %d", c.After)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
