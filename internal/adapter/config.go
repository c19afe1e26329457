package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/filter"
	"github.com/spf13/viper"
)

const appName = "moodreel"

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Palette PaletteConfig `mapstructure:"palette"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	ImageWidth        string        `mapstructure:"image_width"` // e.g. "w500", "original"
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// FilterConfig holds content filter configuration
type FilterConfig struct {
	BannedTerms    []string `mapstructure:"banned_terms"`
	MinVoteCount   int      `mapstructure:"min_vote_count"`
	MinVoteAverage float64  `mapstructure:"min_vote_average"`
}

// PaletteConfig holds palette extraction configuration
type PaletteConfig struct {
	Colors       int  `mapstructure:"colors"`
	MaxDimension int  `mapstructure:"max_dimension"`
	Persist      bool `mapstructure:"persist"` // keep palettes on disk between runs
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultMood string `mapstructure:"default_mood"`
	DefaultSort string `mapstructure:"default_sort"`
	Browser     string `mapstructure:"browser"` // empty for system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			ImageWidth:        "w500",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 20,
		},
		Filter: FilterConfig{
			BannedTerms:    filter.DefaultBannedTerms(),
			MinVoteCount:   filter.DefaultMinVoteCount,
			MinVoteAverage: filter.DefaultMinVoteAverage,
		},
		Palette: PaletteConfig{
			Colors:       domain.DefaultPaletteSize,
			MaxDimension: 128,
			Persist:      true,
		},
		UI: UIConfig{
			DefaultMood: string(domain.DefaultMood),
			DefaultSort: string(domain.DefaultSortOrder),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// setDefaults registers every key so environment overrides are seen by Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.image_width", cfg.TMDB.ImageWidth)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)

	v.SetDefault("filter.banned_terms", cfg.Filter.BannedTerms)
	v.SetDefault("filter.min_vote_count", cfg.Filter.MinVoteCount)
	v.SetDefault("filter.min_vote_average", cfg.Filter.MinVoteAverage)

	v.SetDefault("palette.colors", cfg.Palette.Colors)
	v.SetDefault("palette.max_dimension", cfg.Palette.MaxDimension)
	v.SetDefault("palette.persist", cfg.Palette.Persist)

	v.SetDefault("ui.default_mood", cfg.UI.DefaultMood)
	v.SetDefault("ui.default_sort", cfg.UI.DefaultSort)
	v.SetDefault("ui.browser", cfg.UI.Browser)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Environment variable overrides, e.g. MOODREEL_TMDB_API_KEY
	v.SetEnvPrefix("MOODREEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(defaultConfigPath(), ".")
}

func loadConfig(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := newViper()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces unusable values with their defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = def.TMDB.Timeout
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		c.TMDB.RequestsPerSecond = def.TMDB.RequestsPerSecond
	}
	if c.Palette.Colors <= 0 {
		c.Palette.Colors = def.Palette.Colors
	}
	if c.Palette.MaxDimension == 0 {
		c.Palette.MaxDimension = def.Palette.MaxDimension
	}
	c.UI.DefaultMood = string(domain.ParseMood(c.UI.DefaultMood))
	c.UI.DefaultSort = string(domain.ParseSortOrder(c.UI.DefaultSort))
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return saveConfig(cfg, defaultConfigPath())
}

func saveConfig(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.image_width", cfg.TMDB.ImageWidth)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())
	v.Set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)

	v.Set("filter.banned_terms", cfg.Filter.BannedTerms)
	v.Set("filter.min_vote_count", cfg.Filter.MinVoteCount)
	v.Set("filter.min_vote_average", cfg.Filter.MinVoteAverage)

	v.Set("palette.colors", cfg.Palette.Colors)
	v.Set("palette.max_dimension", cfg.Palette.MaxDimension)
	v.Set("palette.persist", cfg.Palette.Persist)

	v.Set("ui.default_mood", cfg.UI.DefaultMood)
	v.Set("ui.default_sort", cfg.UI.DefaultSort)
	v.Set("ui.browser", cfg.UI.Browser)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if a TMDB API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// ClearCache removes all cached data
func ClearCache() error {
	cachePath := defaultCachePath()
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
