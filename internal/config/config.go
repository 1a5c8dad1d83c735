package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"movie-recommender/internal/recommend"
	"movie-recommender/internal/vector"
)

const (
	DefaultConfigDir  = ".movie-recommender"
	DefaultConfigFile = "config.yaml"
)

// Config represents the application configuration
type Config struct {
	// TopN: number of titles returned per recommendation
	TopN int `yaml:"top_n"`

	// LikeThreshold: minimum rating (0-5) that counts as the neighbor liking a title
	LikeThreshold float64 `yaml:"like_threshold"`

	// Bonus: score added to titles the most similar user liked
	Bonus float64 `yaml:"bonus"`

	// Tokenizer: "whitespace" or "word"
	Tokenizer string `yaml:"tokenizer"`

	Catalog recommend.Catalog `yaml:"catalog"`
	Ratings recommend.Ratings `yaml:"ratings"`
}

func DefaultConfig() *Config {
	return &Config{
		TopN:          recommend.DefaultTopN,
		LikeThreshold: recommend.DefaultLikeThreshold,
		Bonus:         recommend.DefaultBonus,
		Tokenizer:     string(vector.TokenizeWhitespace),
		Catalog:       recommend.DemoCatalog(),
		Ratings:       recommend.DemoRatings(),
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)
	return filepath.Join(configDir, DefaultConfigFile), nil
}

// Load loads the configuration from the default path, creating default if not exists
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath, creating default if not exists
func LoadFrom(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveTo(configPath, cfg); err != nil {
			// If save fails, just return default config without error
			// This ensures the app works even if we can't write config
			return cfg, nil
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// The demo ratings only make sense against the demo catalog
	var present struct {
		Catalog *yaml.Node `yaml:"catalog"`
		Ratings *yaml.Node `yaml:"ratings"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if present.Catalog != nil && present.Ratings == nil {
		cfg.Ratings = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(configPath, cfg)
}

// SaveTo saves the configuration to configPath
func SaveTo(configPath string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
// Table contents (unique titles, rated titles in catalog) are checked when the scorer is built.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}

	if !isFinite(c.LikeThreshold) {
		return fmt.Errorf("like_threshold must be a finite number, got %f", c.LikeThreshold)
	}
	if c.LikeThreshold < recommend.MinRating || c.LikeThreshold > recommend.MaxRating {
		return fmt.Errorf("like_threshold must be between %.0f and %.0f, got %f",
			recommend.MinRating, recommend.MaxRating, c.LikeThreshold)
	}

	if !isFinite(c.Bonus) {
		return fmt.Errorf("bonus must be a finite number, got %f", c.Bonus)
	}
	if c.Bonus < 0 {
		return fmt.Errorf("bonus must not be negative, got %f", c.Bonus)
	}

	if _, err := vector.ParseTokenizerMode(c.Tokenizer); err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog must contain at least one movie")
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TokenizerMode returns the parsed tokenizer setting
func (c *Config) TokenizerMode() vector.TokenizerMode {
	mode, err := vector.ParseTokenizerMode(c.Tokenizer)
	if err != nil {
		return vector.TokenizeWhitespace
	}
	return mode
}

// ScorerOptions converts the scoring knobs into scorer options
func (c *Config) ScorerOptions() []recommend.Option {
	return []recommend.Option{
		recommend.WithTokenizer(c.TokenizerMode()),
		recommend.WithLikeThreshold(c.LikeThreshold),
		recommend.WithBonus(c.Bonus),
	}
}

// NewScorer builds a scorer from the configured tables
func (c *Config) NewScorer() (*recommend.Scorer, error) {
	return recommend.NewScorer(c.Catalog, c.Ratings, c.ScorerOptions()...)
}
