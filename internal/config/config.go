package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// SourceType identifies the image source backend
type SourceType string

const (
	SourceTypeUnsplash SourceType = "unsplash"
	SourceTypePicsum   SourceType = "picsum"
)

// Config holds all application configuration
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Prefetch PrefetchConfig `mapstructure:"prefetch"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourceConfig holds image source configuration
type SourceConfig struct {
	Type      SourceType `mapstructure:"type"`       // "unsplash" or "picsum"
	Query     string     `mapstructure:"query"`      // Search keyword(s)
	AccessKey string     `mapstructure:"access_key"` // Unsplash only
}

// PrefetchConfig tunes the image prefetch cache
type PrefetchConfig struct {
	PageSize int `mapstructure:"page_size"` // Results per batched request
	LowWater int `mapstructure:"low_water"` // Refill when cache drops below this
}

// UIConfig holds presentation preferences. These flags absorb the UX
// differences between historical builds of the app.
type UIConfig struct {
	KeepDisplayed   bool   `mapstructure:"keep_displayed"`    // Keep current image after assigning (allows multi-recipient)
	ClearInput      bool   `mapstructure:"clear_input"`       // Clear the email field after assigning
	AutoExpandGroup bool   `mapstructure:"auto_expand_group"` // Expand a recipient's group after assigning to it
	Theme           string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:  SourceTypePicsum,
			Query: "nature",
		},
		Prefetch: PrefetchConfig{
			PageSize: 20,
			LowWater: 6,
		},
		UI: UIConfig{
			KeepDisplayed:   true,
			ClearInput:      true,
			AutoExpandGroup: false,
			Theme:           "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "picbind", "picbind.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "picbind", "picbind.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "picbind")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "picbind")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("PICBIND")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("source.type", cfg.Source.Type)
	viper.Set("source.query", cfg.Source.Query)
	viper.Set("source.access_key", cfg.Source.AccessKey)

	viper.Set("prefetch.page_size", cfg.Prefetch.PageSize)
	viper.Set("prefetch.low_water", cfg.Prefetch.LowWater)

	viper.Set("ui.keep_displayed", cfg.UI.KeepDisplayed)
	viper.Set("ui.clear_input", cfg.UI.ClearInput)
	viper.Set("ui.auto_expand_group", cfg.UI.AutoExpandGroup)
	viper.Set("ui.theme", cfg.UI.Theme)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the selected source can be constructed
// without further setup. The picsum source needs no credentials.
func (c *Config) IsConfigured() bool {
	if c.Source.Type == SourceTypeUnsplash {
		return c.Source.AccessKey != ""
	}
	return true
}

// DataDir returns the directory holding the assignment database
func DataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "picbind", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "picbind", "data")
	}
}
