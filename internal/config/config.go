// Package config loads tool configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the settings for one run.
type Config struct {
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	APIBase string `mapstructure:"api_base"`
}

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultConfigDir  = "cmt"
	DefaultConfigName = "config"
	EnvPrefix         = "CMT"
)

// InitConfig sets up viper. A missing config file is not an error; the
// file is created on the first SaveConfig. The API key can come from
// CMT_API_KEY or OPENAI_API_KEY; its absence surfaces at the first
// generation call, not here.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultConfigDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	if err := viper.BindEnv("api_key", "CMT_API_KEY", "OPENAI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind api_key env: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the current settings back to the config file, creating
// it (and its directory) when missing.
func SaveConfig() error {
	if used := viper.ConfigFileUsed(); used != "" {
		return viper.WriteConfig()
	}

	dir, err := defaultConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(dir, DefaultConfigName+".yaml"))
}

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, DefaultConfigDir), nil
}
