// Package config provides YAML-based application configuration for the
// arcade platform.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application-level configuration.
type Config struct {
	Player   PlayerConfig   `yaml:"player"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Share    ShareConfig    `yaml:"share"`
}

// PlayerConfig names the local player on leaderboards and in rooms.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// DatabaseConfig locates the local SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig points at the shared room backend. An empty address
// disables the remote store entirely.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ShareConfig controls how room invitations are rendered.
type ShareConfig struct {
	BotName string `yaml:"bot_name"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: filepath.Join("~", ".miniarcades", "arcade.db")},
	}
}

// Dir returns the user configuration directory, or empty if the home
// directory is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".miniarcades")
}

// Load reads the application configuration.
// Search order: customPath -> ~/.miniarcades/config.yaml -> defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if dir := Dir(); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", filepath.Join(dir, "config.yaml"), err)
			}
		}
	}

	return cfg, nil
}
