// Package config loads application settings: embedded YAML defaults, an optional
// YAML file, a .env file and finally the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenWeather struct {
		BaseURL string `yaml:"baseURL"`
		APIKey  string `yaml:"apiKey"`
	} `yaml:"openweather"`

	Geocoding struct {
		BaseURL string `yaml:"baseURL"`
		APIKey  string `yaml:"apiKey"`
	} `yaml:"geocoding"`

	Storage struct {
		Path         string `yaml:"path"`
		SeedDefaults bool   `yaml:"seedDefaults"`
	} `yaml:"storage"`

	Log Log `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load parses defaults, overlays the file at path when given, then applies
// .env files and environment variables.
func Load(defaults []byte, path string, envFiles ...string) (*Config, error) {
	config := &Config{}

	if err := yaml.Unmarshal(defaults, config); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFiles loads .env files without overriding variables already set. Missing files are skipped.
func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.OpenWeather.APIKey, "OPENWEATHER_API_KEY")
	setString(&c.OpenWeather.BaseURL, "OPENWEATHER_BASE_URL")
	setString(&c.Geocoding.APIKey, "GEOCODING_API_KEY")
	setString(&c.Geocoding.BaseURL, "GEOCODING_BASE_URL")
	setString(&c.Storage.Path, "WEATHER_DB_PATH")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("WEATHER_SEED_DEFAULTS"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WEATHER_SEED_DEFAULTS: %w", err)
		}
		c.Storage.SeedDefaults = seed
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
