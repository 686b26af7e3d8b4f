// Package config loads process settings from an optional config.yaml and the
// environment. Environment variables override values from the file.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ClientID     string `mapstructure:"spotify_client_id"`
	ClientSecret string `mapstructure:"spotify_client_secret"`
	// AccessToken is a user-scoped token. When set it is used instead of
	// the client credentials flow so library and player calls work.
	AccessToken  string `mapstructure:"spotify_access_token"`
	Market       string `mapstructure:"spotify_market"`
	BaseURL      string `mapstructure:"spotify_base_url"`
	DatabasePath string `mapstructure:"database_path"`
	ListenAddr   string `mapstructure:"listen_addr"`
	LogLevel     string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"spotify_client_id":     "",
	"spotify_client_secret": "",
	"spotify_access_token":  "",
	"spotify_market":        "US",
	"spotify_base_url":      "",
	"database_path":         "catalog.db",
	"listen_addr":           ":4000",
	"log_level":             "info",
}

// Load reads config.yaml from dirs, if present, and applies environment
// overrides. A missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if len(dirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that some form of credentials is present.
func (c *Config) Validate() error {
	if c.AccessToken != "" {
		return nil
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("SPOTIFY_ACCESS_TOKEN or both SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}
	return nil
}
