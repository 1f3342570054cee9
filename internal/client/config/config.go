// Package config loads the terminal client configuration from an optional
// drevlegrad.yaml file and DREVLEGRAD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/identity"
)

// Config holds the client configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Identity IdentityConfig `mapstructure:"identity"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig points at the community service
type ServerConfig struct {
	URL string `mapstructure:"url"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChatConfig holds chat view timings
type ChatConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LongPress    time.Duration `mapstructure:"long_press"`
}

// IdentityConfig holds the local identity file location
type IdentityConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. When path is empty the file drevlegrad.yaml is
// looked up in the working directory and the user config dir; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("chat.poll_interval", 3*time.Second)
	v.SetDefault("chat.long_press", 500*time.Millisecond)
	v.SetDefault("identity.path", "")
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix("DREVLEGRAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("drevlegrad")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/drevlegrad")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Identity.Path == "" {
		p, err := identity.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.Identity.Path = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Chat.PollInterval <= 0 {
		return fmt.Errorf("chat.poll_interval must be positive")
	}
	if c.Chat.LongPress <= 0 {
		return fmt.Errorf("chat.long_press must be positive")
	}
	return nil
}
