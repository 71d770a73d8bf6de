// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generator GeneratorConfig `toml:"generator"`
	Counter   CounterConfig   `toml:"counter"`
	Feed      FeedConfig      `toml:"feed"`
	Links     LinksConfig     `toml:"links"`
	Log       LogConfig       `toml:"log"`
}

// GeneratorConfig maps generation settings. These also have CLI flags.
type GeneratorConfig struct {
	DefaultConfidence *int    `toml:"default-confidence"`
	Source            *string `toml:"source"`
	ExtraQuotes       *string `toml:"extra-quotes"`
}

// CounterConfig maps counter settings. Intervals are Go duration strings.
type CounterConfig struct {
	Default           *int    `toml:"default"`
	TickInterval      *string `toml:"tick-interval"`
	FluctuateInterval *string `toml:"fluctuate-interval"`
}

// FeedConfig maps chat and floating comment settings.
type FeedConfig struct {
	ChatMax        *int     `toml:"chat-max"`
	FloatingMax    *int     `toml:"floating-max"`
	FloatingTTL    *string  `toml:"floating-ttl"`
	FloatingChance *float64 `toml:"floating-chance"`
}

// LinksConfig maps the external URLs and the token contract address.
type LinksConfig struct {
	Site     *string `toml:"site"`
	Token    *string `toml:"token"`
	Share    *string `toml:"share"`
	Contract *string `toml:"contract"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
