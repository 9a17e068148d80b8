/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/tshstats/internal"
	"github.com/mikeb26/tshstats/tsh"
)

// Config holds the settings shared by the tshstats binaries.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Source  SourceConfig  `yaml:"source"`
	Discord DiscordConfig `yaml:"discord"`
	Seed    SeedConfig    `yaml:"seed"`
}

// CacheConfig controls the http response cache.
type CacheConfig struct {
	// empty selects an in-memory cache
	Bucket string        `yaml:"bucket"`
	Prefix string        `yaml:"prefix"`
	Gzip   bool          `yaml:"gzip"`
	MaxAge time.Duration `yaml:"max_age"`
}

// SourceConfig describes where tournament data comes from.
type SourceConfig struct {
	Marker       string   `yaml:"marker"`
	URL          string   `yaml:"url"`
	// hosts a caller-supplied url may point at, in addition to URL's own
	// host; "*" allows any host
	AllowedHosts []string `yaml:"allowed_hosts"`
}

// DiscordConfig holds the bot's credentials and endpoint.
type DiscordConfig struct {
	Token      string `yaml:"token"`
	PublicKey  string `yaml:"public_key"`
	AppID      string `yaml:"app_id"`
	CommandID  string `yaml:"command_id"`
	ListenAddr string `yaml:"listen_addr"`
}

// SeedConfig lists the documents cacheseed pre-fetches.
type SeedConfig struct {
	URLs              []string `yaml:"urls"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Bucket: internal.WebCacheBucket,
			Prefix: internal.WebCachePrefix,
			MaxAge: internal.DefaultCacheMaxAge,
		},
		Source: SourceConfig{
			Marker: tsh.DefaultMarker,
		},
		Discord: DiscordConfig{
			ListenAddr: ":8080",
		},
		Seed: SeedConfig{
			RequestsPerSecond: 0.5,
		},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file is
// not an error; defaults are used instead. Environment variables override
// values from either source.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %v: %w", filename, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Source.Marker == "" {
		cfg.Source.Marker = tsh.DefaultMarker
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("TSHSTATS_CACHE_BUCKET"); ok {
		cfg.Cache.Bucket = v
	}
	if v := os.Getenv("TSHSTATS_CACHE_PREFIX"); v != "" {
		cfg.Cache.Prefix = v
	}
	if v := os.Getenv("TSHSTATS_CACHE_GZIP"); v != "" {
		cfg.Cache.Gzip = v == "true"
	}
	if v := os.Getenv("TSHSTATS_CACHE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TSHSTATS_CACHE_MAX_AGE value: %w", err)
		}
		cfg.Cache.MaxAge = d
	}
	if v := os.Getenv("TSHSTATS_MARKER"); v != "" {
		cfg.Source.Marker = v
	}
	if v := os.Getenv("TSHSTATS_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("TSHSTATS_ALLOWED_HOSTS"); v != "" {
		cfg.Source.AllowedHosts = strings.Fields(strings.ReplaceAll(v, ",", " "))
	}
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("DISCORD_PUBLIC_KEY"); v != "" {
		cfg.Discord.PublicKey = v
	}
	if v := os.Getenv("DISCORD_APP_ID"); v != "" {
		cfg.Discord.AppID = v
	}
	if v := os.Getenv("DISCORD_COMMAND_ID"); v != "" {
		cfg.Discord.CommandID = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Discord.ListenAddr = v
	}
	if v := os.Getenv("TSHSTATS_SEED_URLS"); v != "" {
		cfg.Seed.URLs = strings.Fields(strings.ReplaceAll(v, ",", " "))
	}
	if v := os.Getenv("TSHSTATS_SEED_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TSHSTATS_SEED_RPS value: %w", err)
		}
		cfg.Seed.RequestsPerSecond = f
	}

	return nil
}
