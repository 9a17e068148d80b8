/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
cache:
  bucket: ""
  max_age: 90s
  gzip: true
source:
  url: https://example.com/tourney.js
  allowed_hosts:
    - scores.example.org
discord:
  app_id: "1234"
  listen_addr: ":9090"
seed:
  urls:
    - https://example.com/a/tourney.js
    - https://example.com/b/tourney.js
  requests_per_second: 2
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	want := Default()
	want.Cache.Bucket = ""
	want.Cache.MaxAge = 90 * time.Second
	want.Cache.Gzip = true
	want.Source.URL = "https://example.com/tourney.js"
	want.Source.AllowedHosts = []string{"scores.example.org"}
	want.Discord.AppID = "1234"
	want.Discord.ListenAddr = ":9090"
	want.Seed.URLs = []string{
		"https://example.com/a/tourney.js",
		"https://example.com/b/tourney.js",
	}
	want.Seed.RequestsPerSecond = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TSHSTATS_CACHE_BUCKET", "")
	t.Setenv("TSHSTATS_CACHE_MAX_AGE", "1h")
	t.Setenv("TSHSTATS_MARKER", "tourney=")
	t.Setenv("TSHSTATS_SEED_URLS", "https://a.example/t.js, https://b.example/t.js")
	t.Setenv("TSHSTATS_ALLOWED_HOSTS", "a.example,b.example")
	t.Setenv("DISCORD_TOKEN", "secret")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Cache.Bucket != "" {
		t.Errorf("bucket = %q; want empty", cfg.Cache.Bucket)
	}
	if cfg.Cache.MaxAge != time.Hour {
		t.Errorf("max age = %v; want 1h", cfg.Cache.MaxAge)
	}
	if cfg.Source.Marker != "tourney=" {
		t.Errorf("marker = %q", cfg.Source.Marker)
	}
	if diff := cmp.Diff([]string{"https://a.example/t.js", "https://b.example/t.js"},
		cfg.Seed.URLs); diff != "" {
		t.Errorf("seed urls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.example", "b.example"},
		cfg.Source.AllowedHosts); diff != "" {
		t.Errorf("allowed hosts mismatch (-want +got):\n%s", diff)
	}
	if cfg.Discord.Token != "secret" {
		t.Errorf("token = %q", cfg.Discord.Token)
	}
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("TSHSTATS_CACHE_MAX_AGE", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
