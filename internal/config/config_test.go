package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/memewire/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Generator.DefaultConfidence != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[generator]
default-confidence = 80
source = "Cadena Nacional VTV"

[counter]
default = 100
tick-interval = "500ms"
fluctuate-interval = "1m"

[feed]
chat-max = 5
floating-ttl = "2s"
floating-chance = 0.25

[links]
site = "https://example.org"
contract = "  NFTmint111  "

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if file.Generator.DefaultConfidence == nil || *file.Generator.DefaultConfidence != 80 {
		t.Fatalf("expected confidence 80, got %v", file.Generator.DefaultConfidence)
	}
	if file.Generator.Source == nil || *file.Generator.Source != "Cadena Nacional VTV" {
		t.Fatalf("unexpected source %v", file.Generator.Source)
	}

	cfg := Defaults()
	if err := Apply(&cfg, file); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.CounterDefault != 100 || cfg.TickInterval != 500*time.Millisecond || cfg.FluctuateInterval != time.Minute {
		t.Fatalf("unexpected counter settings %+v", cfg)
	}
	if cfg.ChatMax != 5 || cfg.FloatingMax != DefaultFloatingMax || cfg.FloatingTTL != 2*time.Second || cfg.FloatingChance != 0.25 {
		t.Fatalf("unexpected feed settings %+v", cfg)
	}
	if cfg.SiteURL != "https://example.org" || cfg.TokenURL != DefaultTokenURL {
		t.Fatalf("unexpected links %+v", cfg)
	}
	if cfg.ContractAddress != "NFTmint111" {
		t.Fatalf("unexpected contract address %q", cfg.ContractAddress)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[feed]\nchat-maximum = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "chat-maximum") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestApplyRejectsBadDuration(t *testing.T) {
	bad := "soon"
	cfg := Defaults()
	err := Apply(&cfg, FileConfig{Counter: CounterConfig{TickInterval: &bad}})
	if err == nil || !strings.Contains(err.Error(), "counter.tick-interval") {
		t.Fatalf("expected duration error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(c *model.Config)
		want   string
	}{
		{"confidence", func(c *model.Config) { c.DefaultConfidence = 101 }, "--confidence"},
		{"tick", func(c *model.Config) { c.TickInterval = 0 }, "counter.tick-interval"},
		{"chat", func(c *model.Config) { c.ChatMax = 0 }, "feed.chat-max"},
		{"chance", func(c *model.Config) { c.FloatingChance = 1.5 }, "feed.floating-chance"},
		{"site", func(c *model.Config) { c.SiteURL = "" }, "links.site"},
		{"level", func(c *model.Config) { c.LogLevel = "loud" }, "log.level"},
	}
	for _, tc := range cases {
		cfg := Defaults()
		tc.mutate(&cfg)
		err := Validate(cfg)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTemplateDecodesToEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Counter.Default != nil || cfg.Feed.ChatMax != nil {
		t.Fatalf("template values should all be commented out: %+v", cfg)
	}
	if !strings.Contains(Template(), `tick-interval = "1.8s"`) {
		t.Fatalf("template should show the default tick interval")
	}
	if !strings.Contains(Template(), "# contract = ") {
		t.Fatalf("template should mention the contract address")
	}
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "memewire", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "memewire", "memewire.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "memewire", "memewire.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
