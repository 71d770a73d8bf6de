package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/memewire/internal/model"
)

// Defaults for every resolved setting.
const (
	DefaultConfidence        = 97
	DefaultCounter           = 8912
	DefaultTickInterval      = 1800 * time.Millisecond
	DefaultFluctuateInterval = 5 * time.Minute
	DefaultChatMax           = 20
	DefaultFloatingMax       = 4
	DefaultFloatingTTL       = 4 * time.Second
	DefaultFloatingChance    = 0.6
	DefaultSiteURL           = "https://nftsol.xyz"
	DefaultTokenURL          = "https://pump.fun/"
	DefaultShareURL          = "https://twitter.com/intent/tweet"
	DefaultLogLevel          = "info"
)

// Defaults returns a fully populated runtime config.
func Defaults() model.Config {
	return model.Config{
		DefaultConfidence: DefaultConfidence,
		CounterDefault:    DefaultCounter,
		TickInterval:      DefaultTickInterval,
		FluctuateInterval: DefaultFluctuateInterval,
		ChatMax:           DefaultChatMax,
		FloatingMax:       DefaultFloatingMax,
		FloatingTTL:       DefaultFloatingTTL,
		FloatingChance:    DefaultFloatingChance,
		SiteURL:           DefaultSiteURL,
		TokenURL:          DefaultTokenURL,
		ShareURL:          DefaultShareURL,
		LogLevel:          DefaultLogLevel,
		LogFile:           DefaultLogPath(),
	}
}

// Apply copies the file settings that have no CLI flag into cfg. Flag-backed
// generator settings are merged by the caller so flags can win.
func Apply(cfg *model.Config, file FileConfig) error {
	if v := file.Counter.Default; v != nil {
		cfg.CounterDefault = *v
	}
	if err := applyDuration("counter.tick-interval", &cfg.TickInterval, file.Counter.TickInterval); err != nil {
		return err
	}
	if err := applyDuration("counter.fluctuate-interval", &cfg.FluctuateInterval, file.Counter.FluctuateInterval); err != nil {
		return err
	}
	if v := file.Feed.ChatMax; v != nil {
		cfg.ChatMax = *v
	}
	if v := file.Feed.FloatingMax; v != nil {
		cfg.FloatingMax = *v
	}
	if err := applyDuration("feed.floating-ttl", &cfg.FloatingTTL, file.Feed.FloatingTTL); err != nil {
		return err
	}
	if v := file.Feed.FloatingChance; v != nil {
		cfg.FloatingChance = *v
	}
	applyString(&cfg.SiteURL, file.Links.Site)
	applyString(&cfg.TokenURL, file.Links.Token)
	applyString(&cfg.ShareURL, file.Links.Share)
	applyString(&cfg.ContractAddress, file.Links.Contract)
	applyString(&cfg.LogLevel, file.Log.Level)
	applyString(&cfg.LogFile, file.Log.File)
	return nil
}

func applyDuration(name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*target = d
	return nil
}

func applyString(target, value *string) {
	if value == nil {
		return
	}
	*target = strings.TrimSpace(*value)
}

// Validate rejects out-of-range settings.
func Validate(cfg model.Config) error {
	if cfg.DefaultConfidence < 0 || cfg.DefaultConfidence > 100 {
		return fmt.Errorf("--confidence must be between 0 and 100")
	}
	if cfg.CounterDefault < 0 {
		return fmt.Errorf("counter.default must be >= 0")
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("counter.tick-interval must be > 0")
	}
	if cfg.FluctuateInterval <= 0 {
		return fmt.Errorf("counter.fluctuate-interval must be > 0")
	}
	if cfg.ChatMax <= 0 {
		return fmt.Errorf("feed.chat-max must be > 0")
	}
	if cfg.FloatingMax <= 0 {
		return fmt.Errorf("feed.floating-max must be > 0")
	}
	if cfg.FloatingTTL <= 0 {
		return fmt.Errorf("feed.floating-ttl must be > 0")
	}
	if cfg.FloatingChance < 0 || cfg.FloatingChance > 1 {
		return fmt.Errorf("feed.floating-chance must be between 0 and 1")
	}
	for name, v := range map[string]string{"links.site": cfg.SiteURL, "links.token": cfg.TokenURL, "links.share": cfg.ShareURL} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Template returns the commented config file written by `memewire config`.
func Template() string {
	return fmt.Sprintf(`# memewire configuration
# Uncomment a value to enable it. CLI flags override config values.

[generator]
# default-confidence = %d     # Authenticity shown on every meme (0-100)
# source = "Twitter de Maduro"  # Fixed source instead of a random one
# extra-quotes = ""             # File with extra quotes, one per line

[counter]
# default = %d                # Starting value of the memes counter
# tick-interval = %q          # How often the memes counter grows
# fluctuate-interval = %q     # How often the views counter wobbles

[feed]
# chat-max = %d               # Chat messages kept on screen
# floating-max = %d           # Floating comments alive at once
# floating-ttl = %q           # Lifetime of a floating comment
# floating-chance = %.1f      # Probability a floating comment appears per tick

[links]
# site = %q
# token = %q
# share = %q
# contract = ""                 # Token contract address for ctrl+t, unset disables it

[log]
# level = %q                  # debug, info, warn, error
# file = ""                     # Defaults to $XDG_STATE_HOME/memewire/memewire.log
`,
		DefaultConfidence,
		DefaultCounter,
		DefaultTickInterval.String(),
		DefaultFluctuateInterval.String(),
		DefaultChatMax,
		DefaultFloatingMax,
		DefaultFloatingTTL.String(),
		DefaultFloatingChance,
		DefaultSiteURL,
		DefaultTokenURL,
		DefaultShareURL,
		DefaultLogLevel,
	)
}
