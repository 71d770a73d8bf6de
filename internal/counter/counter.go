// Package counter keeps persisted vanity counters.
package counter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/verte-zerg/memewire/internal/chance"
)

// Storage keys and defaults.
const (
	MemesKey     = "nftsol_rumor_counter"
	ViewsKey     = "maduroMemes_visits"
	LastVisitKey = "nftsol_last_visit"

	DefaultMemes = 8912
	DefaultViews = 0
)

// KV is the persistence the counter needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Formatter renders a counter value for display.
type Formatter func(int) string

// Counter is a persisted integer. Reads and writes are serialized; the stored value
// is last-write-wins with respect to other processes.
type Counter struct {
	mu     sync.Mutex
	kv     KV
	key    string
	def    int
	rnd    chance.Rand
	logger *zap.Logger
	format Formatter
	value  int
	loaded bool
}

// New returns a counter stored under key with fallback def.
func New(kv KV, key string, def int, rnd chance.Rand, logger *zap.Logger, format Formatter) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if format == nil {
		format = strconv.Itoa
	}
	return &Counter{
		kv:     kv,
		key:    key,
		def:    def,
		rnd:    rnd,
		logger: logger.With(zap.String("counter", key)),
		format: format,
	}
}

// NewMemes returns the "memes generated today" counter.
func NewMemes(kv KV, def int, rnd chance.Rand, logger *zap.Logger) *Counter {
	return New(kv, MemesKey, def, rnd, logger, MemesLine)
}

// NewViews returns the simulated viewers counter.
func NewViews(kv KV, rnd chance.Rand, logger *zap.Logger) *Counter {
	return New(kv, ViewsKey, DefaultViews, rnd, logger, ViewsLine)
}

// Key returns the storage key.
func (c *Counter) Key() string {
	return c.key
}

// Load reads the persisted value, falling back to the default when the key is
// missing or unreadable. It never fails.
func (c *Counter) Load(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = c.read(ctx)
	c.loaded = true
	return c.value
}

// Value returns the current value, loading it on first use.
func (c *Counter) Value(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return c.value
}

// Display renders the current value.
func (c *Counter) Display(ctx context.Context) string {
	return c.format(c.Value(ctx))
}

// Tick adds a uniform draw from {0,1,2} and persists the result.
func (c *Counter) Tick(ctx context.Context) int {
	return c.update(ctx, func(v int) int {
		return v + chance.IntRange(c.rnd, 0, 2)
	})
}

// Fluctuate adds a uniform draw from [-10,10] without going below 1.
func (c *Counter) Fluctuate(ctx context.Context) int {
	return c.update(ctx, func(v int) int {
		return max(1, v+chance.IntRange(c.rnd, -10, 10))
	})
}

// Add increments by n and persists the result.
func (c *Counter) Add(ctx context.Context, n int) int {
	return c.update(ctx, func(v int) int {
		return max(0, v+n)
	})
}

func (c *Counter) update(ctx context.Context, fn func(int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	c.value = fn(c.value)
	c.write(ctx)
	return c.value
}

func (c *Counter) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	c.value = c.read(ctx)
	c.loaded = true
}

func (c *Counter) read(ctx context.Context) int {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("failed to read counter", zap.Error(err))
		return c.def
	}
	if !ok {
		return c.def
	}
	var v int
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.logger.Warn("corrupt counter value", zap.String("raw", raw), zap.Error(err))
		return c.def
	}
	if v < 0 {
		c.logger.Warn("negative counter value", zap.Int("value", v))
		return c.def
	}
	return v
}

func (c *Counter) write(ctx context.Context) {
	raw, err := json.Marshal(c.value)
	if err != nil {
		c.logger.Warn("failed to encode counter", zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, c.key, string(raw)); err != nil {
		c.logger.Warn("failed to write counter", zap.Error(err))
	}
}

// MemesLine renders the generation counter.
func MemesLine(v int) string {
	return "Memes generated today: " + humanize.Comma(int64(v))
}

// ViewsLine renders the viewers counter.
func ViewsLine(v int) string {
	return FormatViews(v) + " • memes & chaos"
}

// FormatViews abbreviates counts of a thousand or more.
func FormatViews(v int) string {
	if v >= 1000 {
		return fmt.Sprintf("%.1fk views", float64(v)/1000)
	}
	return fmt.Sprintf("%d views", v)
}
