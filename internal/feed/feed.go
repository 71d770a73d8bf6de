// Package feed simulates live engagement: a scrolling chat log and short-lived
// floating viewer comments.
package feed

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/scheduler"
	"github.com/verte-zerg/memewire/internal/templates"
)

// Kind tells which surface an entry belongs to.
type Kind int

const (
	KindChat Kind = iota
	KindFloating
)

// Op is what happened to an entry.
type Op int

const (
	OpAdded Op = iota
	OpRemoved
)

// Entry is a transient display item.
type Entry struct {
	ID        string
	Author    string
	Text      string
	CreatedAt time.Time
}

// Event is published for every change to the feed.
type Event struct {
	Kind  Kind
	Op    Op
	Entry Entry
}

// Sink receives feed events. It is called from scheduler goroutines.
type Sink func(Event)

// Config controls emitter timing and capacity.
type Config struct {
	ChatMax        int
	ChatStartDelay time.Duration
	ChatMinDelay   time.Duration
	ChatMaxDelay   time.Duration

	FloatingMax      int
	FloatingTTL      time.Duration
	FloatingBoot     []time.Duration
	FloatingMinDelay time.Duration
	FloatingMaxDelay time.Duration
	FloatingChance   float64
}

// DefaultConfig mirrors the live site's pacing.
func DefaultConfig() Config {
	return Config{
		ChatMax:          20,
		ChatStartDelay:   3 * time.Second,
		ChatMinDelay:     8 * time.Second,
		ChatMaxDelay:     15 * time.Second,
		FloatingMax:      4,
		FloatingTTL:      4 * time.Second,
		FloatingBoot:     []time.Duration{time.Second, 2 * time.Second, 3500 * time.Millisecond},
		FloatingMinDelay: 2 * time.Second,
		FloatingMaxDelay: 5 * time.Second,
		FloatingChance:   0.6,
	}
}

// Task names registered on the scheduler.
const (
	TaskChatStart = "feed/chat-start"
	TaskChat      = "feed/chat"
	TaskFloating  = "feed/floating"
)

// Feed owns the chat log, the floating comments, and their emitters.
type Feed struct {
	cfg      Config
	rnd      chance.Rand
	pools    *templates.Pools
	sched    *scheduler.Scheduler
	logger   *zap.Logger
	chat     *ChatLog
	floating *Floating

	mu   sync.Mutex
	sink Sink
}

// New builds a Feed. Nothing runs until Start.
func New(cfg Config, rnd chance.Rand, pools *templates.Pools, sched *scheduler.Scheduler, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		cfg:      cfg,
		rnd:      rnd,
		pools:    pools,
		sched:    sched,
		logger:   logger,
		chat:     NewChatLog(cfg.ChatMax),
		floating: NewFloating(cfg.FloatingMax),
	}
}

// Start registers the chat and floating emitters.
func (f *Feed) Start(sink Sink) error {
	f.mu.Lock()
	f.sink = sink
	f.mu.Unlock()

	err := f.sched.After(TaskChatStart, f.cfg.ChatStartDelay, func(context.Context) {
		err := f.sched.Loop(TaskChat, f.nextChatDelay, func(context.Context) {
			f.EmitChat()
		})
		if err != nil && !errors.Is(err, scheduler.ErrStopped) {
			f.logger.Warn("failed to start chat emitter", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	for i, delay := range f.cfg.FloatingBoot {
		name := TaskFloating + "-boot-" + strconv.Itoa(i+1)
		if err := f.sched.After(name, delay, func(context.Context) { f.EmitFloating() }); err != nil {
			return err
		}
	}
	return f.sched.Loop(TaskFloating, f.nextFloatingDelay, func(context.Context) {
		if chance.Hit(f.rnd, f.cfg.FloatingChance) {
			f.EmitFloating()
		}
	})
}

// Config returns the settings the feed was built with.
func (f *Feed) Config() Config { return f.cfg }

// Chat returns the chat log.
func (f *Feed) Chat() *ChatLog { return f.chat }

// Floating returns the floating comment set.
func (f *Feed) Floating() *Floating { return f.floating }

// Post appends an entry with the given author and text to the chat log.
func (f *Feed) Post(author, text string) Entry {
	entry := f.newEntry(author, text)
	evicted, ok := f.chat.Append(entry)
	if ok {
		f.publish(Event{Kind: KindChat, Op: OpRemoved, Entry: evicted})
	}
	f.publish(Event{Kind: KindChat, Op: OpAdded, Entry: entry})
	return entry
}

// EmitChat posts a random simulated chat message.
func (f *Feed) EmitChat() Entry {
	author, text := f.pools.ChatLine(f.rnd)
	return f.Post(author, text)
}

// EmitFloating creates a floating comment unless the cap is reached. The comment
// removes itself after the configured TTL.
func (f *Feed) EmitFloating() (Entry, bool) {
	author, text := f.pools.FloatingLine(f.rnd)
	entry := f.newEntry(author, text)
	if !f.floating.TryAdd(entry) {
		return Entry{}, false
	}
	f.publish(Event{Kind: KindFloating, Op: OpAdded, Entry: entry})
	err := f.sched.After(TaskFloating+"-expire-"+entry.ID, f.cfg.FloatingTTL, func(context.Context) {
		f.expire(entry)
	})
	if err != nil {
		// Without a timer the entry would hold a slot forever.
		f.expire(entry)
	}
	return entry, true
}

func (f *Feed) expire(entry Entry) {
	if f.floating.Remove(entry.ID) {
		f.publish(Event{Kind: KindFloating, Op: OpRemoved, Entry: entry})
	}
}

func (f *Feed) nextChatDelay() time.Duration {
	return chance.Between(f.rnd, f.cfg.ChatMinDelay, f.cfg.ChatMaxDelay)
}

func (f *Feed) nextFloatingDelay() time.Duration {
	return chance.Between(f.rnd, f.cfg.FloatingMinDelay, f.cfg.FloatingMaxDelay)
}

func (f *Feed) newEntry(author, text string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: f.sched.Clock().Now(),
	}
}

func (f *Feed) publish(ev Event) {
	f.mu.Lock()
	sink := f.sink
	f.mu.Unlock()
	if sink != nil {
		sink(ev)
	}
}
