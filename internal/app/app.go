// Package app wires the store, counters, generator, feed, and actions together
// and owns every background task.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/verte-zerg/memewire/internal/actions"
	"github.com/verte-zerg/memewire/internal/announce"
	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/counter"
	"github.com/verte-zerg/memewire/internal/feed"
	"github.com/verte-zerg/memewire/internal/generator"
	"github.com/verte-zerg/memewire/internal/model"
	"github.com/verte-zerg/memewire/internal/scheduler"
	"github.com/verte-zerg/memewire/internal/templates"
)

// Task names registered by Start.
const (
	TaskMemesTick      = "counter/memes-tick"
	TaskViewsFluctuate = "counter/views-fluctuate"
)

// Chat authors used for prompts and replies.
const (
	UserAuthor = "You"
	BotAuthor  = "MaduroBot"
)

const notifyBuffer = 256

// CounterUpdated is sent whenever a counter changes.
type CounterUpdated struct {
	Key     string
	Value   int
	Display string
}

// TaskFailed is sent when a background task panics.
type TaskFailed struct {
	Task    string
	Message string
	At      time.Time
}

// Notify receives background updates: CounterUpdated, TaskFailed, and
// feed.Event values.
type Notify func(msg any)

// Deps are the collaborators of an App. Zero values get defaults where one
// exists.
type Deps struct {
	Config    model.Config
	KV        counter.KV
	Pools     *templates.Pools
	Rand      chance.Rand
	Clock     clockwork.Clock
	Logger    *zap.Logger
	Announcer announce.Announcer
	Copier    *actions.Copier
	Opener    actions.Opener
}

// App is the composition root.
type App struct {
	cfg       model.Config
	kv        counter.KV
	logger    *zap.Logger
	announcer announce.Announcer
	sched     *scheduler.Scheduler
	memes     *counter.Counter
	views     *counter.Counter
	gen       *generator.Generator
	feed      *feed.Feed
	actions   *actions.Dispatcher

	mu       sync.Mutex
	current  model.Record
	session  int
	out      chan any
	done     chan struct{}
	pumpDone chan struct{}
	started  bool
	stopped  bool
}

// New builds an App. Nothing runs until Start.
func New(d Deps) *App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Announcer == nil {
		d.Announcer = announce.Nop
	}
	if d.Pools == nil {
		d.Pools = templates.Default()
	}
	if d.Rand == nil {
		d.Rand = chance.NewTimeSeeded()
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Opener == nil {
		d.Opener = actions.OpenBrowser
	}
	if d.Copier == nil {
		d.Copier = actions.NewCopier(nil)
	}
	a := &App{
		cfg:       d.Config,
		kv:        d.KV,
		logger:    d.Logger,
		announcer: d.Announcer,
		out:       make(chan any, notifyBuffer),
		done:      make(chan struct{}),
		pumpDone:  make(chan struct{}),
	}
	a.sched = scheduler.New(
		scheduler.WithClock(d.Clock),
		scheduler.WithLogger(d.Logger),
		scheduler.WithPanicHandler(a.taskFailed),
	)
	a.memes = counter.NewMemes(d.KV, d.Config.CounterDefault, d.Rand, d.Logger)
	a.views = counter.NewViews(d.KV, d.Rand, d.Logger)
	a.gen = generator.New(d.Rand, d.Pools, d.Config.DefaultConfidence)

	feedCfg := feed.DefaultConfig()
	feedCfg.ChatMax = d.Config.ChatMax
	feedCfg.FloatingMax = d.Config.FloatingMax
	feedCfg.FloatingTTL = d.Config.FloatingTTL
	feedCfg.FloatingChance = d.Config.FloatingChance
	a.feed = feed.New(feedCfg, d.Rand, d.Pools, a.sched, d.Logger)

	links := actions.DefaultLinks()
	if d.Config.SiteURL != "" {
		links.Site = d.Config.SiteURL
	}
	if d.Config.TokenURL != "" {
		links.Token = d.Config.TokenURL
	}
	if d.Config.ShareURL != "" {
		links.Share = d.Config.ShareURL
	}
	links.Contract = d.Config.ContractAddress
	a.actions = actions.New(d.Copier, d.Opener, links, d.Announcer, d.Logger)
	return a
}

// Start records the visit and registers every periodic task. Updates are
// delivered to notify from a single goroutine, never from the calling one.
func (a *App) Start(ctx context.Context, notify Notify) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return fmt.Errorf("app already started")
	}
	a.started = true
	a.mu.Unlock()

	go a.pump(notify)

	a.memes.Load(ctx)
	a.views.Add(ctx, 1)
	a.recordVisit(ctx)

	if err := a.sched.Every(TaskMemesTick, a.tickInterval(), func(ctx context.Context) {
		a.counterChanged(a.memes, a.memes.Tick(ctx))
	}); err != nil {
		return fmt.Errorf("failed to schedule memes counter: %w", err)
	}
	if err := a.sched.Every(TaskViewsFluctuate, a.fluctuateInterval(), func(ctx context.Context) {
		a.counterChanged(a.views, a.views.Fluctuate(ctx))
	}); err != nil {
		return fmt.Errorf("failed to schedule views counter: %w", err)
	}
	if err := a.feed.Start(func(ev feed.Event) { a.emit(ev) }); err != nil {
		return fmt.Errorf("failed to start feed: %w", err)
	}
	a.logger.Info("app started", zap.Strings("tasks", a.sched.Names()))
	return nil
}

// Shutdown cancels every task, then stops delivering updates. It is safe to
// call more than once and without Start.
func (a *App) Shutdown() {
	a.sched.Shutdown()
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	started := a.started
	a.mu.Unlock()
	close(a.done)
	if started {
		<-a.pumpDone
	}
}

// Generate draws a meme for hint, bumps the memes counter, and announces it.
func (a *App) Generate(ctx context.Context, hint string, opts generator.Options) (model.Record, CounterUpdated) {
	return a.produce(ctx, a.gen.Generate(hint, opts))
}

// Headline draws a breaking-news record.
func (a *App) Headline(ctx context.Context, opts generator.Options) (model.Record, CounterUpdated) {
	return a.produce(ctx, a.gen.Headline(opts))
}

func (a *App) produce(ctx context.Context, rec model.Record) (model.Record, CounterUpdated) {
	v := a.memes.Add(ctx, 1)
	a.mu.Lock()
	a.current = rec
	a.session++
	a.mu.Unlock()
	a.announcer.Announce(generator.Announcement(rec), announce.Assertive)
	return rec, CounterUpdated{Key: a.memes.Key(), Value: v, Display: counter.MemesLine(v)}
}

// Opening draws the breaking-news record shown at launch. Unlike Headline it
// neither bumps the memes counter nor counts toward the session.
func (a *App) Opening(opts generator.Options) model.Record {
	rec := a.gen.Headline(opts)
	a.mu.Lock()
	a.current = rec
	a.mu.Unlock()
	a.announcer.Announce(generator.Announcement(rec), announce.Assertive)
	return rec
}

// Prompt posts the user's message to the chat.
func (a *App) Prompt(text string) feed.Entry {
	return a.feed.Post(UserAuthor, text)
}

// Reply answers a prompt with a generated meme posted by the bot.
func (a *App) Reply(ctx context.Context, hint string, opts generator.Options) (model.Record, CounterUpdated) {
	rec, update := a.Generate(ctx, hint, opts)
	a.feed.Post(BotAuthor, actions.MemeText(rec.Phrase))
	return rec, update
}

// Dispatch runs an action against the most recent record.
func (a *App) Dispatch(ctx context.Context, id actions.ID) (actions.Outcome, error) {
	return a.actions.Dispatch(ctx, id, a.Current())
}

// Current returns the most recently generated record.
func (a *App) Current() model.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// SessionCount is the number of records generated since New.
func (a *App) SessionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// MemesDisplay renders the memes counter.
func (a *App) MemesDisplay(ctx context.Context) string { return a.memes.Display(ctx) }

// ViewsDisplay renders the views counter.
func (a *App) ViewsDisplay(ctx context.Context) string { return a.views.Display(ctx) }

// Feed exposes the chat log and floating comments.
func (a *App) Feed() *feed.Feed { return a.feed }

// Generator exposes the generator.
func (a *App) Generator() *generator.Generator { return a.gen }

// Scheduler exposes the scheduler.
func (a *App) Scheduler() *scheduler.Scheduler { return a.sched }

// Sources lists the selectable sources.
func (a *App) Sources() []string { return a.gen.Pools().Sources() }

func (a *App) recordVisit(ctx context.Context) {
	now := a.sched.Clock().Now().UTC().Format(time.RFC3339)
	if err := a.kv.Set(ctx, counter.LastVisitKey, now); err != nil {
		a.logger.Warn("failed to record last visit", zap.Error(err))
	}
}

func (a *App) counterChanged(c *counter.Counter, v int) {
	display := counter.MemesLine(v)
	if c.Key() == counter.ViewsKey {
		display = counter.ViewsLine(v)
	}
	a.emit(CounterUpdated{Key: c.Key(), Value: v, Display: display})
}

func (a *App) taskFailed(task string, recovered any) {
	a.emit(TaskFailed{
		Task:    task,
		Message: fmt.Sprint(recovered),
		At:      a.sched.Clock().Now(),
	})
}

// emit queues msg for delivery. It never blocks; a full queue drops msg.
func (a *App) emit(msg any) {
	select {
	case <-a.done:
		return
	default:
	}
	select {
	case a.out <- msg:
	default:
		a.logger.Warn("dropping update", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (a *App) pump(notify Notify) {
	defer close(a.pumpDone)
	for {
		select {
		case <-a.done:
			return
		case msg := <-a.out:
			if notify != nil {
				notify(msg)
			}
		}
	}
}

func (a *App) tickInterval() time.Duration {
	if a.cfg.TickInterval > 0 {
		return a.cfg.TickInterval
	}
	return 1800 * time.Millisecond
}

func (a *App) fluctuateInterval() time.Duration {
	if a.cfg.FluctuateInterval > 0 {
		return a.cfg.FluctuateInterval
	}
	return 5 * time.Minute
}
