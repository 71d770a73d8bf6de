// Package tui provides the Bubble Tea meme desk interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/memewire/internal/actions"
	"github.com/verte-zerg/memewire/internal/announce"
	"github.com/verte-zerg/memewire/internal/app"
	"github.com/verte-zerg/memewire/internal/counter"
	"github.com/verte-zerg/memewire/internal/feed"
	"github.com/verte-zerg/memewire/internal/generator"
	"github.com/verte-zerg/memewire/internal/model"
)

const (
	typingRotate = 800 * time.Millisecond
	replyDelay   = 1500 * time.Millisecond
	statusTTL    = time.Second
	bannerTTL    = 10 * time.Second
)

// Quick prompts offered on ctrl+f and ctrl+p.
const (
	funnyPrompt     = "Genera un meme gracioso de Maduro"
	politicalPrompt = "Genera un meme político de Maduro"
)

type countersMsg struct {
	memes string
	views string
}

type typingTickMsg struct{ seq int }

type replyMsg struct {
	seq  int
	hint string
}

type clearStatusMsg struct{ seq int }

type bannerExpiredMsg struct{ seq int }

type actionDoneMsg struct {
	outcome actions.Outcome
}

// Model implements the Bubble Tea meme desk.
type Model struct {
	app   *app.App
	inbox *Inbox
	ctx   context.Context

	width  int
	height int

	keys    keyMap
	help    help.Model
	input   textinput.Model
	chat    viewport.Model
	spinner spinner.Model

	record    model.Record
	hasRecord bool
	memesLine string
	viewsLine string

	confidence int
	sources    []string
	sourceIdx  int

	chatEntries []feed.Entry
	floating    []feed.Entry

	typing    bool
	typingIdx int
	typingSeq int

	status    announce.Message
	statusSeq int

	banner    *app.TaskFailed
	bannerSeq int

	alert      string
	alertLabel string
}

// NewModel constructs the TUI model. inbox must be the announcer the app was
// built with.
func NewModel(ctx context.Context, a *app.App, inbox *Inbox, cfg model.Config) *Model {
	input := textinput.New()
	input.Placeholder = "Pide un meme... (funny, político)"
	input.Prompt = "› "
	input.CharLimit = 200
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = typingStyle

	confidence := cfg.DefaultConfidence
	if confidence < 0 || confidence > 100 {
		confidence = generator.DefaultConfidence
	}

	m := &Model{
		app:        a,
		inbox:      inbox,
		ctx:        ctx,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		chat:       viewport.New(0, 0),
		spinner:    sp,
		confidence: confidence,
		sourceIdx:  -1,
	}
	m.sources = append(m.sources, a.Sources()...)
	if src := strings.TrimSpace(cfg.Source); src != "" {
		m.sourceIdx = indexOf(m.sources, src)
		if m.sourceIdx < 0 {
			m.sources = append([]string{src}, m.sources...)
			m.sourceIdx = 0
		}
	}
	m.refreshFeed()
	return m
}

// Init implements tea.Model. The desk opens on a breaking-news headline.
func (m *Model) Init() tea.Cmd {
	if !m.hasRecord {
		m.record = m.app.Opening(m.options())
		m.hasRecord = true
	}
	return tea.Batch(textinput.Blink, m.loadCounters, m.flushStatus())
}

func (m *Model) loadCounters() tea.Msg {
	return countersMsg{memes: m.app.MemesDisplay(m.ctx), views: m.app.ViewsDisplay(m.ctx)}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-4)
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case countersMsg:
		m.memesLine = msg.memes
		m.viewsLine = msg.views
		return nil
	case app.CounterUpdated:
		m.applyCounter(msg)
		return nil
	case feed.Event:
		m.refreshFeed()
		return nil
	case app.TaskFailed:
		failed := msg
		m.banner = &failed
		m.bannerSeq++
		seq := m.bannerSeq
		m.inbox.Announce("Something went wrong in "+msg.Task, announce.Assertive)
		return tea.Batch(m.flushStatus(), tea.Tick(bannerTTL, func(time.Time) tea.Msg { return bannerExpiredMsg{seq: seq} }))
	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = nil
		}
		return nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = announce.Message{}
		}
		return nil
	case typingTickMsg:
		if !m.typing || msg.seq != m.typingSeq {
			return nil
		}
		m.typingIdx = (m.typingIdx + 1) % max(1, len(m.typingMessages()))
		return tickTyping(msg.seq)
	case replyMsg:
		if msg.seq != m.typingSeq {
			return nil
		}
		m.typing = false
		rec, update := m.app.Reply(m.ctx, msg.hint, m.options())
		m.showRecord(rec, update)
		return m.flushStatus()
	case spinner.TickMsg:
		if !m.typing {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case actionDoneMsg:
		if msg.outcome.Fallback != "" {
			m.alert = msg.outcome.Fallback
			m.alertLabel = strings.ToLower(msg.outcome.Label)
		}
		return m.flushStatus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.alert != "" {
		if key.Matches(msg, m.keys.Dismiss) || key.Matches(msg, m.keys.Send) {
			m.alert = ""
			m.alertLabel = ""
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Send):
		return m.submit(m.input.Value())
	case key.Matches(msg, m.keys.Funny):
		return m.submit(funnyPrompt)
	case key.Matches(msg, m.keys.Political):
		return m.submit(politicalPrompt)
	case key.Matches(msg, m.keys.Headline):
		rec, update := m.app.Headline(m.ctx, m.options())
		m.showRecord(rec, update)
		return m.flushStatus()
	case key.Matches(msg, m.keys.MoreConf):
		return m.adjustConfidence(1)
	case key.Matches(msg, m.keys.LessConf):
		return m.adjustConfidence(-1)
	case key.Matches(msg, m.keys.NextSource):
		return m.cycleSource()
	case key.Matches(msg, m.keys.CopyMeme):
		return m.dispatch(actions.CopyMeme)
	case key.Matches(msg, m.keys.CopyCaption):
		return m.dispatch(actions.CopyCaption)
	case key.Matches(msg, m.keys.CopyLink):
		return m.dispatch(actions.CopyLink)
	case key.Matches(msg, m.keys.CopyContract):
		return m.dispatch(actions.CopyContract)
	case key.Matches(msg, m.keys.Share):
		return m.dispatch(actions.Share)
	case key.Matches(msg, m.keys.Buy):
		return m.dispatch(actions.Buy)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		if m.banner != nil {
			m.banner = nil
			return nil
		}
		m.input.Reset()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit posts the prompt and schedules the bot reply.
func (m *Model) submit(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.typing {
		return nil
	}
	m.input.Reset()
	m.app.Prompt(text)
	m.refreshFeed()
	m.typing = true
	m.typingIdx = 0
	m.typingSeq++
	seq := m.typingSeq
	return tea.Batch(
		m.spinner.Tick,
		tickTyping(seq),
		tea.Tick(replyDelay, func(time.Time) tea.Msg { return replyMsg{seq: seq, hint: text} }),
	)
}

func tickTyping(seq int) tea.Cmd {
	return tea.Tick(typingRotate, func(time.Time) tea.Msg { return typingTickMsg{seq: seq} })
}

func (m *Model) dispatch(id actions.ID) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		// Failures are announced by the dispatcher.
		out, _ := a.Dispatch(ctx, id)
		return actionDoneMsg{outcome: out}
	}
}

func (m *Model) adjustConfidence(delta int) tea.Cmd {
	m.confidence = generator.ClampConfidence(m.confidence + delta)
	m.inbox.Announce(fmt.Sprintf("Confidence %d%%", m.confidence), announce.Polite)
	return m.flushStatus()
}

func (m *Model) cycleSource() tea.Cmd {
	m.sourceIdx++
	if m.sourceIdx >= len(m.sources) {
		m.sourceIdx = -1
	}
	m.inbox.Announce("Source: "+m.sourceLabel(), announce.Polite)
	return m.flushStatus()
}

func (m *Model) sourceLabel() string {
	if m.sourceIdx < 0 || m.sourceIdx >= len(m.sources) {
		return "random"
	}
	return m.sources[m.sourceIdx]
}

func (m *Model) options() generator.Options {
	confidence := m.confidence
	opts := generator.Options{Confidence: &confidence}
	if m.sourceIdx >= 0 && m.sourceIdx < len(m.sources) {
		opts.Source = m.sources[m.sourceIdx]
	}
	return opts
}

func (m *Model) showRecord(rec model.Record, update app.CounterUpdated) {
	m.record = rec
	m.hasRecord = true
	m.applyCounter(update)
	m.refreshFeed()
}

func (m *Model) applyCounter(u app.CounterUpdated) {
	if u.Display == "" {
		return
	}
	switch u.Key {
	case counter.MemesKey:
		m.memesLine = u.Display
	case counter.ViewsKey:
		m.viewsLine = u.Display
	}
}

// flushStatus moves pending announcements to the status line. An assertive
// message wins over later polite ones.
func (m *Model) flushStatus() tea.Cmd {
	pending := m.inbox.drain()
	if len(pending) == 0 {
		return nil
	}
	chosen := pending[len(pending)-1]
	for _, msg := range pending {
		if msg.Priority == announce.Assertive {
			chosen = msg
		}
	}
	m.status = chosen
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) refreshFeed() {
	f := m.app.Feed()
	m.chatEntries = f.Chat().Entries()
	m.floating = f.Floating().Live()
	m.chat.SetContent(m.renderChat(m.chat.Width))
	m.chat.GotoBottom()
}

func (m *Model) typingMessages() []string {
	return m.app.Generator().Pools().Typing()
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
