package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/verte-zerg/memewire/internal/actions"
	"github.com/verte-zerg/memewire/internal/announce"
	"github.com/verte-zerg/memewire/internal/app"
	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/config"
	"github.com/verte-zerg/memewire/internal/counter"
	"github.com/verte-zerg/memewire/internal/model"
)

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func newTestModel(t *testing.T, cfg model.Config) *Model {
	t.Helper()
	inbox := NewInbox()
	a := app.New(app.Deps{
		Config:    cfg,
		KV:        &memKV{values: map[string]string{}},
		Rand:      chance.New(1),
		Clock:     clockwork.NewFakeClock(),
		Announcer: inbox,
		Opener:    func(string) error { return nil },
	})
	t.Cleanup(a.Shutdown)
	m := NewModel(context.Background(), a, inbox, cfg)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func defaultTestConfig() model.Config {
	return config.Defaults()
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestRenderStatusBarFormats(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	out := m.renderStatusBar()
	if !containsAll(out, []string{"Confidence 97%", "Source random"}) {
		t.Fatalf("status bar missing expected segments: %s", out)
	}
	m.status = announce.Message{Text: "Meme copied to clipboard"}
	if !strings.Contains(m.renderStatusBar(), "Meme copied to clipboard") {
		t.Fatalf("status bar should show the announcement")
	}
}

func TestConfidenceKeysClampAndAnnounce(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	for i := 0; i < 5; i++ {
		press(m, tea.KeyUp)
	}
	if m.confidence != 100 {
		t.Fatalf("expected confidence clamped at 100, got %d", m.confidence)
	}
	if m.status.Text != "Confidence 100%" {
		t.Fatalf("unexpected status %q", m.status.Text)
	}
	press(m, tea.KeyDown)
	if m.confidence != 99 {
		t.Fatalf("expected 99, got %d", m.confidence)
	}
}

func TestTabCyclesSources(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	if m.sourceLabel() != "random" {
		t.Fatalf("expected random source first")
	}
	press(m, tea.KeyTab)
	if m.sourceLabel() != m.sources[0] || m.options().Source != m.sources[0] {
		t.Fatalf("expected first source, got %q", m.sourceLabel())
	}
	for range m.sources {
		press(m, tea.KeyTab)
	}
	if m.sourceLabel() != "random" || m.options().Source != "" {
		t.Fatalf("expected cycle back to random, got %q", m.sourceLabel())
	}
}

func TestConfiguredSourceIsSelected(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Source = "Radio Bemba"
	m := newTestModel(t, cfg)
	if m.sourceLabel() != "Radio Bemba" || m.sources[0] != "Radio Bemba" {
		t.Fatalf("expected custom source to be selected, got %q", m.sourceLabel())
	}
}

func TestHeadlineKeyShowsRecord(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	press(m, tea.KeyCtrlR)
	if !m.hasRecord || m.record.Category != model.CategoryRumor {
		t.Fatalf("expected a breaking-news record, got %+v", m.record)
	}
	if m.memesLine != "Memes generated today: 8,913" {
		t.Fatalf("unexpected memes line %q", m.memesLine)
	}
	if !strings.HasPrefix(m.status.Text, "Meme generated: ") {
		t.Fatalf("expected generation announcement, got %q", m.status.Text)
	}
	if !strings.Contains(m.View(), "BREAKING") {
		t.Fatalf("view should show the breaking-news card")
	}
}

func TestInitOpensOnBreakingNews(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	if m.hasRecord {
		t.Fatalf("no record expected before Init")
	}
	m.Init()
	if !m.hasRecord || m.record.Category != model.CategoryRumor {
		t.Fatalf("expected an opening headline, got %+v", m.record)
	}
	if m.app.Current() != m.record || m.app.SessionCount() != 0 {
		t.Fatalf("opening should be current but not counted")
	}
	if !strings.HasPrefix(m.status.Text, "Meme generated: ") || m.status.Priority != announce.Assertive {
		t.Fatalf("expected assertive generation announcement, got %+v", m.status)
	}
	if !strings.Contains(m.View(), "BREAKING") {
		t.Fatalf("view should show the breaking-news card")
	}
}

func TestZeroDefaultConfidenceIsKept(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.DefaultConfidence = 0
	m := newTestModel(t, cfg)
	if m.confidence != 0 {
		t.Fatalf("expected confidence 0, got %d", m.confidence)
	}
	press(m, tea.KeyCtrlR)
	if m.record.Confidence != 0 {
		t.Fatalf("expected record confidence 0, got %d", m.record.Confidence)
	}
}

func TestContractKeyDispatches(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.ContractAddress = "NFTmint111"
	m := newTestModel(t, cfg)
	cmd := press(m, tea.KeyCtrlT)
	if cmd == nil {
		t.Fatalf("expected an action command")
	}
	done, ok := cmd().(actionDoneMsg)
	if !ok || done.outcome.Action != actions.CopyContract {
		t.Fatalf("expected copy-contract outcome, got %+v", done)
	}
}

func TestPromptThenReply(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	m.input.SetValue("algo gracioso")
	if cmd := press(m, tea.KeyEnter); cmd == nil {
		t.Fatalf("expected reply to be scheduled")
	}
	if !m.typing || m.input.Value() != "" {
		t.Fatalf("expected typing indicator and cleared input")
	}
	if len(m.chatEntries) != 1 || m.chatEntries[0].Author != app.UserAuthor {
		t.Fatalf("expected user prompt in chat, got %+v", m.chatEntries)
	}
	if press(m, tea.KeyEnter) != nil {
		t.Fatalf("expected enter to be ignored while typing")
	}

	m.Update(typingTickMsg{seq: m.typingSeq})
	if m.typingIdx != 1 {
		t.Fatalf("expected typing message to rotate, got %d", m.typingIdx)
	}

	m.Update(replyMsg{seq: m.typingSeq - 1, hint: "stale"})
	if !m.typing {
		t.Fatalf("stale reply must be ignored")
	}
	m.Update(replyMsg{seq: m.typingSeq, hint: "algo gracioso"})
	if m.typing {
		t.Fatalf("expected typing to stop")
	}
	if m.record.Category != model.CategoryFunny {
		t.Fatalf("expected funny record, got %s", m.record.Category)
	}
	if len(m.chatEntries) != 2 || m.chatEntries[1].Author != app.BotAuthor {
		t.Fatalf("expected bot reply in chat, got %+v", m.chatEntries)
	}
	if m.chatEntries[1].Text != actions.MemeText(m.record.Phrase) {
		t.Fatalf("unexpected reply text %q", m.chatEntries[1].Text)
	}
}

func TestStatusClearsOnlyForLatestAnnouncement(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	press(m, tea.KeyUp)
	first := m.statusSeq
	press(m, tea.KeyUp)
	m.Update(clearStatusMsg{seq: first})
	if m.status.Text == "" {
		t.Fatalf("old clear message must not wipe the newer status")
	}
	m.Update(clearStatusMsg{seq: m.statusSeq})
	if m.status.Text != "" {
		t.Fatalf("expected status to clear")
	}
}

func TestTaskFailedBanner(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	m.Update(app.TaskFailed{Task: "feed/chat", Message: "boom", At: time.Now()})
	if m.banner == nil {
		t.Fatalf("expected banner")
	}
	if m.status.Priority != announce.Assertive {
		t.Fatalf("expected assertive announcement, got %+v", m.status)
	}
	if !strings.Contains(m.View(), "feed/chat") {
		t.Fatalf("view should show the banner")
	}
	m.Update(bannerExpiredMsg{seq: m.bannerSeq})
	if m.banner != nil {
		t.Fatalf("expected banner to expire")
	}

	m.Update(app.TaskFailed{Task: "feed/chat", Message: "again"})
	press(m, tea.KeyEsc)
	if m.banner != nil {
		t.Fatalf("expected esc to dismiss banner")
	}
}

func TestFallbackAlertBlocksUntilDismissed(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	m.Update(actionDoneMsg{outcome: actions.Outcome{Action: actions.CopyLink, Fallback: "https://nftsol.xyz", Label: "Site link"}})
	if m.alert == "" {
		t.Fatalf("expected alert panel")
	}
	view := m.View()
	if !strings.Contains(view, "https://nftsol.xyz") || !strings.Contains(view, "site link") {
		t.Fatalf("alert should show the literal text: %s", view)
	}
	press(m, tea.KeyUp)
	if m.confidence != 97 {
		t.Fatalf("keys must be blocked while the alert is open")
	}
	press(m, tea.KeyEsc)
	if m.alert != "" {
		t.Fatalf("expected esc to dismiss alert")
	}
}

func TestCounterUpdatesRouteByKey(t *testing.T) {
	m := newTestModel(t, defaultTestConfig())
	m.Update(app.CounterUpdated{Key: counter.ViewsKey, Value: 1500, Display: counter.ViewsLine(1500)})
	m.Update(app.CounterUpdated{Key: counter.MemesKey, Value: 9000, Display: counter.MemesLine(9000)})
	if m.viewsLine != "1.5k views • memes & chaos" {
		t.Fatalf("unexpected views line %q", m.viewsLine)
	}
	if m.memesLine != "Memes generated today: 9,000" {
		t.Fatalf("unexpected memes line %q", m.memesLine)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
