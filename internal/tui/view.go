package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/memewire/internal/announce"
	"github.com/verte-zerg/memewire/internal/app"
	"github.com/verte-zerg/memewire/internal/feed"
	"github.com/verte-zerg/memewire/internal/generator"
	"github.com/verte-zerg/memewire/internal/model"
)

const siteTitle = "NIKE FLEECE MADURO TECH"

var (
	liveStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF2D55")).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD400"))
	viewsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	counterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF7B"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FFD400")).Padding(0, 1)
	kickerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF2D55"))
	phraseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0A0A0A")).Background(lipgloss.Color("#00FF7B")).Padding(0, 1)
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	botStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D5FF"))
	viewerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A855FF"))
	floatingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2A2A2A")).Padding(0, 1)
	typingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D5FF"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF4D4F")).Padding(0, 1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#FF4D4F")).Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.alert != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderAlert())
	}
	return strings.Join(m.sections(), "\n")
}

func (m *Model) sections() []string {
	top := m.topSections()
	bottom := m.bottomSections()
	return append(append(top, m.chat.View()), bottom...)
}

func (m *Model) topSections() []string {
	out := []string{m.renderHeader()}
	if m.banner != nil {
		out = append(out, renderBanner(*m.banner, m.width))
	}
	out = append(out, counterStyle.Render(truncate(m.memesLine, m.width)))
	out = append(out, m.renderCard())
	return out
}

func (m *Model) bottomSections() []string {
	var out []string
	for _, e := range m.floating {
		out = append(out, floatingStyle.Render(truncate("💬 "+e.Author+": "+e.Text, max(1, m.width-2))))
	}
	out = append(out, m.renderTyping())
	out = append(out, m.renderStatusBar())
	out = append(out, m.input.View())
	out = append(out, m.help.View(m.keys))
	return out
}

// layout gives the chat viewport whatever height is left.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	used := 0
	for _, s := range m.topSections() {
		used += lipgloss.Height(s)
	}
	for _, s := range m.bottomSections() {
		used += lipgloss.Height(s)
	}
	width := m.width
	height := max(1, m.height-used)
	if m.chat.Width != width || m.chat.Height != height {
		m.chat.Width = width
		m.chat.Height = height
		m.chat.SetContent(m.renderChat(width))
		m.chat.GotoBottom()
	}
}

func (m *Model) renderHeader() string {
	left := liveStyle.Render("LIVE") + " " + titleStyle.Render(siteTitle)
	right := viewsStyle.Render(m.viewsLine)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left + " " + right)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderCard() string {
	inner := max(10, m.width-4)
	if !m.hasRecord {
		return cardStyle.Width(inner).Render(metaStyle.Render("Press enter to ask for a meme, ctrl+r for breaking news."))
	}
	return cardStyle.Width(inner).Render(renderRecord(m.record, inner-2))
}

func renderRecord(rec model.Record, width int) string {
	kicker := "MEME"
	if rec.Category == model.CategoryRumor {
		kicker = "BREAKING"
	}
	lines := []string{kickerStyle.Render(kicker)}
	for _, l := range wrapText(rec.Phrase, width) {
		lines = append(lines, phraseStyle.Render(l))
	}
	for _, l := range wrapText(generator.MetaLine(rec), width) {
		lines = append(lines, metaStyle.Render(l))
	}
	lines = append(lines, badgeStyle.Render(generator.ConfidenceLabel(rec)))
	return strings.Join(lines, "\n")
}

func (m *Model) renderChat(width int) string {
	if width <= 0 {
		return ""
	}
	blocks := make([]string, 0, len(m.chatEntries))
	for _, e := range m.chatEntries {
		blocks = append(blocks, renderEntry(e, width))
	}
	return strings.Join(blocks, "\n")
}

func renderEntry(e feed.Entry, width int) string {
	prefix := e.Author + ": "
	lines := wrapText(prefix+e.Text, width)
	if strings.HasPrefix(lines[0], prefix) {
		lines[0] = authorStyle(e.Author).Render(prefix) + strings.TrimPrefix(lines[0], prefix)
	}
	return strings.Join(lines, "\n")
}

func authorStyle(author string) lipgloss.Style {
	switch author {
	case app.UserAuthor:
		return userStyle
	case app.BotAuthor:
		return botStyle
	default:
		return viewerStyle
	}
}

func (m *Model) renderTyping() string {
	if !m.typing {
		return ""
	}
	msgs := m.typingMessages()
	if len(msgs) == 0 {
		return m.spinner.View()
	}
	return m.spinner.View() + " " + typingStyle.Render(msgs[m.typingIdx%len(msgs)])
}

func (m *Model) renderStatusBar() string {
	segments := []string{
		fmt.Sprintf("Confidence %d%%", m.confidence),
		"Source " + m.sourceLabel(),
	}
	if n := m.app.SessionCount(); n > 0 {
		segments = append(segments, fmt.Sprintf("Session %d", n))
	}
	line := statusStyle.Render(strings.Join(segments, "  "))
	if m.status.Text != "" {
		style := counterStyle
		if m.status.Priority == announce.Assertive {
			style = alertStyle
		}
		line += "  " + style.Render(m.status.Text)
	}
	if m.width > 0 && lipgloss.Width(line) > m.width {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func renderBanner(f app.TaskFailed, width int) string {
	text := fmt.Sprintf("Something went wrong in %s: %s (esc to dismiss)", f.Task, f.Message)
	return bannerStyle.Render(truncate(text, max(1, width-2)))
}

func (m *Model) renderAlert() string {
	width := max(20, min(m.width-8, 72))
	title := alertStyle.Render("Could not copy the " + m.alertLabel + ". Select it below manually:")
	body := strings.Join(wrapText(m.alert, width), "\n")
	hint := statusStyle.Render("esc or enter to close")
	return panelStyle.Width(width + 4).Render(title + "\n\n" + body + "\n\n" + hint)
}
