package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/stats"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	summary  *ledger.Summary
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.summary == nil {
		return "No statistics yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetSummary(s ledger.Summary) {
	m.summary = &s
	m.render()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func (m *Model) render() {
	if m.summary == nil {
		return
	}
	s := m.summary

	var b strings.Builder
	b.WriteString(row("🔥 Streak", s.StreakMessage) + "\n")
	b.WriteString(noteStyle.Render(s.StreakDescription) + "\n\n")
	b.WriteString(row("📊 Weekly average", fmt.Sprintf("%.1f/10", s.WeeklyAverage)) + "\n")
	b.WriteString(row(stats.TrendEmoji(s.Trend)+" Trend", string(s.Trend)) + "\n")
	b.WriteString(noteStyle.Render(stats.TrendDescription(s.Trend)) + "\n\n")
	b.WriteString(row("✅ Check-ins", fmt.Sprintf("%d", s.TotalCheckIns)) + "\n\n")

	b.WriteString(valueStyle.Render("🏆 Achievements") + "\n")
	if len(s.Achievements) == 0 {
		b.WriteString(noteStyle.Render("  None yet, keep going!") + "\n")
	}
	for _, a := range s.Achievements {
		b.WriteString(fmt.Sprintf("  %s %s\n", a.Emoji, a.Title))
	}
	m.viewport.SetContent(b.String())
}
