// Package moodcal renders a month of mood entries as a navigable grid.
package moodcal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/heybuddy/internal/calendar"
	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(6).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center)

	todayStyle = cellStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true)

	emptyDayStyle = cellStyle.
			Foreground(lipgloss.Color("240"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type KeyMap struct {
	Prev key.Binding
	Next key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev month"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next month"),
		),
	}
}

type Model struct {
	Keys    KeyMap
	year    int
	month   time.Month
	today   string
	entries []models.MoodEntry
}

// New shows the month containing today (YYYY-MM-DD).
func New(today string) Model {
	m := Model{Keys: DefaultKeyMap()}
	m.SetToday(today)
	if t, err := time.Parse("2006-01-02", today); err == nil {
		m.year, m.month = t.Year(), t.Month()
	}
	return m
}

// SetEntries replaces the mood history shown on the grid.
func (m *Model) SetEntries(entries []models.MoodEntry) {
	m.entries = entries
}

// SetToday moves the highlighted day without changing the visible month.
func (m *Model) SetToday(today string) {
	m.today = today
}

// Month returns the visible year and month.
func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m Model) grid() calendar.Grid {
	return calendar.Month(m.year, m.month, m.entries, m.today)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Prev):
			m.year, m.month = m.grid().Prev()
		case key.Matches(msg, m.Keys.Next):
			m.year, m.month = m.grid().Next()
		}
	}
	return m, nil
}

func (m Model) View() string {
	g := m.grid()

	var b strings.Builder
	b.WriteString(titleStyle.Render(g.Title()))
	b.WriteString("\n\n")

	headers := make([]string, len(calendar.Weekdays))
	for i, wd := range calendar.Weekdays {
		headers[i] = headerStyle.Render(wd)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for _, week := range g.Weeks {
		cells := make([]string, len(week))
		for i, c := range week {
			cells[i] = renderCell(c)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("%d day(s) recorded this month", g.Recorded())))
	return b.String()
}

func renderCell(c calendar.Cell) string {
	if c.Blank() {
		return cellStyle.Render("")
	}
	label := fmt.Sprintf("%d", c.Day)
	style := emptyDayStyle
	if c.Mood != nil {
		label = fmt.Sprintf("%d%s", c.Day, c.Mood.Emoji)
		style = cellStyle
		if opt, ok := catalog.MoodByEmoji(c.Mood.Emoji); ok {
			style = style.Foreground(lipgloss.Color(opt.Color))
		}
	}
	if c.IsToday {
		style = todayStyle
	}
	return style.Render(label)
}
