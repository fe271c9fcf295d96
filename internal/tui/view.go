package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHome:
		content = m.viewHome()
	case constants.StateMood:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateBuddy:
		content = docStyle.Render(m.buddiesModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.summaryModel.View())
	case constants.StatePickMood:
		content = docStyle.Render(m.form.View())
	}

	var banner string
	if m.status != "" {
		banner = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == constants.StatePickMood {
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHome() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s says:\n", s.Buddy.Emoji, s.Buddy.Name))
	b.WriteString(messageStyle.BorderForeground(lipgloss.Color(s.Buddy.Color)).Render(m.buddyMessage))
	b.WriteString("\n\n")

	b.WriteString(stats.StreakMessage(s.Streak) + "\n")
	if s.LastCheckIn == s.Today {
		b.WriteString(successStyle.Render("✓ Checked in today") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("Press c to check in") + "\n")
	}

	switch {
	case s.MedsTaken == nil:
		b.WriteString("💊 Meds today? " + mutedStyle.Render("(y/n)") + "\n")
	case *s.MedsTaken:
		b.WriteString("💊 Meds today: " + successStyle.Render("taken") + "\n")
	default:
		b.WriteString("💊 Meds today: " + warningStyle.Render("not taken") + "\n")
	}

	if s.TodaysMood == "" {
		b.WriteString("Mood today: " + mutedStyle.Render("press m to pick") + "\n")
	} else {
		label := ""
		if mood, ok := catalog.MoodByEmoji(s.TodaysMood); ok {
			label = " " + mood.Label
		}
		b.WriteString("Mood today: " + s.TodaysMood + label + "\n")
	}

	b.WriteString("\n😄 " + m.joke + "\n")
	return docStyle.Render(b.String())
}
