package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/stats"
	"github.com/julianstephens/heybuddy/internal/tui/components/buddies"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.buddiesModel.SetSize(msg.Width-4, msg.Height-6)
		m.summaryModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, listenForSnapshots(m.updates)

	case writeErrorMsg:
		m.status = fmt.Sprintf("⚠ Couldn't save %s: %v", msg.Key, msg.Err)
		return m, listenForWriteErrors(m.writeErrors)

	case tickMsg:
		// Daily fields depend on the date, so refresh even without a mutation
		m.applySnapshot(m.ledger.Snapshot())
		return m, tick()

	case buddies.SelectBuddyMsg:
		if _, err := m.ledger.SelectBuddy(msg.ID); err != nil {
			m.status = "⚠ " + err.Error()
			return m, nil
		}
		m.buddyMessage = m.ledger.BuddyMessage()
		m.status = ""
		return m, nil

	case buddies.HearMessageMsg:
		m.buddyMessage = m.ledger.BuddyMessage()
		return m, nil
	}

	if m.state == constants.StatePickMood {
		return m.updateMoodForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			n := constants.SessionState(len(tabTitles))
			m.state = (m.state - 1 + n) % n
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHome:
		return m.updateHome(msg)
	case constants.StateMood:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Mood) {
			return m.openMoodForm()
		}
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	case constants.StateBuddy:
		m.buddiesModel, cmd = m.buddiesModel.Update(msg)
	case constants.StateStats:
		m.summaryModel, cmd = m.summaryModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.CheckIn):
		res := m.ledger.CheckIn(m.now())
		if res.Changed {
			m.status = "✓ Checked in! " + stats.StreakMessage(res.Streak)
		} else {
			m.status = "Already checked in today"
		}
	case key.Matches(keyMsg, m.keys.MedsYes):
		m.ledger.SetMedsTaken(true)
		m.status = "✓ Meds taken, nice work"
	case key.Matches(keyMsg, m.keys.MedsNo):
		m.ledger.SetMedsTaken(false)
		m.status = "Noted, meds not taken yet"
	case key.Matches(keyMsg, m.keys.Mood):
		return m.openMoodForm()
	case key.Matches(keyMsg, m.keys.Message):
		m.buddyMessage = m.ledger.BuddyMessage()
	case key.Matches(keyMsg, m.keys.Joke):
		m.joke = catalog.RandomJoke(nil)
	}
	return m, nil
}

func (m Model) openMoodForm() (tea.Model, tea.Cmd) {
	m.moodForm = &MoodFormModel{Emoji: m.snap.TodaysMood}
	if entry, ok := m.ledger.MoodOnDate(m.snap.Today); ok {
		m.moodForm.Note = entry.Note
	}
	m.form = newMoodForm(m.moodForm)
	m.previousState = m.state
	m.state = constants.StatePickMood
	return m, m.form.Init()
}

func (m Model) updateMoodForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		mood, ok := catalog.MoodByEmoji(m.moodForm.Emoji)
		if !ok {
			m.status = "⚠ Unknown mood"
		} else if _, err := m.ledger.RecordMood(m.snap.Today, mood.Emoji, mood.Intensity, m.moodForm.Note); err != nil {
			m.status = "⚠ " + err.Error()
		} else {
			m.status = fmt.Sprintf("✓ Feeling %s %s today", mood.Emoji, mood.Label)
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}
