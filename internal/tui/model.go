// Package tui is the interactive terminal front end. It drives a ledger and
// learns about state changes through a ledger subscription.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/tui/components/buddies"
	"github.com/julianstephens/heybuddy/internal/tui/components/moodcal"
	"github.com/julianstephens/heybuddy/internal/tui/components/summary"
)

// rolloverInterval is how often the view re-reads the ledger so daily fields
// clear after midnight
const rolloverInterval = time.Minute

var tabTitles = []string{"Home", "Mood", "Buddy", "Stats"}

type MoodFormModel struct {
	Emoji string
	Note  string
}

// Config carries the optional wiring for NewModel
type Config struct {
	Now func() time.Time
	// WriteErrors receives failed writes reported by the ledger
	WriteErrors <-chan ledger.WriteError
	// Fallbacks is the number of stored fields that failed to load
	Fallbacks int
}

type Model struct {
	ledger        *ledger.Ledger
	now           func() time.Time
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	snap          models.Snapshot
	updates       chan models.Snapshot
	writeErrors   <-chan ledger.WriteError
	unsubscribe   func()
	buddyMessage  string
	joke          string
	status        string
	form          *huh.Form
	moodForm      *MoodFormModel
	buddiesModel  buddies.Model
	calendarModel moodcal.Model
	summaryModel  summary.Model
	quitting      bool
	width         int
	height        int
}

func NewModel(l *ledger.Ledger, cfg Config) Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	// Holds only the newest snapshot; older ones are dropped unread
	updates := make(chan models.Snapshot, 1)
	unsubscribe := l.Subscribe(func(s models.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})

	snap := l.Snapshot()
	m := Model{
		ledger:        l,
		now:           now,
		state:         constants.StateHome,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		updates:       updates,
		writeErrors:   cfg.WriteErrors,
		unsubscribe:   unsubscribe,
		buddyMessage:  l.BuddyMessage(),
		joke:          catalog.RandomJoke(nil),
		buddiesModel:  buddies.New(catalog.Buddies(), snap.Buddy.ID, 0, 0),
		calendarModel: moodcal.New(snap.Today),
		summaryModel:  summary.New(0, 0),
	}
	m.applySnapshot(snap)

	if cfg.Fallbacks > 0 {
		m.status = fmt.Sprintf("⚠ %d saved field(s) could not be read and were reset", cfg.Fallbacks)
	}
	return m
}

// Close removes the ledger subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) applySnapshot(s models.Snapshot) {
	m.snap = s
	m.buddiesModel.SetActive(s.Buddy.ID)
	m.calendarModel.SetEntries(s.MoodEntries)
	m.calendarModel.SetToday(s.Today)
	m.summaryModel.SetSummary(m.ledger.Summary(m.now()))
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHome:
		keys = append(keys, m.keys.CheckIn, m.keys.Mood, m.keys.MedsYes, m.keys.MedsNo)
	case constants.StateMood:
		keys = append(keys, m.calendarModel.Keys.Prev, m.calendarModel.Keys.Next, m.keys.Mood)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateHome:
		actions = []key.Binding{m.keys.CheckIn, m.keys.MedsYes, m.keys.MedsNo, m.keys.Mood, m.keys.Message, m.keys.Joke}
	case constants.StateMood:
		actions = []key.Binding{m.calendarModel.Keys.Prev, m.calendarModel.Keys.Next, m.keys.Mood}
	}
	return [][]key.Binding{global, actions}
}

type snapshotMsg models.Snapshot

type writeErrorMsg ledger.WriteError

type tickMsg time.Time

func listenForSnapshots(ch <-chan models.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-ch)
	}
}

func listenForWriteErrors(ch <-chan ledger.WriteError) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		we, ok := <-ch
		if !ok {
			return nil
		}
		return writeErrorMsg(we)
	}
}

func tick() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(listenForSnapshots(m.updates), listenForWriteErrors(m.writeErrors), tick())
}

func newMoodForm(fm *MoodFormModel) *huh.Form {
	palette := catalog.MoodPalette()
	options := make([]huh.Option[string], len(palette))
	for i, mood := range palette {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s (%d)", mood.Emoji, mood.Label, mood.Intensity), mood.Emoji)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling today?").
				Options(options...).
				Value(&fm.Emoji),
			huh.NewInput().
				Title("Note").
				Description("Optional").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}
