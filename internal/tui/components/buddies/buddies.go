package buddies

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heybuddy/internal/models"
)

// SelectBuddyMsg asks the parent to make ID the active buddy
type SelectBuddyMsg struct {
	ID string
}

// HearMessageMsg asks the parent for a message from the active buddy
type HearMessageMsg struct{}

type Item struct {
	Buddy    models.Buddy
	IsActive bool
}

func (i Item) Title() string {
	title := i.Buddy.Emoji + " " + i.Buddy.Name
	if i.IsActive {
		title += " ✓"
	}
	return title
}

func (i Item) Description() string { return i.Buddy.Description }
func (i Item) FilterValue() string { return i.Buddy.Name }

type KeyMap struct {
	Select key.Binding
	Hear   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "choose buddy"),
		),
		Hear: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "hear a message"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	buddies []models.Buddy
}

func New(buddies []models.Buddy, activeID string, width, height int) Model {
	l := list.New(items(buddies, activeID), list.NewDefaultDelegate(), width, height)
	l.Title = "Buddies"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Hear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Hear}
	}

	return Model{list: l, keys: keys, buddies: buddies}
}

func items(buddies []models.Buddy, activeID string) []list.Item {
	out := make([]list.Item, len(buddies))
	for i, b := range buddies {
		out[i] = Item{Buddy: b, IsActive: b.ID == activeID}
	}
	return out
}

// SetActive marks activeID as the current buddy.
func (m *Model) SetActive(activeID string) {
	m.list.SetItems(items(m.buddies, activeID))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.IsActive {
				return m, func() tea.Msg { return SelectBuddyMsg{ID: i.Buddy.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Hear):
			return m, func() tea.Msg { return HearMessageMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
