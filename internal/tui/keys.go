package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	CheckIn  key.Binding
	MedsYes  key.Binding
	MedsNo   key.Binding
	Mood     key.Binding
	Message  key.Binding
	Joke     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.CheckIn, k.MedsYes, k.MedsNo, k.Mood, k.Message, k.Joke},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		CheckIn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check in"),
		),
		MedsYes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "meds taken"),
		),
		MedsNo: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "meds not taken"),
		),
		Mood: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "record mood"),
		),
		Message: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buddy message"),
		),
		Joke: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "new joke"),
		),
	}
}
