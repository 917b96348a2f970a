package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Key Map ---

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	Focus   key.Binding
	Prev    key.Binding
	Next    key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Retry   key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Deny    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "field")),
	Prev:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "country")),
	Next:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "country")),
	Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Deny:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
}

// ShortHelp is the table view line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Help, k.Quit}
}

// FullHelp groups every binding by where it applies.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit},
		{k.Focus, k.Prev, k.Next, k.Save, k.Cancel},
		{k.Retry, k.Help, k.Quit},
	}
}

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Quit)
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Up)
}

func isDown(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Down)
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isEdit(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Edit)
}

func isSave(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Save)
}
