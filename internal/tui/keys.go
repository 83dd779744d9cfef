package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	Commit   key.Binding
	Undo     key.Binding
	Finalize key.Binding
	Next     key.Binding
	Prev     key.Binding
	Back     key.Binding
	NewGame  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Commit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next round")),
		Undo:     key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo last round")),
		Finalize: key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "submit game")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next player")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
		Back:     key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "back to editing")),
		NewGame:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
	}
}

func (k keyMap) editingHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Undo, k.Finalize, k.Next, k.Quit}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.Back, k.NewGame, k.Quit}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}
