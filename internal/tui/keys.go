package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key represents a key binding.
type Key struct {
	Keys []string
	Help string
}

// Matches checks if a key message matches this binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Search Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F6  Key
	F10 Key
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       Key{Keys: []string{"up", "k"}, Help: "up"},
		Down:     Key{Keys: []string{"down", "j"}, Help: "down"},
		PageUp:   Key{Keys: []string{"pgup", "ctrl+u"}, Help: "page up"},
		PageDown: Key{Keys: []string{"pgdown", "ctrl+d"}, Help: "page down"},

		Select: Key{Keys: []string{"enter"}, Help: "select"},
		Back:   Key{Keys: []string{"esc"}, Help: "back"},
		Quit:   Key{Keys: []string{"q", "ctrl+c"}, Help: "quit"},
		Search: Key{Keys: []string{"/", "s"}, Help: "search"},

		F1:  Key{Keys: []string{"f1", "?"}, Help: "Help"},
		F2:  Key{Keys: []string{"f2"}, Help: "Dashboard"},
		F3:  Key{Keys: []string{"f3"}, Help: "Ingredients"},
		F4:  Key{Keys: []string{"f4"}, Help: "Recipes"},
		F5:  Key{Keys: []string{"f5"}, Help: "Products"},
		F6:  Key{Keys: []string{"f6"}, Help: "Price History"},
		F10: Key{Keys: []string{"f10"}, Help: "Quit"},
	}
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a module navigation key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4, km.F5, km.F6, km.F10)
}

// FunctionKeyModule returns the module name for a function key.
func (km KeyMap) FunctionKeyModule(msg tea.KeyMsg) string {
	switch {
	case km.F1.Matches(msg):
		return "help"
	case km.F2.Matches(msg):
		return "dashboard"
	case km.F3.Matches(msg):
		return "ingredients"
	case km.F4.Matches(msg):
		return "recipes"
	case km.F5.Matches(msg):
		return "products"
	case km.F6.Matches(msg):
		return "history"
	case km.F10.Matches(msg):
		return "quit"
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Help [F2]Dashboard [F3]Ingredients [F4]Recipes [F5]Products [F6]History [F10]Quit"
}
