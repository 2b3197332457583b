package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Erase   key.Binding
	Menu    key.Binding
	Arm     key.Binding
	Abandon key.Binding
	Restart key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Close   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Erase:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "erase")),
		Menu:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "mode")),
		Arm:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab+enter", "restart")),
		Abandon: key.NewBinding(key.WithKeys("enter")),
		Restart: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "next test")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// typingKeys is shown while a session is idle or running.
type typingKeys struct{ keyMap }

func (k typingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Erase, k.Arm, k.Menu, k.Quit}
}

func (k typingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// resultKeys is shown on the results screen.
type resultKeys struct{ keyMap }

func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Menu, k.Quit}
}

func (k resultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// menuKeys is shown while the mode menu is open.
type menuKeys struct{ keyMap }

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
