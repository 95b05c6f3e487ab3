package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Delete key.Binding
	New    key.Binding
	Reload key.Binding
	Quit   key.Binding

	// while an editor has focus
	Save   key.Binding
	Cancel key.Binding
	Switch key.Binding

	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		New:    key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new item")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// browseHelp is shown while the list has focus.
type browseHelp struct{ k keyMap }

func (h browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.New, h.k.Edit, h.k.Delete, h.k.Reload, h.k.Quit}
}

func (h browseHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// editHelp is shown while the form or an inline editor has focus.
type editHelp struct{ k keyMap }

func (h editHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Save, h.k.Switch, h.k.Cancel}
}

func (h editHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
