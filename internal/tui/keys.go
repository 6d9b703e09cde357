package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Add       key.Binding
	AddList   key.Binding
	Edit      key.Binding
	Rename    key.Binding
	Done      key.Binding
	Delete    key.Binding
	DelList   key.Binding
	MoveNext  key.Binding
	MovePrev  key.Binding
	MoveAll   key.Binding
	SwapLeft  key.Binding
	SwapRight key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
	Refresh   key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous list")),
	Right:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next list")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	AddList:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add list")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
	Rename:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "rename list")),
	Done:      key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle done")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
	DelList:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
	MoveNext:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to next list")),
	MovePrev:  key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "move to previous list")),
	MoveAll:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "move all to next list")),
	SwapLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "swap list left")),
	SwapRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "swap list right")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:   key.NewBinding(key.WithKeys("R", "r"), key.WithHelp("R", "reload board")),
}
