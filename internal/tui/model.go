package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/taskboard/internal/effects"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeAddList
	ModeRenameList
	ModeConfirmDelete
	ModeHelp
)

// Model is the board TUI model. It renders store.Board and runs effects as
// commands; the store subscription wakes it up after every change.
type Model struct {
	fx    *effects.Effects
	board store.BoardView

	changes     chan struct{} // Signalled by the store subscription
	unsubscribe func()

	// UI state
	width      int
	height     int
	mode       Mode
	listCursor int
	taskCursor int
	busy       int

	// Input
	input textinput.Model

	message string
}

// NewModel creates a model showing the project selected in fx's store
func NewModel(fx *effects.Effects) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := &Model{
		fx:      fx,
		mode:    ModeNormal,
		input:   ti,
		changes: make(chan struct{}, 1), // Buffered to avoid blocking dispatch
	}
	m.unsubscribe = fx.Store().Subscribe(func(store.State) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})

	m.refresh()
	logger.Debug("TUI model initialized", logger.F("lists", len(m.board.Lists)))
	return m
}

// Close stops listening to the store
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// refresh reads the board from the store and keeps the cursors in range
func (m *Model) refresh() {
	m.board = store.Select(m.fx.Store(), store.Board)
	m.listCursor = clamp(m.listCursor, len(m.board.Lists))
	if list := m.currentList(); list != nil {
		m.taskCursor = clamp(m.taskCursor, len(list.Tasks))
	} else {
		m.taskCursor = 0
	}
}

func (m *Model) currentList() *model.TaskListView {
	if m.listCursor < len(m.board.Lists) {
		return &m.board.Lists[m.listCursor]
	}
	return nil
}

// neighbourList returns the list offset positions away from the cursor
func (m *Model) neighbourList(offset int) *model.TaskListView {
	i := m.listCursor + offset
	if i < 0 || i >= len(m.board.Lists) {
		return nil
	}
	return &m.board.Lists[i]
}

func (m *Model) currentTask() *model.TaskView {
	list := m.currentList()
	if list == nil || m.taskCursor >= len(list.Tasks) {
		return nil
	}
	return &list.Tasks[m.taskCursor]
}
