package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

// effectTimeout bounds every backend round trip started from the board
const effectTimeout = 30 * time.Second

// stateMsg is sent when the store changed
type stateMsg struct{}

// resultMsg reports the end of an effect
type resultMsg struct {
	text string
	err  error
}

// Init starts listening for store changes
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks until the store subscription fires
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return stateMsg{}
	}
}

// run executes fn as a command and reports text on success
func (m *Model) run(text string, fn func(ctx context.Context) error) tea.Cmd {
	m.busy++
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), effectTimeout)
		defer cancel()
		return resultMsg{text: text, err: fn(ctx)}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.refresh()
		return m, m.waitForChange()

	case resultMsg:
		if m.busy > 0 {
			m.busy--
		}
		if msg.err != nil {
			logger.Warn("Board action failed", logger.F("error", msg.err))
			m.message = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.message = msg.text
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeEditTask, ModeAddList, ModeRenameList:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.currentList()
	task := m.currentTask()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		if m.listCursor > 0 {
			m.listCursor--
			m.taskCursor = 0
		}

	case key.Matches(msg, keys.Right):
		if m.listCursor < len(m.board.Lists)-1 {
			m.listCursor++
			m.taskCursor = 0
		}

	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if list != nil && m.taskCursor < len(list.Tasks)-1 {
			m.taskCursor++
		}

	// Vim: G = go to bottom
	case msg.String() == "G":
		if list != nil {
			m.taskCursor = clamp(len(list.Tasks)-1, len(list.Tasks))
		}

	// Priority keys 1-3
	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		if task != nil {
			updated := task.Task
			updated.Priority = int(msg.String()[0] - '0')
			return m, m.run(fmt.Sprintf("Priority set to P%d", updated.Priority), func(ctx context.Context) error {
				_, err := m.fx.UpdateTask(ctx, updated)
				return err
			})
		}

	case key.Matches(msg, keys.Add):
		if list != nil {
			return m, m.startInput(ModeAddTask, "", "Enter task...")
		}
		m.message = "Add a list first (A)"

	case key.Matches(msg, keys.AddList):
		return m, m.startInput(ModeAddList, "", "Enter list name...")

	case key.Matches(msg, keys.Edit):
		if task != nil {
			return m, m.startInput(ModeEditTask, task.Desc, "Edit task...")
		}

	case key.Matches(msg, keys.Rename):
		if list != nil {
			return m, m.startInput(ModeRenameList, list.Name, "Rename list...")
		}

	case key.Matches(msg, keys.Done):
		if task != nil {
			t := task.Task
			text := "Completed: " + t.Desc
			if t.Completed {
				text = "Reopened: " + t.Desc
			}
			return m, m.run(text, func(ctx context.Context) error {
				_, err := m.fx.CompleteTask(ctx, t)
				return err
			})
		}

	case key.Matches(msg, keys.Delete):
		if task != nil {
			t := task.Task
			return m, m.run("Deleted: "+t.Desc, func(ctx context.Context) error {
				return m.fx.DeleteTask(ctx, t)
			})
		}

	case key.Matches(msg, keys.DelList):
		if list != nil {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.MoveNext), key.Matches(msg, keys.MovePrev):
		offset := 1
		if key.Matches(msg, keys.MovePrev) {
			offset = -1
		}
		if target := m.neighbourList(offset); task != nil && target != nil {
			taskID, targetID := task.ID, target.ID
			return m, m.run(fmt.Sprintf("Moved to %s", target.Name), func(ctx context.Context) error {
				_, err := m.fx.MoveTask(ctx, taskID, targetID)
				return err
			})
		}

	case key.Matches(msg, keys.MoveAll):
		if target := m.neighbourList(1); list != nil && target != nil {
			srcID, targetID := list.ID, target.ID
			return m, m.run(fmt.Sprintf("Moved all tasks to %s", target.Name), func(ctx context.Context) error {
				_, err := m.fx.MoveAllTasks(ctx, srcID, targetID)
				return err
			})
		}

	case key.Matches(msg, keys.SwapLeft), key.Matches(msg, keys.SwapRight):
		offset := 1
		if key.Matches(msg, keys.SwapLeft) {
			offset = -1
		}
		if target := m.neighbourList(offset); list != nil && target != nil {
			src, dst := list.TaskList, target.TaskList
			m.listCursor += offset
			return m, m.run(fmt.Sprintf("Swapped %s and %s", src.Name, dst.Name), func(ctx context.Context) error {
				_, err := m.fx.SwapTaskLists(ctx, src, dst)
				return err
			})
		}

	case key.Matches(msg, keys.Refresh):
		if m.board.Project != nil {
			id := m.board.Project.ID
			return m, m.run("Board reloaded", func(ctx context.Context) error {
				_, err := m.fx.RefreshProject(ctx, id)
				return err
			})
		}

	case key.Matches(msg, keys.Escape):
		m.message = ""

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) startInput(mode Mode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.input.CursorEnd()
	return textinput.Blink
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		return m, m.submit(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the effect behind an input mode
func (m *Model) submit(mode Mode, value string) tea.Cmd {
	list := m.currentList()
	task := m.currentTask()

	switch mode {
	case ModeAddTask:
		if list == nil {
			return nil
		}
		t := model.NewTask(list.ID, value, "")
		return m.run("Added: "+value, func(ctx context.Context) error {
			_, err := m.fx.AddTask(ctx, t)
			return err
		})
	case ModeEditTask:
		if task == nil {
			return nil
		}
		t := task.Task
		t.Desc = value
		return m.run("Updated: "+value, func(ctx context.Context) error {
			_, err := m.fx.UpdateTask(ctx, t)
			return err
		})
	case ModeAddList:
		return m.run("Added list: "+value, func(ctx context.Context) error {
			_, err := m.fx.AddTaskList(ctx, value)
			return err
		})
	case ModeRenameList:
		if list == nil {
			return nil
		}
		l := list.TaskList
		l.Name = value
		return m.run("Renamed list: "+value, func(ctx context.Context) error {
			_, err := m.fx.RenameTaskList(ctx, l)
			return err
		})
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	list := m.currentList()
	if list == nil || msg.String() != "y" {
		m.message = "Cancelled"
		return m, nil
	}
	l := list.TaskList
	return m, m.run("Deleted list: "+l.Name, func(ctx context.Context) error {
		return m.fx.DeleteTaskList(ctx, l)
	})
}
