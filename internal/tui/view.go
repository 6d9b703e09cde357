package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskboard/internal/model"
)

// minColumnWidth keeps narrow terminals readable; columns past the edge are cut
const minColumnWidth = 26

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.board.Project == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			HelpStyle.Render("No project selected. Run 'taskboard project select <project>'."))
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var mainContent string
	switch m.mode {
	case ModeAddTask, ModeEditTask, ModeAddList, ModeRenameList, ModeConfirmDelete:
		mainContent = lipgloss.Place(
			m.width, bodyHeight,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderHelp())
	default:
		mainContent = m.renderColumns(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar)
}

func (m *Model) renderHeader() string {
	p := m.board.Project
	title := HeaderStyle.Render(p.Name)

	names := make([]string, len(m.board.Members))
	for i, u := range m.board.Members {
		names[i] = u.Name
	}
	members := HelpStyle.Render(fmt.Sprintf("%d member(s): %s", len(names), strings.Join(names, ", ")))

	line := title + "  " + members
	if p.Desc != "" {
		line += "\n" + HelpStyle.Padding(0, 1).Render(truncate(p.Desc, m.width-2))
	}
	return line
}

func (m *Model) renderColumns(height int) string {
	if len(m.board.Lists) == 0 {
		return TaskListStyle.Height(height).Render(HelpStyle.Render("No task lists. Press 'A' to add one."))
	}

	width := m.width / len(m.board.Lists)
	if width < minColumnWidth {
		width = minColumnWidth
	}

	columns := make([]string, len(m.board.Lists))
	for i, l := range m.board.Lists {
		columns[i] = m.renderColumn(l, i == m.listCursor, width, height)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

func (m *Model) renderColumn(l model.TaskListView, focused bool, width, height int) string {
	style := ColumnStyle
	if focused {
		style = ColumnFocusedStyle
	}
	inner := width - style.GetHorizontalFrameSize()

	pending := 0
	for _, t := range l.Tasks {
		if !t.Completed {
			pending++
		}
	}

	var s string
	header := fmt.Sprintf("%s (%d/%d)", truncate(l.Name, inner-8), pending, len(l.Tasks))
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", inner)) + "\n"

	if len(l.Tasks) == 0 {
		s += HelpStyle.Render("No tasks")
	}

	for i, t := range l.Tasks {
		cursor := "  "
		itemStyle := TaskItemStyle
		if focused && i == m.taskCursor {
			cursor = "❯ "
			itemStyle = TaskItemSelectedStyle
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
			itemStyle = TaskDoneStyle
		}

		desc := truncate(t.Desc, inner-12)
		s += itemStyle.Render(cursor+icon+" "+desc) + " " + FormatPriority(t.Priority) + "\n"

		var meta []string
		if t.Owner != nil {
			meta = append(meta, "@"+t.Owner.Name)
		}
		if t.DueDate != nil {
			due := t.DueDate.Format("Jan 2")
			if t.IsOverdue() {
				due = OverdueStyle.Render("!" + due)
			}
			meta = append(meta, due)
		}
		if len(meta) > 0 {
			s += HelpStyle.Render("      "+strings.Join(meta, "  ")) + "\n"
		}
	}

	return style.Width(inner).Height(height - style.GetVerticalFrameSize()).Render(s)
}

func (m *Model) renderStatusBar() string {
	help := "a:add  e:edit  x:done  d:del  m/M:move  A:list  E:rename  </>:swap  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	if m.busy > 0 {
		status := SyncPendingStyle.Render("Saving...")
		avail := m.width - lipgloss.Width(help) - lipgloss.Width(status) - 4
		if avail > 0 {
			help += repeat(" ", avail) + status
		} else {
			help += " " + status
		}
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m *Model) renderModal() string {
	var title string
	switch m.mode {
	case ModeAddTask:
		title = "Add Task"
		if l := m.currentList(); l != nil {
			title = fmt.Sprintf("Add Task to: %s", l.Name)
		}
	case ModeEditTask:
		title = "Edit Task"
	case ModeAddList:
		title = "New List"
	case ModeRenameList:
		title = "Rename List"
	case ModeConfirmDelete:
		name := ""
		if l := m.currentList(); l != nil {
			name = l.Name
		}
		content := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Delete list %q?", name)) + "\n\n"
		content += HelpStyle.Render("Its tasks are no longer shown on the board.") + "\n\n"
		content += HelpStyle.Render("y:delete  any other key:cancel")
		return ModalStyle.Render(content)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")
	return ModalStyle.Render(content)
}

func (m *Model) renderHelp() string {
	return `
╭─── Keyboard Shortcuts ────────╮
│                               │
│  Navigation                   │
│  ──────────                   │
│  j/↓    Move down             │
│  k/↑    Move up               │
│  h/l    Previous/next list    │
│  G      Go to bottom          │
│                               │
│  Tasks                        │
│  ─────                        │
│  a       Add task             │
│  e       Edit task            │
│  x/Space Toggle done          │
│  d       Delete task          │
│  m/M     Move to next/prev    │
│  T       Move all to next     │
│  1-3     Set priority         │
│                               │
│  Lists                        │
│  ─────                        │
│  A       Add list             │
│  E       Rename list          │
│  D       Delete list          │
│  </>     Swap with neighbour  │
│                               │
│  Other                        │
│  ─────                        │
│  R       Reload board         │
│  ?       Toggle help          │
│  q       Quit                 │
│                               │
╰───────────────────────────────╯

        Press any key to close
`
}
