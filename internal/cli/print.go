package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/taskboard/internal/model"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func pendingCount(tasks []model.TaskView) int {
	pending := 0
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
	}
	return pending
}

func printTaskList(out io.Writer, l model.TaskListView) {
	fmt.Fprintf(out, "\n📋 %s (%d pending)\n", l.Name, pendingCount(l.Tasks))
	fmt.Fprintln(out, strings.Repeat("─", 60))
	if len(l.Tasks) == 0 {
		fmt.Fprintln(out, "  (empty)")
	}
	for _, t := range l.Tasks {
		printTask(out, t)
	}
}

func printTask(out io.Writer, t model.TaskView) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	priority := fmt.Sprintf("P%d", t.Priority)
	switch t.Priority {
	case model.PriorityUrgent:
		priority = "▲ P1"
	case model.PriorityHigh:
		priority = "▲ P2"
	case model.PriorityNormal:
		priority = "  P3"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue() {
			due = "!" + due
		}
	}

	owner := "-"
	if t.Owner != nil {
		owner = t.Owner.Name
	}

	fmt.Fprintf(out, "  %s  %-8s  %-40s  %-7s  %-4s  %s\n", icon, shortID(t.ID), truncate(t.Desc, 40), due, priority, owner)
}
