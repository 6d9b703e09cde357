package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage the tasks of the selected project",
}

var taskShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"ls"},
	Short:   "Show tasks grouped by task list",
	Args:    cobra.NoArgs,
	RunE:    runTaskShow,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a new task",
	Long: `Add a new task to a task list of the selected project.

Examples:
  taskboard task add "Buy groceries"
  taskboard task add "Write report" --list "In Progress" -p 1 -d tomorrow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task]",
	Short: "Edit a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task]",
	Short: "Toggle the completion of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskMoveCmd = &cobra.Command{
	Use:     "move [task] [list]",
	Aliases: []string{"mv"},
	Short:   "Move a task to another list",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskMove,
}

var taskMoveAllCmd = &cobra.Command{
	Use:     "move-all [list] [list]",
	Aliases: []string{"mvall"},
	Short:   "Move every task of a list to another list",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskMoveAll,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

var taskMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show the tasks you own or take part in",
	Args:  cobra.NoArgs,
	RunE:  runTaskMine,
}

func init() {
	taskCmd.PersistentFlags().String("project", "", "Project to use instead of the selected one")

	for _, cmd := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		cmd.Flags().IntP("priority", "p", model.PriorityNormal, "Priority (1=urgent, 3=normal)")
		cmd.Flags().StringP("due", "d", "", "Due date (e.g., 'today', 'tomorrow', '2024-01-15')")
		cmd.Flags().String("remark", "", "Free-form note")
		cmd.Flags().StringSlice("with", nil, "Emails of participants")
	}
	taskAddCmd.Flags().StringP("list", "l", "", "Task list (defaults to the first one)")
	taskEditCmd.Flags().String("desc", "", "New description")
	taskShowCmd.Flags().StringP("list", "l", "", "Only show this task list")

	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskMoveAllCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskMineCmd)
}

func findTask(ref string) (model.Task, error) {
	return resolve(boardTasks(app.store()), taskKey, ref)
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	project, err := openFlagProject(cmd)
	if err != nil {
		return err
	}

	lists := store.Select(app.store(), store.TaskListsWithTasks)
	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		list, err := resolve(lists, func(l model.TaskListView) (string, string) { return l.ID, l.Name }, ref)
		if err != nil {
			return err
		}
		lists = []model.TaskListView{list}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n📁 %s\n", project.Name)
	for _, l := range lists {
		printTaskList(out, l)
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	project, err := openFlagProject(cmd)
	if err != nil {
		return err
	}

	lists := store.Select(app.store(), store.TaskListsWithTasks)
	if len(lists) == 0 {
		return fmt.Errorf("project %s has no task lists", project.Name)
	}
	list := lists[0].TaskList
	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		if list, err = findTaskList(ref); err != nil {
			return err
		}
	}

	// AddTask makes the logged-in user the owner
	task := model.NewTask(list.ID, strings.Join(args, " "), "")
	if err := applyTaskFlags(cmd, &task); err != nil {
		return err
	}

	created, err := app.fx.AddTask(cmd.Context(), task)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: %q (P%d)\n", list.Name, created.Desc, created.Priority)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("desc") {
		task.Desc, _ = cmd.Flags().GetString("desc")
	}
	if err := applyTaskFlags(cmd, &task); err != nil {
		return err
	}

	updated, err := app.fx.UpdateTask(cmd.Context(), task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated: %q\n", updated.Desc)
	return nil
}

// applyTaskFlags copies the task flags that were set onto task
func applyTaskFlags(cmd *cobra.Command, task *model.Task) error {
	flags := cmd.Flags()
	if flags.Changed("priority") {
		priority, _ := flags.GetInt("priority")
		if priority < model.PriorityUrgent || priority > model.PriorityNormal {
			priority = model.PriorityNormal
		}
		task.Priority = priority
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		due, err := parseDue(raw, time.Now())
		if err != nil {
			return err
		}
		task.DueDate = due
	}
	if flags.Changed("remark") {
		task.Remark, _ = flags.GetString("remark")
	}
	if flags.Changed("with") {
		emails, _ := flags.GetStringSlice("with")
		users, err := findUsers(cmd, emails)
		if err != nil {
			return err
		}
		task.ParticipantIDs = make([]string, len(users))
		for i, u := range users {
			task.ParticipantIDs[i] = u.ID
		}
	}
	return nil
}

// parseDue accepts today, tomorrow, a day offset like +3 or a date.
// An empty value clears the due date.
func parseDue(raw string, now time.Time) (*time.Time, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var due time.Time
	switch {
	case raw == "":
		return nil, nil
	case raw == "today":
		due = today
	case raw == "tomorrow":
		due = today.AddDate(0, 0, 1)
	case strings.HasPrefix(raw, "+"):
		var days int
		if _, err := fmt.Sscanf(raw, "+%d", &days); err != nil {
			return nil, fmt.Errorf("invalid due offset %q", raw)
		}
		due = today.AddDate(0, 0, days)
	default:
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD", raw)
		}
		due = parsed
	}
	return &due, nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	updated, err := app.fx.CompleteTask(cmd.Context(), task)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if updated.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %q\n", updated.Desc)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "↺ Reopened: %q\n", updated.Desc)
	}
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	list, err := findTaskList(args[1])
	if err != nil {
		return err
	}
	if _, err := app.fx.MoveTask(cmd.Context(), task.ID, list.ID); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved %q to [%s]\n", task.Desc, list.Name)
	return nil
}

func runTaskMoveAll(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	src, err := findTaskList(args[0])
	if err != nil {
		return err
	}
	target, err := findTaskList(args[1])
	if err != nil {
		return err
	}
	moved, err := app.fx.MoveAllTasks(cmd.Context(), src.ID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to move tasks: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved %d task(s) from [%s] to [%s]\n", len(moved), src.Name, target.Name)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	if err := app.fx.DeleteTask(cmd.Context(), task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted: %q\n", task.Desc)
	return nil
}

func runTaskMine(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.resume(ctx); err != nil {
		return err
	}
	if _, err := app.fx.LoadUserTasks(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	tasks := store.Select(app.store(), store.UserTasks)
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}
	fmt.Fprintf(out, "\n👤 My tasks (%d pending)\n", pendingCount(tasks))
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, t := range tasks {
		printTask(out, t)
	}
	fmt.Fprintln(out)
	return nil
}
