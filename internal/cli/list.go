package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"lists"},
	Short:   "Manage the task lists of the selected project",
}

var listShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"ls"},
	Short:   "Show task lists in board order",
	Args:    cobra.NoArgs,
	RunE:    runListShow,
}

var listNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Append a task list to the board",
	Args:  cobra.ExactArgs(1),
	RunE:  runListNew,
}

var listRenameCmd = &cobra.Command{
	Use:   "rename [list] [name]",
	Short: "Rename a task list",
	Args:  cobra.ExactArgs(2),
	RunE:  runListRename,
}

var listDeleteCmd = &cobra.Command{
	Use:     "delete [list]",
	Aliases: []string{"rm"},
	Short:   "Delete a task list",
	Args:    cobra.ExactArgs(1),
	RunE:    runListDelete,
}

var listSwapCmd = &cobra.Command{
	Use:   "swap [list] [list]",
	Short: "Swap the board positions of two task lists",
	Args:  cobra.ExactArgs(2),
	RunE:  runListSwap,
}

func init() {
	listCmd.PersistentFlags().String("project", "", "Project to use instead of the selected one")

	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listNewCmd)
	listCmd.AddCommand(listRenameCmd)
	listCmd.AddCommand(listDeleteCmd)
	listCmd.AddCommand(listSwapCmd)
}

func openFlagProject(cmd *cobra.Command) (model.Project, error) {
	ref, _ := cmd.Flags().GetString("project")
	return app.openProject(cmd.Context(), ref)
}

func findTaskList(ref string) (model.TaskList, error) {
	lists := store.Select(app.store(), store.SelectedTaskLists)
	return resolve(lists, taskListKey, ref)
}

func runListShow(cmd *cobra.Command, args []string) error {
	project, err := openFlagProject(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lists := store.Select(app.store(), store.TaskListsWithTasks)
	fmt.Fprintf(out, "\n📁 %s\n", project.Name)
	fmt.Fprintln(out, strings.Repeat("─", 44))
	for _, l := range lists {
		fmt.Fprintf(out, "  %3d  %-8s  %-20s  %d/%d\n", l.Order, shortID(l.ID), truncate(l.Name, 20), pendingCount(l.Tasks), len(l.Tasks))
	}
	if len(lists) == 0 {
		fmt.Fprintln(out, "  No task lists.")
	}
	fmt.Fprintln(out)
	return nil
}

func runListNew(cmd *cobra.Command, args []string) error {
	project, err := openFlagProject(cmd)
	if err != nil {
		return err
	}
	list, err := app.fx.AddTaskList(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to add task list: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added list to [%s]: %s (order %d)\n", project.Name, list.Name, list.Order)
	return nil
}

func runListRename(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	list, err := findTaskList(args[0])
	if err != nil {
		return err
	}
	old := list.Name
	list.Name = args[1]
	if _, err := app.fx.RenameTaskList(cmd.Context(), list); err != nil {
		return fmt.Errorf("failed to rename task list: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed %s to %s\n", old, list.Name)
	return nil
}

func runListDelete(cmd *cobra.Command, args []string) error {
	if _, err := openFlagProject(cmd); err != nil {
		return err
	}
	list, err := findTaskList(args[0])
	if err != nil {
		return err
	}
	if err := app.fx.DeleteTaskList(cmd.Context(), list); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted list: %s\n", list.Name)
	return nil
}

func runListSwap(cmd *cobra.Command, args []string) error {
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
	if _, err := app.fx.SwapTaskLists(cmd.Context(), src, target); err != nil {
		return fmt.Errorf("failed to swap task lists: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Swapped %s and %s\n", src.Name, target.Name)
	return nil
}
