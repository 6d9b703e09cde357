package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, edit and share the projects you are a member of.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project with the default "To Do", "In Progress" and
"Done" task lists.

Examples:
  taskboard project new "Work"
  taskboard project new "Launch" --desc "Q3 launch" --invite ana@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your projects",
	Args:    cobra.NoArgs,
	RunE:    runProjectList,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit [project]",
	Short: "Change name, description or cover of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and its task lists",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectInviteCmd = &cobra.Command{
	Use:   "invite [project] [email...]",
	Short: "Invite users to a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProjectInvite,
}

var projectSelectCmd = &cobra.Command{
	Use:     "select [project]",
	Aliases: []string{"use"},
	Short:   "Select the project used by list and task commands",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectSelect,
}

func init() {
	projectNewCmd.Flags().String("desc", "", "Project description")
	projectNewCmd.Flags().String("cover", "", "Cover image reference")
	projectNewCmd.Flags().StringSlice("invite", nil, "Emails of users to add as members")

	projectEditCmd.Flags().String("name", "", "New name")
	projectEditCmd.Flags().String("desc", "", "New description")
	projectEditCmd.Flags().String("cover", "", "New cover image reference")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectInviteCmd)
	projectCmd.AddCommand(projectSelectCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.resume(ctx); err != nil {
		return err
	}

	desc, _ := cmd.Flags().GetString("desc")
	cover, _ := cmd.Flags().GetString("cover")
	emails, _ := cmd.Flags().GetStringSlice("invite")

	members, err := findUsers(cmd, emails)
	if err != nil {
		return err
	}
	ids := make([]string, len(members))
	for i, u := range members {
		ids[i] = u.ID
	}

	project, err := app.fx.AddProject(ctx, model.Project{Name: args[0], Desc: desc, CoverImg: cover, Members: ids})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project: %s (id: %s)\n", project.Name, shortID(project.ID))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.resume(ctx); err != nil {
		return err
	}
	if _, err := app.fx.LoadProjects(ctx); err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	projects := store.Select(app.store(), store.Projects)
	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "    %-10s  %-24s  %-7s  %s\n", "ID", "Name", "Members", "Lists")
	fmt.Fprintln(out, strings.Repeat("─", 56))
	for _, p := range projects {
		marker := "  "
		if p.ID == app.session.ProjectID {
			marker = "▸ "
		}
		fmt.Fprintf(out, "  %s%-10s  %-24s  %-7d  %d\n", marker, shortID(p.ID), truncate(p.Name, 24), len(p.Members), len(p.TaskLists))
	}
	fmt.Fprintln(out, strings.Repeat("─", 56))
	fmt.Fprintf(out, "  %d project(s)\n\n", len(projects))
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	project, err := findProject(cmd, args[0])
	if err != nil {
		return err
	}

	changed := false
	for flag, field := range map[string]*string{"name": &project.Name, "desc": &project.Desc, "cover": &project.CoverImg} {
		if cmd.Flags().Changed(flag) {
			*field, _ = cmd.Flags().GetString(flag)
			changed = true
		}
	}
	if !changed {
		return fmt.Errorf("nothing to change, use --name, --desc or --cover")
	}

	updated, err := app.fx.UpdateProject(cmd.Context(), project)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated project: %s\n", updated.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	project, err := findProject(cmd, args[0])
	if err != nil {
		return err
	}
	if err := app.fx.DeleteProject(cmd.Context(), project); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if app.session.ProjectID == project.ID {
		if err := app.selectProjectID(""); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted project: %s\n", project.Name)
	return nil
}

func runProjectInvite(cmd *cobra.Command, args []string) error {
	project, err := findProject(cmd, args[0])
	if err != nil {
		return err
	}
	users, err := findUsers(cmd, args[1:])
	if err != nil {
		return err
	}

	updated, err := app.fx.InviteMembers(cmd.Context(), project.ID, users)
	if err != nil {
		return fmt.Errorf("failed to invite members: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s now has %d member(s)\n", updated.Name, len(updated.Members))
	return nil
}

func runProjectSelect(cmd *cobra.Command, args []string) error {
	project, err := app.openProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := app.selectProjectID(project.ID); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "📁 Selected project: %s\n", project.Name)
	return nil
}

// findProject restores the session and resolves ref among the user's projects
func findProject(cmd *cobra.Command, ref string) (model.Project, error) {
	ctx := cmd.Context()
	if err := app.resume(ctx); err != nil {
		return model.Project{}, err
	}
	projects, err := app.fx.LoadProjects(ctx)
	if err != nil {
		return model.Project{}, err
	}
	return resolve(projects, func(p model.Project) (string, string) { return p.ID, p.Name }, ref)
}

func findUsers(cmd *cobra.Command, emails []string) ([]model.User, error) {
	users := make([]model.User, 0, len(emails))
	for _, email := range emails {
		u, err := app.fx.FindUserByEmail(cmd.Context(), email)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", email, err)
		}
		users = append(users, u)
	}
	return users, nil
}
