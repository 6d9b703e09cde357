package cli

import (
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/tui"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board [project]",
	Short: "Open the interactive board of a project",
	Long: `Open the interactive board of a project. Without an argument the
selected project is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	project, err := app.openProject(cmd.Context(), ref)
	if err != nil {
		return err
	}
	if project.ID != app.session.ProjectID {
		if err := app.selectProjectID(project.ID); err != nil {
			logger.Warn("Failed to save selection", logger.F("error", err))
		}
	}
	return tui.Run(app.fx)
}
