package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskboard/internal/effects"
	"github.com/existflow/taskboard/internal/logger"
)

// Run shows the board of the selected project until the user quits
func Run(fx *effects.Effects) error {
	m := NewModel(fx)
	defer m.Close()

	logger.Info("Launching TUI")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
