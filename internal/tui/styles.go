package tui

import "github.com/charmbracelet/lipgloss"

// Color palette based on TUI design
var (
	// Priority colors
	PriorityUrgent = lipgloss.Color("#FF6B6B") // P1 - Red
	PriorityHigh   = lipgloss.Color("#FFB347") // P2 - Orange
	PriorityNormal = lipgloss.Color("#4ECDC4") // P3 - Blue

	// Status colors
	Completed   = lipgloss.Color("#95E1A3") // Green
	SyncPending = lipgloss.Color("#FFE66D") // Yellow
	Overdue     = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Task list columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ColumnFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// Used when the board has no lists
	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Task item
	TaskItemStyle = lipgloss.NewStyle()

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	OverdueStyle = lipgloss.NewStyle().Foreground(Overdue).Bold(true)

	// Priority badges
	PriorityP1Style = lipgloss.NewStyle().Foreground(PriorityUrgent).Bold(true)
	PriorityP2Style = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityP3Style = lipgloss.NewStyle().Foreground(PriorityNormal)

	SyncPendingStyle = lipgloss.NewStyle().Foreground(SyncPending)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(priority int) lipgloss.Style {
	switch priority {
	case 1:
		return PriorityP1Style
	case 2:
		return PriorityP2Style
	default:
		return PriorityP3Style
	}
}

// FormatPriority returns a formatted priority string
func FormatPriority(priority int) string {
	style := GetPriorityStyle(priority)
	switch priority {
	case 1:
		return style.Render("P1")
	case 2:
		return style.Render("P2")
	default:
		return style.Render("P3")
	}
}
