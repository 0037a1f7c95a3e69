package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Status colors keyed by task status
	StatusPending    = lipgloss.Color("#9CA3AF") // Gray
	StatusInProgress = lipgloss.Color("#10B981") // Green
	StatusComplete   = lipgloss.Color("#A78BFA") // Purple
	StatusBlocked    = lipgloss.Color("#F59E0B") // Amber
	StatusCancelled  = lipgloss.Color("#6B7280") // Dim gray

	// Priority colors
	PriorityCritical = lipgloss.Color("#F87171") // Red
	PriorityHigh     = lipgloss.Color("#F59E0B") // Amber
	PriorityMedium   = lipgloss.Color("#60A5FA") // Blue
	PriorityLow      = lipgloss.Color("#9CA3AF") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1).
		PaddingBottom(1)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Footer / status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	// Sidebar styles
	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 1)

	SidebarItem = lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(0)

	SidebarItemActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 1).
				MarginBottom(0)

	SidebarTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SidebarSectionTitle = lipgloss.NewStyle().
				Foreground(MutedColor).
				MarginBottom(0)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message
	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Warning message
	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Cycle warning banner
	CycleBanner = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(WarningColor).
			Bold(true).
			Padding(0, 1)

	// Filter input styles
	FilterBar = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1).
			MarginTop(1)

	FilterPrompt = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)
)

// StatusColor returns the color for a given task status
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "pending":
		return StatusPending
	case "in_progress":
		return StatusInProgress
	case "complete":
		return StatusComplete
	case "blocked":
		return StatusBlocked
	case "cancelled":
		return StatusCancelled
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for a given task status
func StatusIcon(status string) string {
	switch status {
	case "pending":
		return "○"
	case "in_progress":
		return "●"
	case "complete":
		return "✓"
	case "blocked":
		return "⊘"
	case "cancelled":
		return "✗"
	default:
		return "●"
	}
}

// PriorityColor returns the color for a given task priority
func PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return MutedColor
	}
}
