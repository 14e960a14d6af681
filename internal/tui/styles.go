package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			PaddingLeft(2)

	ListSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true).
				PaddingLeft(0)

	ListMetaStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	// Issue status badges
	StatusOpenStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StatusInProgressStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	StatusClosedStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Priority badges
	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(ColorBlue)

	PriorityHighStyle = lipgloss.NewStyle().
				Foreground(ColorOrange)

	PriorityCriticalStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	CommentAuthorStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
