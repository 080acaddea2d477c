package tui

import "github.com/charmbracelet/lipgloss"

// Color constants — registry probe palette.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// Health status styles — bold foreground for the header indicator.
var (
	StyleStatusHealthy  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleStatusDegraded = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleStatusBad      = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	StyleStatusUnknown  = lipgloss.NewStyle().Foreground(colorGray)
)

// StyleHeader — full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard — bordered card for the overview stat bar.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Align(lipgloss.Center)

// StyleTrendCard — card for the two trend sparkline panels.
var StyleTrendCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1)

// Event panel styles by severity.
var (
	StyleEventInfo  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleEventWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	StyleEventError = lipgloss.NewStyle().Foreground(colorRed)
)

// Table styles for the repository panel.
var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(colorGray)

	StyleTableRow = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// StyleDim — muted text (footer, hints, timestamps).
var StyleDim = lipgloss.NewStyle().Foreground(colorGray)

// StyleSummary — completion banner.
var StyleSummary = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan)
