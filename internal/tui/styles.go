package tui

import "github.com/charmbracelet/lipgloss"

// ─── Color Palette (Catppuccin Mocha) ───────────────────────────────────────

var (
	colorSurface0 = lipgloss.Color("#313244") // card bg
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // secondary text
	colorDim      = lipgloss.Color("#585B70") // muted, borders

	colorAccent   = lipgloss.Color("#CBA6F7") // mauve – primary accent
	colorBlue     = lipgloss.Color("#89B4FA") // section headers
	colorSapphire = lipgloss.Color("#74C7EC") // key hints
	colorGreen    = lipgloss.Color("#A6E3A1") // success
	colorYellow   = lipgloss.Color("#F9E2AF") // loading
	colorRed      = lipgloss.Color("#F38BA8") // error
	colorTeal     = lipgloss.Color("#94E2D5") // series line
	colorLavender = lipgloss.Color("#B4BEFE") // titles
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	sparkStyle = lipgloss.NewStyle().
			Foreground(colorTeal)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorSapphire).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorText).
			Padding(0, 1)

	chipEditStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Padding(0, 1)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
