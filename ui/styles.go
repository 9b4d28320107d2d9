package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
var (
	ColorYellow   = lipgloss.Color("220")
	ColorOrange   = lipgloss.Color("214")
	ColorRed      = lipgloss.Color("196")
	ColorMagenta  = lipgloss.Color("170")
	ColorBlue     = lipgloss.Color("39")
	ColorCyan     = lipgloss.Color("51")
	ColorGreen    = lipgloss.Color("82")
	ColorWhite    = lipgloss.Color("255")
	ColorDimWhite = lipgloss.Color("245")
	ColorSurface  = lipgloss.Color("236")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)

	SelectedLineStyle = lipgloss.NewStyle().Background(ColorSurface).Foreground(ColorWhite)
	DimmedStyle       = lipgloss.NewStyle().Foreground(ColorDimWhite)

	ChangeIDStyle    = lipgloss.NewStyle().Foreground(ColorMagenta)
	CommitIDStyle    = lipgloss.NewStyle().Foreground(ColorBlue)
	AuthorStyle      = lipgloss.NewStyle().Foreground(ColorCyan)
	TimestampStyle   = lipgloss.NewStyle().Foreground(ColorDimWhite)
	BookmarkStyle    = lipgloss.NewStyle().Foreground(ColorOrange)
	WorkingCopyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	ConflictStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	EmptyStyle       = lipgloss.NewStyle().Foreground(ColorDimWhite)

	DiffAddStyle     = lipgloss.NewStyle().Foreground(ColorGreen)
	DiffDelStyle     = lipgloss.NewStyle().Foreground(ColorRed)
	DiffHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	DiffContextStyle = lipgloss.NewStyle()

	AddedStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	ModifiedStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	DeletedStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	RenamedStyle  = lipgloss.NewStyle().Foreground(ColorBlue)

	StatusBarStyle = lipgloss.NewStyle().Background(ColorSurface).Foreground(ColorWhite)
	HelpKeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	HelpDescStyle  = lipgloss.NewStyle().Foreground(ColorDimWhite)

	NotifyInfoStyle    = lipgloss.NewStyle().Foreground(ColorCyan)
	NotifySuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	NotifyWarnStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	NotifyErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

	FloatingTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	PromptStyle        = lipgloss.NewStyle().Foreground(ColorYellow)
)
