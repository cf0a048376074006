package ui

import "charm.land/lipgloss/v2"

// Color palette, regenerated by SetTheme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for match highlights
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
	ColorSelectedBg  = lipgloss.Color("#7C3AED") // Cursor row background
)

// Picker styles
var (
	PickerStyle      lipgloss.Style
	PickerTitleStyle lipgloss.Style
	PickerCountStyle lipgloss.Style
	PickerQueryStyle lipgloss.Style
	PickerHelpStyle  lipgloss.Style
	PickerEmptyStyle lipgloss.Style

	PickerItemStyle     lipgloss.Style
	PickerSelectedStyle lipgloss.Style
	PickerSpecialStyle  lipgloss.Style
	PickerMatchStyle    lipgloss.Style
)

// Message styles
var (
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	NoteStyle    lipgloss.Style
)

// Table styles
var (
	TableHeaderStyle lipgloss.Style
	TableMutedStyle  lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the current color palette.
func buildStyles() {
	PickerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	PickerTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	PickerCountStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	PickerQueryStyle = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)

	PickerHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	PickerEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	PickerItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	PickerSelectedStyle = lipgloss.NewStyle().
		Background(ColorSelectedBg).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	PickerSpecialStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true).
		Padding(0, 1)

	PickerMatchStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	NoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	TableMutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
}
