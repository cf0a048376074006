package ui

// Layout constants for the picker and command output
const (
	// PickerMaxVisible is the number of rows shown before the list scrolls
	PickerMaxVisible = 12

	// PickerChrome is the number of lines used by title, query, spacing and help
	PickerChrome = 5

	// DefaultWidth is used when the terminal width is unknown
	DefaultWidth = 80

	// MinWidth is the narrowest width the picker lays itself out for
	MinWidth = 30

	// TableGap is the number of spaces between table columns
	TableGap = 2
)
