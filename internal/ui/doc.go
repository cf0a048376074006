// Package ui provides the styles and renderers shared by the picker and the CLI.
//
// # Overview
//
// hopper has one interactive screen, the project picker, plus a handful of
// plain-text command outputs. Both draw from the same theme so that a popup
// opened from a tmux key binding and the output of "hopper workspaces" look
// like one tool.
//
// # Picker Layout
//
//	┌──────────────────────────────────────────┐
//	│ Title (workspace name)          3/42     │
//	│ > query_                                 │
//	│                                          │
//	│ > + Create new project                   │
//	│     ~/work/api                           │
//	│     ~/work/web                           │
//	│     ...                                  │
//	│ Help (1 line)                            │
//	└──────────────────────────────────────────┘
//
// # Themes
//
// Themes are defined in theme.go. SetTheme swaps the palette and rebuilds
// every style variable, so callers must read styles after the theme is set.
//
// # Renderers
//
// Success, Failure and Note format one-line command results. Table aligns
// columns by display width. HighlightYAML colors configuration files with
// chroma, using the theme's syntax style.
package ui
