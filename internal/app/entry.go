package app

import (
	"github.com/zhubert/hopper/internal/picker"
	"github.com/zhubert/hopper/internal/scanner"
	"github.com/zhubert/hopper/internal/session"
)

// NewProjectLabel is the picker label of the synthetic first row.
const NewProjectLabel = "+ Create new project"

// EntryKind tells a picker row's variant.
type EntryKind int

const (
	EntryProject EntryKind = iota
	EntryNewProject
)

// Entry is one picker row.
type Entry struct {
	Kind  EntryKind
	Path  string // absolute project path; empty for EntryNewProject
	Label string
}

// Target returns the path handed to the session controller.
func (e Entry) Target() string {
	if e.Kind == EntryNewProject {
		return session.NewProjectEntry
	}
	return e.Path
}

// Entries returns the picker rows for candidates: the new-project row first,
// then one row per candidate in the given order.
func Entries(candidates []scanner.Candidate) []Entry {
	out := make([]Entry, 0, len(candidates)+1)
	out = append(out, Entry{Kind: EntryNewProject, Label: NewProjectLabel})
	for _, c := range candidates {
		label := c.Display
		if label == "" {
			label = c.Path
		}
		out = append(out, Entry{Kind: EntryProject, Path: c.Path, Label: label})
	}
	return out
}

// Items converts entries to picker items. The new-project row is pinned.
func Items(entries []Entry) []picker.Item {
	items := make([]picker.Item, len(entries))
	for i, e := range entries {
		items[i] = picker.Item{Label: e.Label, Pinned: e.Kind == EntryNewProject}
	}
	return items
}
