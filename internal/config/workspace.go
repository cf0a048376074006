package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/scanner"
	"github.com/zhubert/hopper/internal/session"
)

// Workspace is a root directory whose subdirectories are projects.
// Each workspace is bound to one tmux key.
type Workspace struct {
	Name    string            `yaml:"name"`
	Path    string            `yaml:"path"`
	Key     string            `yaml:"key"`
	Options *WorkspaceOptions `yaml:"options,omitempty"`
}

// WorkspaceOptions tunes project discovery for a workspace.
// An omitted options block behaves like search_git_subfolders: false.
type WorkspaceOptions struct {
	SearchGitSubfolders bool `yaml:"search_git_subfolders"`
	MaxDepth            *int `yaml:"max_depth,omitempty"` // defaults to scanner.DefaultMaxDepth
}

func (w *Workspace) normalize() {
	w.Name = strings.TrimSpace(w.Name)
	w.Path = strings.TrimSpace(w.Path)
	w.Key = strings.TrimSpace(w.Key)
}

func (w Workspace) label(i int) string {
	if w.Name != "" {
		return fmt.Sprintf("workspaces[%d] (%s)", i, w.Name)
	}
	return fmt.Sprintf("workspaces[%d]", i)
}

// Root returns the workspace path with "~" expanded.
func (w Workspace) Root() string {
	return paths.ExpandHome(w.Path)
}

// RootExists reports whether the workspace path is an existing directory.
func (w Workspace) RootExists() bool {
	info, err := os.Stat(w.Root())
	return err == nil && info.IsDir()
}

// ScanOptions returns the discovery options for this workspace.
func (w Workspace) ScanOptions() scanner.Options {
	opts := scanner.Options{MaxDepth: scanner.DefaultMaxDepth}
	if w.Options == nil {
		return opts
	}
	opts.Recurse = w.Options.SearchGitSubfolders
	if w.Options.MaxDepth != nil {
		opts.MaxDepth = *w.Options.MaxDepth
	}
	return opts
}

// Target returns the view of the workspace the session controller works with.
func (w Workspace) Target() session.Workspace {
	return session.Workspace{Name: w.Name, Root: w.Path}
}
