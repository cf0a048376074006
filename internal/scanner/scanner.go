// Package scanner discovers project directories inside a workspace root.
//
// Every immediate child directory of the root, symlinks included, is a
// project. When recursion is enabled, each child's subtree is also searched,
// up to a fixed depth, for directories that directly contain a
// version-control marker (".git" by default). Subtrees are searched concurrently; results are merged,
// deduplicated by absolute path and sorted, so output never depends on
// goroutine scheduling.
package scanner

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/logger"
	"github.com/zhubert/hopper/internal/paths"
)

// ErrNoSuchWorkspace is returned (wrapped) when the root does not exist or is not a directory.
var ErrNoSuchWorkspace = stderrors.New("no such workspace")

const (
	DefaultMarker   = ".git"
	DefaultMaxDepth = 2
	DefaultWorkers  = 8
)

// Options controls a scan.
type Options struct {
	Recurse  bool
	MaxDepth int    // levels below each base child; 0 disables recursion
	Marker   string // directory name identifying a project root
	Workers  int    // concurrent subtree searches
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return o
}

// Candidate is a directory offered to the user as a project.
type Candidate struct {
	Path    string // absolute; used for filesystem and tmux operations
	Display string // Path with the home directory collapsed, for the picker only
}

// Scanner is a ProjectScanner backed by the local filesystem.
type Scanner struct {
	// Home overrides the home directory used for display paths. Empty means the user's home.
	Home string
}

// New returns a Scanner using the current user's home directory.
func New() *Scanner {
	return &Scanner{}
}

// Scan lists project candidates under root.
func (s *Scanner) Scan(ctx context.Context, root string, opts Options) ([]Candidate, error) {
	opts = opts.withDefaults()
	log := logger.ComponentLogger("scanner")

	absRoot, err := paths.Abs(root)
	if err != nil {
		return nil, errors.WorkspaceUnreadable(root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WorkspaceUnreadable(absRoot, ErrNoSuchWorkspace)
		}
		return nil, errors.WorkspaceUnreadable(absRoot, err)
	}
	if !info.IsDir() {
		return nil, errors.WorkspaceUnreadable(absRoot, ErrNoSuchWorkspace)
	}

	base, err := listChildDirs(absRoot, true)
	if err != nil {
		return nil, errors.WorkspaceUnreadable(absRoot, err)
	}

	found := slices.Clone(base)
	if opts.Recurse && opts.MaxDepth > 0 {
		nested, err := searchSubtrees(ctx, base, opts)
		if err != nil {
			return nil, err
		}
		found = append(found, nested...)
	}

	unique := Dedupe(found)
	slices.Sort(unique)

	log.Debug("scan finished", "root", absRoot, "base", len(base), "candidates", len(unique),
		"recurse", opts.Recurse, "maxDepth", opts.MaxDepth)
	return s.candidates(unique), nil
}

func (s *Scanner) candidates(dirs []string) []Candidate {
	out := make([]Candidate, 0, len(dirs))
	for _, dir := range dirs {
		display := paths.CollapseHome(dir)
		if s.Home != "" {
			display = paths.CollapseHomeWith(dir, s.Home)
		}
		out = append(out, Candidate{Path: dir, Display: display})
	}
	return out
}

// searchSubtrees runs one depth-bounded search per base directory, bounded by opts.Workers.
func searchSubtrees(ctx context.Context, base []string, opts Options) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var mu sync.Mutex
	var out []string
	for _, dir := range base {
		g.Go(func() error {
			found, err := FindMarked(ctx, dir, opts.Marker, opts.MaxDepth)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindMarked returns every directory at most maxDepth levels below start
// (start itself excluded) that directly contains a directory named marker.
// Symlinks are not followed. Unreadable directories are logged and skipped;
// only context cancellation produces an error.
func FindMarked(ctx context.Context, start, marker string, maxDepth int) ([]string, error) {
	var out []string
	if err := walk(ctx, start, marker, 0, maxDepth, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(ctx context.Context, dir, marker string, depth, maxDepth int, out *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth >= maxDepth {
		return nil
	}

	children, err := listChildDirs(dir, false)
	if err != nil {
		logger.ComponentLogger("scanner").Warn("skipping unreadable directory", "path", dir, "error", err)
		return nil
	}

	for _, child := range children {
		if filepath.Base(child) == marker {
			continue
		}
		if hasMarker(child, marker) {
			*out = append(*out, child)
		}
		if err := walk(ctx, child, marker, depth+1, maxDepth, out); err != nil {
			return err
		}
	}
	return nil
}

// listChildDirs returns the absolute paths of the immediate subdirectories of dir.
// With followLinks, symlinks that resolve to directories count as directories.
func listChildDirs(dir string, followLinks bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		full := filepath.Join(dir, name)
		if isDirEntry(full, entry, followLinks) {
			out = append(out, full)
		}
	}
	return out, nil
}

func isDirEntry(full string, entry fs.DirEntry, followLinks bool) bool {
	if entry.IsDir() {
		return true
	}
	if !followLinks || entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}

func hasMarker(dir, marker string) bool {
	info, err := os.Stat(filepath.Join(dir, marker))
	return err == nil && info.IsDir()
}

// Dedupe returns paths with duplicates removed, keeping first occurrences.
// Paths are compared after filepath.Clean.
func Dedupe(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		clean := filepath.Clean(dir)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
