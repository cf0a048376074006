// Package paths provides path normalization and the data directories hopper uses.
//
// Home-directory handling:
//
//   - ExpandHome resolves a leading "~" before any filesystem or tmux operation.
//   - CollapseHome shortens a path for display only.
//
// Directory layout follows the XDG Base Directory Specification:
//
//   - Config (XDG_CONFIG_HOME): hopper/config.yaml
//   - State (XDG_STATE_HOME): hopper/logs/
//
// $HOPPER_CONFIG overrides the config file location.
package paths

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const appName = "hopper"

var (
	mu       sync.Mutex
	resolved *resolvedPaths
)

type resolvedPaths struct {
	configDir string
	stateDir  string
}

// resolve computes the directory layout once and caches it.
func resolve() (*resolvedPaths, error) {
	mu.Lock()
	defer mu.Unlock()

	if resolved != nil {
		return resolved, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgState := os.Getenv("XDG_STATE_HOME")
	if xdgState == "" {
		xdgState = filepath.Join(home, ".local", "state")
	}

	resolved = &resolvedPaths{
		configDir: filepath.Join(xdgConfig, appName),
		stateDir:  filepath.Join(xdgState, appName),
	}
	return resolved, nil
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.configDir, nil
}

// StateDir returns the directory for runtime state and logs.
func StateDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.stateDir, nil
}

// ConfigFilePath returns the full path to the config file.
func ConfigFilePath() (string, error) {
	if override := os.Getenv("HOPPER_CONFIG"); override != "" {
		return filepath.Clean(ExpandHome(override)), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogsDir returns the directory for log files.
func LogsDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Reset clears the cached path resolution. This is intended for testing only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resolved = nil
}

// ExpandHome resolves a leading "~" to the current user's home directory.
// Paths without the shorthand, and "~user" forms, are returned unchanged.
func ExpandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return ExpandHomeWith(path, home)
}

// ExpandHomeWith is ExpandHome with an explicit home directory.
func ExpandHomeWith(path, home string) string {
	if path == "" || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// CollapseHome replaces the home directory prefix with "~" for display.
// It must not be used for paths handed to the filesystem or tmux.
func CollapseHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return CollapseHomeWith(path, home)
}

// CollapseHomeWith is CollapseHome with an explicit home directory.
func CollapseHomeWith(path, home string) string {
	if path == "" || home == "" {
		return path
	}
	home = filepath.Clean(home)
	if home == string(filepath.Separator) {
		return path
	}
	clean := filepath.Clean(path)
	if clean == home {
		return "~"
	}
	if strings.HasPrefix(clean, home+string(filepath.Separator)) {
		return "~" + clean[len(home):]
	}
	return path
}

// Abs expands "~" and returns a cleaned absolute path.
func Abs(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
