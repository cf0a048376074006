package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/session"
	"github.com/zhubert/hopper/internal/ui"
)

// ErrNoConfig is wrapped by Load when there is no config file to read.
var ErrNoConfig = stderrors.New("no workspaces configured")

// ExpectedShape is appended to every configuration error and written by `hopper init`.
const ExpectedShape = `# hopper configuration
workspaces:
  - name: work               # shown in messages, used by "hopper open work"
    path: ~/work             # directory whose subdirectories are projects
    key: W                   # tmux key bound to the workspace popup
    options:
      search_git_subfolders: true   # also offer nested git repositories
      max_depth: 2                  # levels searched below each project
sessions_key: S              # optional tmux key for "hopper sessions"
session_name: "{{ .Project | upper }}"
command_timeout: 5s
notifications: false
theme: dark-purple           # dark-purple, nord, dracula, gruvbox, tokyo-night, catppuccin, science-fiction, light
`

// Config holds the application configuration
type Config struct {
	Workspaces     []Workspace `yaml:"workspaces"`
	SessionsKey    string      `yaml:"sessions_key,omitempty"`
	SessionName    string      `yaml:"session_name,omitempty"`    // text/template; empty means upper-cased project name
	CommandTimeout string      `yaml:"command_timeout,omitempty"` // time.ParseDuration format
	Notifications  bool        `yaml:"notifications,omitempty"`   // desktop notification on failures
	Theme          string      `yaml:"theme,omitempty"`           // ui theme name; empty means the default

	mu       sync.RWMutex
	filePath string
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("config directory", err)
	}
	return LoadFile(path)
}

// LoadFile reads, normalizes and validates the config at path.
// A config with any issue is rejected as a whole.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.E(errors.Op("config.Load"), errors.KindConfig,
			fmt.Errorf("%w (expected a file at %s)\n\n%s", ErrNoConfig, path, ExpectedShape))
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg := &Config{filePath: path}
	if strings.TrimSpace(string(data)) != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, fmt.Errorf("parse yaml: %w", err))
		}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns an empty config that saves to path.
func New(path string) *Config {
	return &Config{filePath: path}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.filePath
}

// Normalize trims whitespace from every string field.
func (c *Config) Normalize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.Workspaces {
		c.Workspaces[i].normalize()
	}
	c.SessionsKey = strings.TrimSpace(c.SessionsKey)
	c.SessionName = strings.TrimSpace(c.SessionName)
	c.CommandTimeout = strings.TrimSpace(c.CommandTimeout)
	c.Theme = strings.TrimSpace(c.Theme)
}

// Validate collects every issue in the config and reports them together.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var issues []string
	if len(c.Workspaces) == 0 {
		issues = append(issues, "no workspaces configured")
	}

	names := make(map[string]int)
	keys := make(map[string]string)
	if c.SessionsKey != "" {
		keys[c.SessionsKey] = "sessions_key"
	}
	for i, ws := range c.Workspaces {
		label := ws.label(i)
		if ws.Name == "" {
			issues = append(issues, label+": name is required")
		} else if prev, ok := names[ws.Name]; ok {
			issues = append(issues, fmt.Sprintf("%s: name %q already used by workspaces[%d]", label, ws.Name, prev))
		} else {
			names[ws.Name] = i
		}

		if ws.Key == "" {
			issues = append(issues, label+": key is required")
		} else if owner, ok := keys[ws.Key]; ok {
			issues = append(issues, fmt.Sprintf("%s: key %q already bound by %s", label, ws.Key, owner))
		} else {
			keys[ws.Key] = label
		}

		if ws.Path == "" {
			issues = append(issues, label+": path is required")
		} else if !ws.RootExists() {
			issues = append(issues, fmt.Sprintf("%s: path %s is not an existing directory", label, ws.Path))
		}

		if ws.Options != nil && ws.Options.MaxDepth != nil && *ws.Options.MaxDepth < 0 {
			issues = append(issues, fmt.Sprintf("%s: max_depth must not be negative (got %d)", label, *ws.Options.MaxDepth))
		}
	}

	if c.CommandTimeout != "" {
		if d, err := time.ParseDuration(c.CommandTimeout); err != nil || d <= 0 {
			issues = append(issues, fmt.Sprintf("command_timeout %q must be a positive duration such as 5s", c.CommandTimeout))
		}
	}
	if c.SessionName != "" {
		if _, err := session.ParseTemplateNamer(c.SessionName); err != nil {
			issues = append(issues, fmt.Sprintf("session_name: %v", err))
		}
	}

	if c.Theme != "" && !ui.IsThemeName(c.Theme) {
		issues = append(issues, fmt.Sprintf("theme %q is not one of %s", c.Theme, themeList()))
	}

	if len(issues) == 0 {
		return nil
	}
	return errors.ConfigInvalid(fmt.Sprintf("invalid config:\n  - %s\n\nexpected shape:\n%s",
		strings.Join(issues, "\n  - "), ExpectedShape))
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return errors.E(errors.Op("config.Save"), errors.KindInvalid, "config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.E(errors.Op("config.Save"), errors.KindIO, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.E(errors.Op("config.Save"), errors.KindInvalid, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.E(errors.Op("config.Save"), errors.KindIO, err)
	}
	return nil
}

// GetWorkspaces returns a copy of the configured workspaces.
func (c *Config) GetWorkspaces() []Workspace {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Workspace, len(c.Workspaces))
	copy(out, c.Workspaces)
	return out
}

// Find returns the workspace with the given name.
func (c *Config) Find(name string) (Workspace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ws := range c.Workspaces {
		if ws.Name == name {
			return ws, nil
		}
	}
	return Workspace{}, errors.WorkspaceNotConfigured(name)
}

// FindByKey returns the workspace bound to key.
func (c *Config) FindByKey(key string) (Workspace, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ws := range c.Workspaces {
		if ws.Key == key {
			return ws, true
		}
	}
	return Workspace{}, false
}

// AddWorkspace appends ws if no workspace with the same name exists.
// Returns false if the name is taken.
func (c *Config) AddWorkspace(ws Workspace) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ws.normalize()
	for _, existing := range c.Workspaces {
		if existing.Name == ws.Name {
			return false
		}
	}
	c.Workspaces = append(c.Workspaces, ws)
	return true
}

// RemoveWorkspace removes the workspace with the given name.
// Returns true if it was found and removed.
func (c *Config) RemoveWorkspace(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, ws := range c.Workspaces {
		if ws.Name == name {
			c.Workspaces = append(c.Workspaces[:i], c.Workspaces[i+1:]...)
			return true
		}
	}
	return false
}

// Timeout returns the per-command tmux timeout, or fallback when unset.
func (c *Config) Timeout(fallback time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if d, err := time.ParseDuration(c.CommandTimeout); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Namer returns the session namer described by session_name.
func (c *Config) Namer() (session.Namer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.SessionName == "" {
		return session.UpperNamer{}, nil
	}
	n, err := session.ParseTemplateNamer(c.SessionName)
	if err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("session_name: %v", err))
	}
	return n, nil
}

// GetTheme returns the configured ui theme name, or the default theme.
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Theme == "" {
		return string(ui.DefaultTheme)
	}
	return c.Theme
}

func themeList() string {
	names := ui.ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}

// GetNotificationsEnabled reports whether failures raise a desktop notification.
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Notifications
}
