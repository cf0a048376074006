package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/scanner"
	"github.com/zhubert/hopper/internal/session"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func intPtr(n int) *int { return &n }

func TestLoadFile_Valid(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `
workspaces:
  - name: " work "
    path: `+root+`
    key: W
    options:
      search_git_subfolders: true
      max_depth: 3
  - name: notes
    path: `+root+`
    key: N
sessions_key: S
session_name: "{{ .Project | lower }}-{{ .Workspace }}"
command_timeout: 2s
notifications: true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if len(cfg.Workspaces) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(cfg.Workspaces))
	}
	if cfg.Workspaces[0].Name != "work" {
		t.Errorf("name not trimmed: %q", cfg.Workspaces[0].Name)
	}
	if got := cfg.Timeout(time.Second); got != 2*time.Second {
		t.Errorf("Timeout() = %v", got)
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}

	namer, err := cfg.Namer()
	if err != nil {
		t.Fatalf("Namer() error = %v", err)
	}
	if got := namer.Name("API", "work"); got != "api-work" {
		t.Errorf("Namer().Name() = %q", got)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !stderrors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", errors.GetKind(err))
	}
	if !strings.Contains(err.Error(), "workspaces:") {
		t.Errorf("error should show the expected shape, got %q", err)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "\n"))
	if !errors.Is(err, errors.KindConfig) {
		t.Fatalf("expected KindConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "no workspaces configured") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "workspaces: [unclosed"))
	if !errors.Is(err, errors.KindConfig) {
		t.Fatalf("expected KindConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "parse yaml") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestValidate_ReportsEveryIssue(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		Workspaces: []Workspace{
			{Name: "work", Path: root, Key: "W"},
			{Name: "", Path: root, Key: "X"},
			{Name: "work", Path: root, Key: "W"},
			{Name: "gone", Path: filepath.Join(root, "nope"), Key: "G"},
			{Name: "deep", Path: root, Key: "D", Options: &WorkspaceOptions{MaxDepth: intPtr(-1)}},
			{Name: "keyless", Path: "", Key: ""},
			{Name: "clash", Path: root, Key: "S"},
		},
		SessionsKey:    "S",
		SessionName:    "{{ .Nope }}",
		CommandTimeout: "soon",
		Theme:          "neon",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", errors.GetKind(err))
	}

	msg := err.Error()
	for _, want := range []string{
		"workspaces[1]: name is required",
		`workspaces[2] (work): name "work" already used by workspaces[0]`,
		`workspaces[2] (work): key "W" already bound by workspaces[0] (work)`,
		"workspaces[3] (gone): path",
		"workspaces[4] (deep): max_depth must not be negative",
		"workspaces[5] (keyless): key is required",
		"workspaces[5] (keyless): path is required",
		`workspaces[6] (clash): key "S" already bound by sessions_key`,
		`command_timeout "soon"`,
		"session_name:",
		`theme "neon" is not one of dark-purple, nord`,
		"expected shape:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q\n%s", want, msg)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := (&Config{}).GetTheme(); got != "dark-purple" {
		t.Errorf("GetTheme() = %q, want the default", got)
	}
	if got := (&Config{Theme: "nord"}).GetTheme(); got != "nord" {
		t.Errorf("GetTheme() = %q, want nord", got)
	}
}

func TestValidate_NoWorkspaces(t *testing.T) {
	err := (&Config{}).Validate()
	if err == nil || !strings.Contains(err.Error(), "no workspaces configured") {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate_TildePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "work"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Workspaces: []Workspace{{Name: "work", Path: "~/work", Key: "W"}}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestFind(t *testing.T) {
	cfg := &Config{Workspaces: []Workspace{
		{Name: "work", Path: "/w", Key: "W"},
		{Name: "home", Path: "/h", Key: "H"},
	}}

	ws, err := cfg.Find("home")
	if err != nil || ws.Path != "/h" {
		t.Errorf("Find(home) = %+v, %v", ws, err)
	}

	_, err = cfg.Find("nope")
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}

	if ws, ok := cfg.FindByKey("W"); !ok || ws.Name != "work" {
		t.Errorf("FindByKey(W) = %+v, %v", ws, ok)
	}
	if _, ok := cfg.FindByKey("Z"); ok {
		t.Error("FindByKey(Z) should not match")
	}
}

func TestWorkspace_ScanOptions(t *testing.T) {
	tests := []struct {
		name string
		ws   Workspace
		want scanner.Options
	}{
		{
			name: "options omitted",
			ws:   Workspace{},
			want: scanner.Options{Recurse: false, MaxDepth: scanner.DefaultMaxDepth},
		},
		{
			name: "recursion off is the same as omitted",
			ws:   Workspace{Options: &WorkspaceOptions{SearchGitSubfolders: false}},
			want: scanner.Options{Recurse: false, MaxDepth: scanner.DefaultMaxDepth},
		},
		{
			name: "recursion with default depth",
			ws:   Workspace{Options: &WorkspaceOptions{SearchGitSubfolders: true}},
			want: scanner.Options{Recurse: true, MaxDepth: scanner.DefaultMaxDepth},
		},
		{
			name: "explicit depth",
			ws:   Workspace{Options: &WorkspaceOptions{SearchGitSubfolders: true, MaxDepth: intPtr(4)}},
			want: scanner.Options{Recurse: true, MaxDepth: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ws.ScanOptions(); got != tt.want {
				t.Errorf("ScanOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWorkspace_Target(t *testing.T) {
	ws := Workspace{Name: "work", Path: "~/work", Key: "W"}
	if got := ws.Target(); got != (session.Workspace{Name: "work", Root: "~/work"}) {
		t.Errorf("Target() = %+v", got)
	}
}

func TestNamer_Default(t *testing.T) {
	namer, err := (&Config{}).Namer()
	if err != nil {
		t.Fatal(err)
	}
	if got := namer.Name("api", "work"); got != "API" {
		t.Errorf("Name() = %q", got)
	}
}

func TestTimeout_Fallback(t *testing.T) {
	if got := (&Config{}).Timeout(5 * time.Second); got != 5*time.Second {
		t.Errorf("Timeout() = %v", got)
	}
}

func TestConfig_AddRemoveWorkspace(t *testing.T) {
	cfg := &Config{}

	if !cfg.AddWorkspace(Workspace{Name: " work ", Path: "/w", Key: "W"}) {
		t.Error("AddWorkspace should return true for a new name")
	}
	if cfg.AddWorkspace(Workspace{Name: "work", Path: "/other", Key: "O"}) {
		t.Error("AddWorkspace should return false for a duplicate name")
	}
	if got := cfg.GetWorkspaces(); len(got) != 1 || got[0].Name != "work" {
		t.Errorf("GetWorkspaces() = %+v", got)
	}

	if cfg.RemoveWorkspace("nope") {
		t.Error("RemoveWorkspace should return false for an unknown name")
	}
	if !cfg.RemoveWorkspace("work") {
		t.Error("RemoveWorkspace should return true for an existing name")
	}
	if len(cfg.GetWorkspaces()) != 0 {
		t.Error("expected no workspaces after removal")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := New(path)
	cfg.AddWorkspace(Workspace{
		Name:    "work",
		Path:    root,
		Key:     "W",
		Options: &WorkspaceOptions{SearchGitSubfolders: true, MaxDepth: intPtr(1)},
	})
	cfg.SessionsKey = "S"
	cfg.CommandTimeout = "3s"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	ws, err := loaded.Find("work")
	if err != nil {
		t.Fatal(err)
	}
	if ws.Path != root || ws.Key != "W" || ws.ScanOptions().MaxDepth != 1 || !ws.ScanOptions().Recurse {
		t.Errorf("round-tripped workspace = %+v", ws)
	}
	if loaded.SessionsKey != "S" || loaded.Timeout(0) != 3*time.Second {
		t.Errorf("round-tripped config = %+v", loaded)
	}
}

func TestConfig_SaveWithoutPath(t *testing.T) {
	if err := (&Config{}).Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestExpectedShapeIsValidYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "work"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(writeConfig(t, ExpectedShape))
	if err != nil {
		t.Fatalf("ExpectedShape should load cleanly: %v", err)
	}
	if _, err := cfg.Find("work"); err != nil {
		t.Error(err)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cfg.AddWorkspace(Workspace{Name: string(rune('a' + n)), Path: "/x", Key: string(rune('A' + n))})
		}(i)
		go func() {
			defer wg.Done()
			_ = cfg.GetWorkspaces()
		}()
	}
	wg.Wait()

	if got := len(cfg.GetWorkspaces()); got != 10 {
		t.Errorf("expected 10 workspaces, got %d", got)
	}
}
