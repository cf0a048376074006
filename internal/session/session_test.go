package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/exec"
	"github.com/zhubert/hopper/internal/tmux"
)

// fakeMux is a stateful in-memory multiplexer.
type fakeMux struct {
	inside   bool
	sessions []string
	created  []string
	switched []string
	listErr  error
	newErr   error
}

func (m *fakeMux) InsideSession(context.Context) bool { return m.inside }

func (m *fakeMux) ListSessions(context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.sessions), nil
}

func (m *fakeMux) NewSession(_ context.Context, name, _ string) error {
	if m.newErr != nil {
		return m.newErr
	}
	m.created = append(m.created, name)
	m.sessions = append(m.sessions, name)
	return nil
}

func (m *fakeMux) SwitchClient(_ context.Context, name string) error {
	if !slices.Contains(m.sessions, name) {
		return tmux.ErrSessionNotFound
	}
	m.switched = append(m.switched, name)
	return nil
}

type fakePrompter struct {
	answer string
	ok     bool
	err    error
	calls  int
}

func (p *fakePrompter) PromptPath(context.Context, Workspace) (string, bool, error) {
	p.calls++
	return p.answer, p.ok, p.err
}

var ws = Workspace{Name: "work", Root: "/home/u/work"}

func TestDeriveName(t *testing.T) {
	c := NewController(&fakeMux{}, nil, nil)

	tests := []struct {
		path string
		want string
	}{
		{"/home/u/work/api", "API"},
		{"/home/u/work/api/", "API"},
		{"/home/u/work/my-app", "MY-APP"},
		{"/home/u/work/group/svc.v2", "SVC.V2"},
	}
	for _, tt := range tests {
		if got := c.DeriveName(tt.path, ws); got != tt.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDeriveName_CustomNamer(t *testing.T) {
	namer := NamerFunc(func(project, workspace string) string { return workspace + "/" + project })
	c := NewController(&fakeMux{}, namer, nil)

	if got := c.DeriveName("/x/api", ws); got != "work/api" {
		t.Errorf("DeriveName() = %q", got)
	}
}

func TestManageSession_CreatesThenReuses(t *testing.T) {
	mux := &fakeMux{inside: true}
	c := NewController(mux, nil, nil)
	ctx := context.Background()

	got, err := c.ManageSession(ctx, "/home/u/work/api", ws)
	if err != nil {
		t.Fatalf("first ManageSession() error = %v", err)
	}
	if got != OutcomeAttachedNew {
		t.Errorf("first outcome = %v, want %v", got, OutcomeAttachedNew)
	}

	got, err = c.ManageSession(ctx, "/home/u/work/api", ws)
	if err != nil {
		t.Fatalf("second ManageSession() error = %v", err)
	}
	if got != OutcomeAttachedExisting {
		t.Errorf("second outcome = %v, want %v", got, OutcomeAttachedExisting)
	}

	if len(mux.created) != 1 {
		t.Errorf("created %d sessions, want 1", len(mux.created))
	}
	if len(mux.switched) != 2 {
		t.Errorf("switched %d times, want 2", len(mux.switched))
	}
}

func TestManageSession_ExistingSessionOnlySwitches(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("tmux", []string{"list-sessions", "-F", "#{session_name}"}, exec.MockResponse{
		Stdout: []byte("WEB\nAPI\n"),
	})
	client := &tmux.Client{Executor: mock, Timeout: time.Second}
	c := NewController(client, nil, nil)

	got, err := c.ManageSession(context.Background(), "/home/u/work/api", ws)
	if err != nil {
		t.Fatalf("ManageSession() error = %v", err)
	}
	if got != OutcomeAttachedExisting {
		t.Errorf("outcome = %v", got)
	}
	if n := mock.CountCalls("tmux", "new-session"); n != 0 {
		t.Errorf("new-session issued %d times, want 0", n)
	}
	if n := mock.CountCalls("tmux", "switch-client", "-t", "=API"); n != 1 {
		t.Errorf("switch-client issued %d times, want 1", n)
	}
}

func TestManageSession_NewSessionArgs(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	client := &tmux.Client{Executor: mock, Timeout: time.Second}
	c := NewController(client, nil, nil)

	if _, err := c.ManageSession(context.Background(), "/home/u/work/api", ws); err != nil {
		t.Fatalf("ManageSession() error = %v", err)
	}
	if n := mock.CountCalls("tmux", "new-session", "-d", "-s", "API", "-c", "/home/u/work/api"); n != 1 {
		t.Errorf("expected one new-session for API in the project dir, calls: %+v", mock.GetCalls())
	}
	calls := mock.GetCalls()
	if last := calls[len(calls)-1]; last.Args[0] != "switch-client" {
		t.Errorf("last command = %v, want switch-client", last.Args)
	}
}

func TestManageSession_CreateFailureDoesNotSwitch(t *testing.T) {
	mux := &fakeMux{newErr: stderrors.New("tmux new-session: bad session name")}
	c := NewController(mux, nil, nil)

	_, err := c.ManageSession(context.Background(), "/home/u/work/a:b", ws)
	if !errors.Is(err, errors.KindSessionOp) {
		t.Errorf("expected KindSessionOp, got %v (%v)", errors.GetKind(err), err)
	}
	if len(mux.switched) != 0 {
		t.Error("switch must not run after a failed create")
	}
}

func TestManageSession_DottedNameCollision(t *testing.T) {
	// tmux already holds SVC_V2, created by an earlier open of svc.v2.
	mux := &fakeMux{sessions: []string{"SVC_V2"}, newErr: fmt.Errorf("tmux new-session: %w", tmux.ErrSessionExists)}
	c := NewController(mux, nil, nil)

	_, err := c.ManageSession(context.Background(), "/home/u/work/svc.v2", ws)
	if !errors.Is(err, errors.KindSessionOp) {
		t.Fatalf("expected KindSessionOp, got %v (%v)", errors.GetKind(err), err)
	}
	if !stderrors.Is(err, tmux.ErrSessionExists) {
		t.Errorf("error should wrap ErrSessionExists: %v", err)
	}
	for _, want := range []string{"SVC.V2", "renamed it to SVC_V2", "session_name"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if len(mux.switched) != 0 {
		t.Error("switch must not run after a failed create")
	}
}

func TestManageSession_ExistsWithoutDotKeepsPlainMessage(t *testing.T) {
	mux := &fakeMux{newErr: fmt.Errorf("tmux new-session: %w", tmux.ErrSessionExists)}
	c := NewController(mux, nil, nil)

	_, err := c.ManageSession(context.Background(), "/home/u/work/api", ws)
	if strings.Contains(err.Error(), "renamed") {
		t.Errorf("plain name should not mention renaming: %v", err)
	}
}

func TestTmuxName(t *testing.T) {
	tests := map[string]string{
		"SVC.V2": "SVC_V2",
		"A:B.C":  "A_B_C",
		"API":    "API",
	}
	for in, want := range tests {
		if got := tmuxName(in); got != want {
			t.Errorf("tmuxName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestManageSession_ListFailure(t *testing.T) {
	mux := &fakeMux{listErr: stderrors.New("boom")}
	c := NewController(mux, nil, nil)

	_, err := c.ManageSession(context.Background(), "/x/api", ws)
	if !errors.Is(err, errors.KindSessionOp) {
		t.Errorf("expected KindSessionOp, got %v", err)
	}
	if len(mux.created) != 0 {
		t.Error("nothing should be created when listing fails")
	}
}

func TestManageSession_Timeout(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddPrefixMatch("tmux", []string{"new-session"}, exec.MockResponse{Hang: true})
	client := &tmux.Client{Executor: mock, Timeout: 20 * time.Millisecond}
	c := NewController(client, nil, nil)

	_, err := c.ManageSession(context.Background(), "/x/api", ws)
	if !stderrors.Is(err, tmux.ErrCommandTimeout) {
		t.Errorf("expected ErrCommandTimeout in chain, got %v", err)
	}
	if !errors.Is(err, errors.KindSessionOp) {
		t.Errorf("expected outer KindSessionOp, got %v", errors.GetKind(err))
	}
	if !errors.Has(err, errors.KindTimeout) {
		t.Error("expected KindTimeout somewhere in the chain")
	}
	if n := mock.CountCalls("tmux", "switch-client"); n != 0 {
		t.Errorf("switch-client issued %d times after timeout", n)
	}
}

func TestManageSession_NewProject(t *testing.T) {
	root := t.TempDir()
	mux := &fakeMux{}
	prompter := &fakePrompter{answer: "fresh", ok: true}
	c := NewController(mux, nil, prompter)

	got, err := c.ManageSession(context.Background(), NewProjectEntry, Workspace{Name: "work", Root: root})
	if err != nil {
		t.Fatalf("ManageSession() error = %v", err)
	}
	if got != OutcomeAttachedNew {
		t.Errorf("outcome = %v", got)
	}
	if info, err := os.Stat(filepath.Join(root, "fresh")); err != nil || !info.IsDir() {
		t.Errorf("project directory not created: %v", err)
	}
	if !slices.Equal(mux.created, []string{"FRESH"}) {
		t.Errorf("created = %v", mux.created)
	}
}

func TestManageSession_NewProjectCancelled(t *testing.T) {
	tests := []struct {
		name     string
		prompter *fakePrompter
	}{
		{"user aborted", &fakePrompter{ok: false}},
		{"empty answer", &fakePrompter{answer: "   ", ok: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := &fakeMux{}
			c := NewController(mux, nil, tt.prompter)

			got, err := c.ManageSession(context.Background(), NewProjectEntry, ws)
			if err != nil {
				t.Fatalf("ManageSession() error = %v", err)
			}
			if got != OutcomeCancelled {
				t.Errorf("outcome = %v, want cancelled", got)
			}
			if len(mux.created)+len(mux.switched) != 0 {
				t.Error("no tmux mutation expected after cancel")
			}
		})
	}
}

func TestManageSession_NewProjectWithoutPrompter(t *testing.T) {
	c := NewController(&fakeMux{}, nil, nil)
	if _, err := c.ManageSession(context.Background(), NewProjectEntry, ws); err == nil {
		t.Error("expected an error without a prompter")
	}
}

func TestAttach(t *testing.T) {
	mux := &fakeMux{sessions: []string{"API", "WEB"}}
	c := NewController(mux, nil, nil)

	if err := c.Attach(context.Background(), "WEB"); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !slices.Equal(mux.switched, []string{"WEB"}) {
		t.Errorf("switched = %v", mux.switched)
	}

	err := c.Attach(context.Background(), "GONE")
	if !stderrors.Is(err, tmux.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if !errors.Is(err, errors.KindSessionOp) {
		t.Errorf("expected KindSessionOp, got %v", errors.GetKind(err))
	}
}

func TestListSessions(t *testing.T) {
	c := NewController(&fakeMux{sessions: []string{"B", "A"}}, nil, nil)
	got, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"B", "A"}) {
		t.Errorf("ListSessions() = %v, want tmux order", got)
	}

	c = NewController(&fakeMux{listErr: stderrors.New("boom")}, nil, nil)
	if _, err := c.ListSessions(context.Background()); !errors.Is(err, errors.KindSessionOp) {
		t.Errorf("expected KindSessionOp, got %v", err)
	}
}

func TestIsRunning(t *testing.T) {
	if NewController(&fakeMux{inside: true}, nil, nil).IsRunning(context.Background()) != true {
		t.Error("expected running")
	}
	if NewController(&fakeMux{}, nil, nil).IsRunning(context.Background()) {
		t.Error("expected not running")
	}
}

func TestResolveProjectPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		answer string
		root   string
		want   string
	}{
		{"new", "/ws", "/ws/new"},
		{" nested/new ", "/ws", "/ws/nested/new"},
		{"/abs/place", "/ws", "/abs/place"},
		{"~/elsewhere", "/ws", filepath.Join(home, "elsewhere")},
		{"new", "~/work", filepath.Join(home, "work", "new")},
	}
	for _, tt := range tests {
		got, err := ResolveProjectPath(tt.answer, tt.root)
		if err != nil {
			t.Errorf("ResolveProjectPath(%q, %q) error = %v", tt.answer, tt.root, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveProjectPath(%q, %q) = %q, want %q", tt.answer, tt.root, got, tt.want)
		}
	}

	if _, err := ResolveProjectPath("", "/ws"); err == nil {
		t.Error("expected error for empty answer")
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeCancelled:        "cancelled",
		OutcomeAttachedNew:      "attached to new session",
		OutcomeAttachedExisting: "attached to existing session",
	} {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", o, o.String(), want)
		}
	}
}
