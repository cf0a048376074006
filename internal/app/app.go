// Package app wires discovery, the picker and the session controller into
// the two user-facing flows: opening a workspace and attaching to an
// existing session.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/zhubert/hopper/internal/config"
	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/logger"
	"github.com/zhubert/hopper/internal/picker"
	"github.com/zhubert/hopper/internal/scanner"
	"github.com/zhubert/hopper/internal/session"
	"github.com/zhubert/hopper/internal/ui"
)

// ProjectScanner discovers project directories. *scanner.Scanner implements it.
type ProjectScanner interface {
	Scan(ctx context.Context, root string, opts scanner.Options) ([]scanner.Candidate, error)
}

// SessionManager drives tmux sessions. *session.Controller implements it.
type SessionManager interface {
	IsRunning(ctx context.Context) bool
	ListSessions(ctx context.Context) ([]string, error)
	ManageSession(ctx context.Context, projectPath string, ws session.Workspace) (session.Outcome, error)
	Attach(ctx context.Context, name string) error
}

// Picker presents a list and returns the chosen index. *picker.Picker implements it.
type Picker interface {
	Pick(ctx context.Context, title string, items []picker.Item) (index int, ok bool, err error)
}

// App runs the selection flows.
type App struct {
	Scanner  ProjectScanner
	Sessions SessionManager
	Picker   Picker
	Out      io.Writer // success and info lines; nil discards them
}

// New returns an App.
func New(s ProjectScanner, sessions SessionManager, p Picker, out io.Writer) *App {
	return &App{Scanner: s, Sessions: sessions, Picker: p, Out: out}
}

// OpenWorkspace lets the user pick a project in ws and switches to its session,
// creating the session when it does not exist yet.
// Cancelling the picker or the new-project prompt is not an error.
func (a *App) OpenWorkspace(ctx context.Context, ws config.Workspace) error {
	log := logger.WithRun("open").With("workspace", ws.Name)

	if !a.Sessions.IsRunning(ctx) {
		log.Warn("not inside tmux")
		return errors.NotInsideMultiplexer()
	}

	candidates, err := a.Scanner.Scan(ctx, ws.Path, ws.ScanOptions())
	if err != nil {
		log.Error("scan failed", "error", err)
		return err
	}
	log.Debug("scanned workspace", "candidates", len(candidates))

	entries := Entries(candidates)
	idx, ok, err := a.Picker.Pick(ctx, ws.Name, Items(entries))
	if err != nil {
		return fmt.Errorf("pick project: %w", err)
	}
	if !ok {
		log.Info("selection cancelled")
		return nil
	}

	entry := entries[idx]
	outcome, err := a.Sessions.ManageSession(ctx, entry.Target(), ws.Target())
	if err != nil {
		log.Error("manage session failed", "project", entry.Path, "error", err)
		return err
	}
	if outcome == session.OutcomeCancelled {
		log.Info("new project cancelled")
		return nil
	}

	log.Info("session ready", "project", entry.Path, "outcome", outcome.String())
	a.println(ui.Success(fmt.Sprintf("%s for %s", outcome, entry.Label)))
	return nil
}

// ListAndAttach lets the user pick one of the existing sessions and switches to it.
func (a *App) ListAndAttach(ctx context.Context) error {
	log := logger.WithRun("sessions")

	if !a.Sessions.IsRunning(ctx) {
		log.Warn("not inside tmux")
		return errors.NotInsideMultiplexer()
	}

	names, err := a.Sessions.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.println(ui.Note("no sessions"))
		return nil
	}

	items := make([]picker.Item, len(names))
	for i, name := range names {
		items[i] = picker.Item{Label: name}
	}
	idx, ok, err := a.Picker.Pick(ctx, "sessions", items)
	if err != nil {
		return fmt.Errorf("pick session: %w", err)
	}
	if !ok {
		log.Info("selection cancelled")
		return nil
	}

	name := names[idx]
	if err := a.Sessions.Attach(ctx, name); err != nil {
		log.Error("attach failed", "session", name, "error", err)
		return err
	}
	log.Info("attached", "session", name)
	a.println(ui.Success("attached to " + name))
	return nil
}

func (a *App) println(line string) {
	if a.Out == nil {
		return
	}
	fmt.Fprintln(a.Out, line)
}
