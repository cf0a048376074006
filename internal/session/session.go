package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/logger"
	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/tmux"
)

// NewProjectEntry is the project path the picker returns for the synthetic
// "create new project" row.
const NewProjectEntry = "newProject"

// Multiplexer is the subset of tmux the controller drives. *tmux.Client implements it.
type Multiplexer interface {
	InsideSession(ctx context.Context) bool
	ListSessions(ctx context.Context) ([]string, error)
	NewSession(ctx context.Context, name, dir string) error
	SwitchClient(ctx context.Context, name string) error
}

// PathPrompter asks the user where a new project should live.
// ok is false when the user cancelled.
type PathPrompter interface {
	PromptPath(ctx context.Context, ws Workspace) (answer string, ok bool, err error)
}

// Workspace is the part of a configured workspace the controller needs.
type Workspace struct {
	Name string
	Root string // may start with "~"
}

// Outcome is the result of ManageSession.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeAttachedNew
	OutcomeAttachedExisting
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAttachedNew:
		return "attached to new session"
	case OutcomeAttachedExisting:
		return "attached to existing session"
	default:
		return "cancelled"
	}
}

// Controller creates and attaches sessions.
type Controller struct {
	Mux      Multiplexer
	Namer    Namer
	Prompter PathPrompter
}

// NewController returns a Controller. A nil namer means UpperNamer.
func NewController(mux Multiplexer, namer Namer, prompter PathPrompter) *Controller {
	if namer == nil {
		namer = UpperNamer{}
	}
	return &Controller{Mux: mux, Namer: namer, Prompter: prompter}
}

// IsRunning reports whether the caller runs inside a live tmux session.
func (c *Controller) IsRunning(ctx context.Context) bool {
	return c.Mux.InsideSession(ctx)
}

// ListSessions returns the existing session names in tmux order.
func (c *Controller) ListSessions(ctx context.Context) ([]string, error) {
	names, err := c.Mux.ListSessions(ctx)
	if err != nil {
		return nil, errors.E(errors.Op("session.ListSessions"), errors.KindSessionOp, "list sessions", err)
	}
	return names, nil
}

// DeriveName returns the session name for projectPath.
func (c *Controller) DeriveName(projectPath string, ws Workspace) string {
	namer := c.Namer
	if namer == nil {
		namer = UpperNamer{}
	}
	return namer.Name(filepath.Base(filepath.Clean(projectPath)), ws.Name)
}

// ManageSession switches the client to the session for projectPath, creating it first if needed.
func (c *Controller) ManageSession(ctx context.Context, projectPath string, ws Workspace) (Outcome, error) {
	log := logger.ComponentLogger("session")

	if projectPath == NewProjectEntry {
		path, ok, err := c.newProjectPath(ctx, ws)
		if err != nil {
			return OutcomeCancelled, err
		}
		if !ok {
			log.Info("new project cancelled", "workspace", ws.Name)
			return OutcomeCancelled, nil
		}
		projectPath = path
	}

	name := c.DeriveName(projectPath, ws)
	existing, err := c.Mux.ListSessions(ctx)
	if err != nil {
		return OutcomeCancelled, errors.SessionCommandFailed(errors.Op("session.ManageSession"), name, err)
	}

	outcome := OutcomeAttachedExisting
	if !slices.Contains(existing, name) {
		if err := c.Mux.NewSession(ctx, name, projectPath); err != nil {
			return OutcomeCancelled, createFailed(name, err)
		}
		log.Info("created session", "name", name, "dir", projectPath)
		outcome = OutcomeAttachedNew
	}

	if err := c.Mux.SwitchClient(ctx, name); err != nil {
		return OutcomeCancelled, errors.SessionCommandFailed(errors.Op("session.switch"), name, err)
	}
	log.Info("switched client", "name", name, "outcome", outcome.String())
	return outcome, nil
}

// createFailed wraps a new-session error. tmux stores a name containing '.'
// or ':' with '_' in their place, so the session exists under another name
// and every later create collides with it.
func createFailed(name string, err error) error {
	op := errors.Op("session.create")
	if stderrors.Is(err, tmux.ErrSessionExists) && strings.ContainsAny(name, ".:") {
		return errors.E(op, errors.KindSessionOp,
			fmt.Sprintf("session %s: tmux renamed it to %s; set session_name to avoid '.' and ':', e.g. {{ .Project | upper | replace \".\" \"-\" }}",
				name, tmuxName(name)), err)
	}
	return errors.SessionCommandFailed(op, name, err)
}

// tmuxName returns name the way tmux stores it.
func tmuxName(name string) string {
	return strings.NewReplacer(".", "_", ":", "_").Replace(name)
}

// Attach switches to the existing session name.
func (c *Controller) Attach(ctx context.Context, name string) error {
	existing, err := c.Mux.ListSessions(ctx)
	if err != nil {
		return errors.SessionCommandFailed(errors.Op("session.Attach"), name, err)
	}
	if !slices.Contains(existing, name) {
		return errors.SessionCommandFailed(errors.Op("session.Attach"), name, tmux.ErrSessionNotFound)
	}
	if err := c.Mux.SwitchClient(ctx, name); err != nil {
		return errors.SessionCommandFailed(errors.Op("session.switch"), name, err)
	}
	return nil
}

// newProjectPath prompts for the new project and makes sure its directory exists.
func (c *Controller) newProjectPath(ctx context.Context, ws Workspace) (string, bool, error) {
	if c.Prompter == nil {
		return "", false, errors.E(errors.Op("session.ManageSession"), errors.KindInvalid, "no prompt available for a new project")
	}

	answer, ok, err := c.Prompter.PromptPath(ctx, ws)
	if err != nil {
		return "", false, errors.E(errors.Op("session.ManageSession"), errors.KindSessionOp, "prompt for new project", err)
	}
	if !ok || strings.TrimSpace(answer) == "" {
		return "", false, nil
	}

	path, err := ResolveProjectPath(answer, ws.Root)
	if err != nil {
		return "", false, errors.E(errors.Op("session.ManageSession"), errors.KindInvalid, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", false, errors.E(errors.Op("session.ManageSession"), errors.KindIO,
			fmt.Sprintf("create project directory %s", path), err)
	}
	return path, true, nil
}

// ResolveProjectPath turns a prompt answer into an absolute directory.
// "~" is expanded and relative answers are placed under root.
func ResolveProjectPath(answer, root string) (string, error) {
	answer = paths.ExpandHome(strings.TrimSpace(answer))
	if answer == "" {
		return "", fmt.Errorf("empty project path")
	}
	if filepath.IsAbs(answer) {
		return filepath.Clean(answer), nil
	}
	absRoot, err := paths.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve workspace root %s: %w", root, err)
	}
	return filepath.Join(absRoot, answer), nil
}
