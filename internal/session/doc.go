// Package session creates and attaches tmux sessions bound to project directories.
//
// # Overview
//
// A project is a directory inside a workspace. Each project maps to exactly
// one tmux session whose name is derived from the project's base name (and,
// optionally, the workspace name through a template). Sessions are never
// cached: every operation asks tmux for the current list first.
//
// # Session Lifecycle
//
// ManageSession drives the whole lifecycle for a selected project:
//
//  1. If the selection is the synthetic "new project" entry, the user is
//     prompted for a name or path. A relative answer lands under the
//     workspace root; the directory is created if missing.
//  2. The session name is derived from the project path.
//  3. If no session with that name exists, a detached session is created
//     with the project as its working directory.
//  4. The current client is switched to the session.
//
// Running ManageSession twice for the same project creates the session once
// and switches twice. A failing command aborts the flow; nothing created
// before the failure is rolled back.
//
// # Naming
//
// UpperNamer upper-cases the project base name. TemplateNamer renders a
// text/template with .Project and .Workspace. Names are passed to tmux
// unmodified; tmux rejects the ones it cannot use and the failure surfaces
// as a session error.
//
// # Functions
//
// IsRunning: Reports whether the caller runs inside tmux.
//
// ListSessions: Returns the existing session names in tmux order.
//
// DeriveName: Returns the session name for a project path.
//
// ManageSession: Creates or reuses the project's session and switches to it.
//
// Attach: Switches to an existing session by name.
package session
