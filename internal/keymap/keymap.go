// Package keymap turns a validated configuration into tmux key bindings.
//
// Every workspace gets one binding that opens the picker for that workspace
// in a tmux popup. An optional global binding opens the session list.
package keymap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zhubert/hopper/internal/config"
)

// DefaultCommand is the executable the bindings invoke.
const DefaultCommand = "hopper"

// Binding is one tmux key binding.
type Binding struct {
	Key       string
	Workspace string // empty for the sessions binding
	Command   string // shell command run inside the popup
}

// Line returns the binding as a tmux.conf line.
func (b Binding) Line() string {
	return fmt.Sprintf("bind-key %s display-popup -E %s", b.Key, strconv.Quote(b.Command))
}

// Register validates cfg and returns one binding per workspace, followed by
// the sessions binding when sessions_key is set. An invalid config yields no
// bindings at all.
func Register(cfg *config.Config, command string) ([]Binding, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if command == "" {
		command = DefaultCommand
	}

	workspaces := cfg.GetWorkspaces()
	bindings := make([]Binding, 0, len(workspaces)+1)
	for _, ws := range workspaces {
		bindings = append(bindings, Binding{
			Key:       ws.Key,
			Workspace: ws.Name,
			Command:   fmt.Sprintf("%s open %s", command, shellQuote(ws.Name)),
		})
	}
	if cfg.SessionsKey != "" {
		bindings = append(bindings, Binding{
			Key:     cfg.SessionsKey,
			Command: command + " sessions",
		})
	}
	return bindings, nil
}

// Render returns the bindings as a tmux.conf snippet.
func Render(bindings []Binding) string {
	var sb strings.Builder
	sb.WriteString("# hopper key bindings\n")
	for _, b := range bindings {
		sb.WriteString(b.Line())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// shellQuote single-quotes s when it contains anything beyond a safe set.
func shellQuote(s string) string {
	safe := s != ""
	for _, r := range s {
		if !(r == '-' || r == '_' || r == '.' || r == '/' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
