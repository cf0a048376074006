// Package tmux issues the handful of tmux commands hopper needs.
//
// Only four command categories exist: checking that the caller runs inside a
// session, listing sessions, creating a detached session, and switching the
// current client. Every command runs under its own timeout, and stderr from
// a failed command is classified into the sentinel errors below.
package tmux

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/exec"
	"github.com/zhubert/hopper/internal/logger"
)

const (
	DefaultBinary  = "tmux"
	DefaultTimeout = 5 * time.Second
)

var (
	ErrNoServer        = stderrors.New("no tmux server running")
	ErrSessionExists   = stderrors.New("session already exists")
	ErrSessionNotFound = stderrors.New("session not found")
	ErrCommandTimeout  = stderrors.New("tmux command timed out")
)

// Client runs tmux commands through an executor.
// The zero value is usable and runs the tmux binary on PATH.
type Client struct {
	Executor exec.CommandExecutor
	Binary   string
	Socket   string        // passed as -L when set
	Timeout  time.Duration // per command
	Getenv   func(string) string
}

// NewClient returns a Client backed by the real executor.
func NewClient() *Client {
	return &Client{
		Executor: exec.NewRealExecutor(),
		Binary:   DefaultBinary,
		Timeout:  DefaultTimeout,
		Getenv:   os.Getenv,
	}
}

// InsideSession reports whether the calling process runs inside a live tmux session.
// $TMUX must be set and tmux must be able to name the current session.
func (c *Client) InsideSession(ctx context.Context) bool {
	if c.getenv("TMUX") == "" {
		return false
	}
	out, err := c.run(ctx, "display-message", "-p", "#S")
	if err != nil {
		logger.ComponentLogger("tmux").Debug("display-message failed", "error", err)
		return false
	}
	return out != ""
}

// ListSessions returns the names of all sessions in tmux order.
// A server with no sessions, or no server at all, yields an empty list.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		if stderrors.Is(err, ErrNoServer) {
			return []string{}, nil
		}
		return nil, err
	}

	names := []string{}
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// NewSession creates a detached session named name whose working directory is dir.
func (c *Client) NewSession(ctx context.Context, name, dir string) error {
	_, err := c.run(ctx, "new-session", "-d", "-s", name, "-c", dir)
	return err
}

// SwitchClient moves the current client to the session named exactly name.
func (c *Client) SwitchClient(ctx context.Context, name string) error {
	_, err := c.run(ctx, "switch-client", "-t", "="+name)
	return err
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fullArgs := args
	if c.Socket != "" {
		fullArgs = append([]string{"-L", c.Socket}, args...)
	}

	log := logger.ComponentLogger("tmux")
	start := time.Now()
	stdout, stderr, err := c.executor().Run(ctx, "", c.binary(), fullArgs...)
	log.Debug("command finished", "args", fullArgs, "elapsed", time.Since(start), "error", err)

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.E(errors.Op("tmux."+args[0]), errors.KindTimeout,
				fmt.Sprintf("no response after %s", timeout), ErrCommandTimeout)
		}
		return "", classify(err, string(stderr), args[0])
	}
	return strings.TrimSpace(string(stdout)), nil
}

// classify maps a failed command's stderr onto the package sentinels.
func classify(err error, stderr, subcommand string) error {
	stderr = strings.TrimSpace(stderr)

	switch {
	case strings.Contains(stderr, "no server running"),
		strings.Contains(stderr, "error connecting to"),
		strings.Contains(stderr, "no sessions"):
		return fmt.Errorf("tmux %s: %w", subcommand, ErrNoServer)
	case strings.Contains(stderr, "duplicate session"):
		return fmt.Errorf("tmux %s: %w", subcommand, ErrSessionExists)
	case strings.Contains(stderr, "can't find session"),
		strings.Contains(stderr, "session not found"):
		return fmt.Errorf("tmux %s: %w", subcommand, ErrSessionNotFound)
	}

	if stderr != "" {
		return fmt.Errorf("tmux %s: %s", subcommand, stderr)
	}
	return fmt.Errorf("tmux %s: %w", subcommand, err)
}

func (c *Client) executor() exec.CommandExecutor {
	if c.Executor == nil {
		return exec.NewRealExecutor()
	}
	return c.Executor
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c *Client) getenv(key string) string {
	if c.Getenv == nil {
		return os.Getenv(key)
	}
	return c.Getenv(key)
}
