// Package cli checks that the external tools hopper drives are installed.
package cli

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
	"time"

	"github.com/zhubert/hopper/internal/errors"
	"github.com/zhubert/hopper/internal/exec"
)

// versionTimeout bounds each version probe.
const versionTimeout = 2 * time.Second

// Prerequisite represents a CLI tool hopper depends on
type Prerequisite struct {
	Name        string   // Command name (e.g., "tmux")
	Required    bool     // Whether the tool is required to run hopper
	Description string   // Human-readable description
	InstallURL  string   // URL for installation instructions
	VersionArgs []string // Arguments that print a version; nil tries common flags
}

// DefaultPrerequisites returns the tools hopper uses.
func DefaultPrerequisites() []Prerequisite {
	return []Prerequisite{
		{
			Name:        "tmux",
			Required:    true,
			Description: "tmux terminal multiplexer",
			InstallURL:  "https://github.com/tmux/tmux/wiki/Installing",
			VersionArgs: []string{"-V"},
		},
		{
			Name:        "git",
			Required:    false, // only marks nested projects; discovery works without it
			Description: "Git version control (optional)",
			InstallURL:  "https://git-scm.com/downloads",
			VersionArgs: []string{"--version"},
		},
	}
}

// CheckResult contains the result of checking a prerequisite
type CheckResult struct {
	Prerequisite Prerequisite
	Found        bool
	Path         string // Path to the executable if found
	Version      string // Version string if available
	Error        error
}

// Checker looks tools up on PATH and asks them for their version.
type Checker struct {
	LookPath func(string) (string, error)
	Executor exec.CommandExecutor
}

// NewChecker returns a Checker using the real PATH and executor.
func NewChecker() *Checker {
	return &Checker{LookPath: osexec.LookPath, Executor: exec.NewRealExecutor()}
}

// Check verifies that a CLI tool is available in PATH
func (c *Checker) Check(ctx context.Context, prereq Prerequisite) CheckResult {
	result := CheckResult{Prerequisite: prereq}

	path, err := c.LookPath(prereq.Name)
	if err != nil {
		result.Error = errors.CLINotFound(prereq.Name)
		return result
	}

	result.Found = true
	result.Path = path
	result.Version = c.version(ctx, prereq)
	return result
}

// CheckAll verifies all prerequisites and returns results
func (c *Checker) CheckAll(ctx context.Context, prereqs []Prerequisite) []CheckResult {
	results := make([]CheckResult, len(prereqs))
	for i, prereq := range prereqs {
		results[i] = c.Check(ctx, prereq)
	}
	return results
}

// ValidateRequired checks that all required prerequisites are on PATH.
// The error lists every missing tool with its install URL.
func (c *Checker) ValidateRequired(prereqs []Prerequisite) error {
	var missing []string

	for _, prereq := range prereqs {
		if !prereq.Required {
			continue
		}
		if _, err := c.LookPath(prereq.Name); err != nil {
			missing = append(missing, fmt.Sprintf("  - %s (%s)\n    Install: %s",
				prereq.Name, prereq.Description, prereq.InstallURL))
		}
	}

	if len(missing) > 0 {
		return errors.E(errors.Op("cli.ValidateRequired"), errors.KindNotFound,
			"missing required CLI tools:\n"+strings.Join(missing, "\n"))
	}
	return nil
}

// version attempts to get the version of a CLI tool
func (c *Checker) version(ctx context.Context, prereq Prerequisite) string {
	candidates := [][]string{prereq.VersionArgs}
	if prereq.VersionArgs == nil {
		// Different tools use different version flags
		candidates = [][]string{{"--version"}, {"-V"}, {"version"}}
	}

	for _, args := range candidates {
		probeCtx, cancel := context.WithTimeout(ctx, versionTimeout)
		output, err := c.Executor.Output(probeCtx, "", prereq.Name, args...)
		cancel()
		if err != nil {
			continue
		}
		version := strings.TrimSpace(strings.SplitN(string(output), "\n", 2)[0])
		if version == "" {
			continue
		}
		// Limit length to avoid overly long version strings
		if len(version) > 100 {
			version = version[:100] + "..."
		}
		return version
	}
	return ""
}

// FormatCheckResults formats check results for display
func FormatCheckResults(results []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("CLI Prerequisites:\n")
	for _, r := range results {
		status := "✓"
		if !r.Found {
			if r.Prerequisite.Required {
				status = "✗"
			} else {
				status = "○"
			}
		}

		fmt.Fprintf(&sb, "  %s %s", status, r.Prerequisite.Name)
		if r.Found && r.Version != "" {
			fmt.Fprintf(&sb, " (%s)", r.Version)
		} else if !r.Found {
			if r.Prerequisite.Required {
				sb.WriteString(" [REQUIRED]")
			} else {
				sb.WriteString(" [optional]")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
