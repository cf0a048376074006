package picker

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	huh "charm.land/huh/v2"

	"github.com/zhubert/hopper/internal/paths"
	"github.com/zhubert/hopper/internal/session"
	"github.com/zhubert/hopper/internal/ui"
)

// PathCharLimit caps the length of a new project path.
const PathCharLimit = 512

// PathPrompt asks for the name or path of a new project with a huh form.
type PathPrompt struct{}

// NewPathPrompt returns a PathPrompt.
func NewPathPrompt() *PathPrompt {
	return &PathPrompt{}
}

// PromptPath implements session.PathPrompter.
func (p *PathPrompt) PromptPath(ctx context.Context, ws session.Workspace) (string, bool, error) {
	var answer string
	form := newPathForm(ws, &answer)

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("prompt for project path: %w", err)
	}

	answer = strings.TrimSpace(answer)
	return answer, answer != "", nil
}

func newPathForm(ws session.Workspace, answer *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New project in "+ws.Name).
				Description("A name is created under "+paths.CollapseHome(paths.ExpandHome(ws.Root))+"; ~ and absolute paths are used as given.").
				Placeholder("my-project").
				CharLimit(PathCharLimit).
				Validate(ValidateProjectPath).
				Value(answer),
		),
	).WithTheme(ui.PromptTheme()).
		WithShowHelp(false)
}

// ValidateProjectPath rejects answers that cannot name a project directory.
func ValidateProjectPath(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return fmt.Errorf("enter a project name")
	case s == "." || s == "..":
		return fmt.Errorf("%q is not a project name", s)
	case strings.ContainsRune(s, 0):
		return fmt.Errorf("project name contains a NUL byte")
	}
	return nil
}
