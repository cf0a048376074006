package picker

import (
	"context"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
)

// Picker runs the fuzzy picker as a full-screen Bubble Tea program.
type Picker struct {
	In  io.Reader // nil means the terminal
	Out io.Writer // nil means stdout
}

// New returns a Picker attached to the terminal.
func New() *Picker {
	return &Picker{}
}

// Pick shows items and returns the index of the chosen one.
// ok is false when the user cancelled or there was nothing to choose from.
func (p *Picker) Pick(ctx context.Context, title string, items []Item) (index int, ok bool, err error) {
	if len(items) == 0 {
		return -1, false, nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	finalModel, err := tea.NewProgram(NewModel(title, items), opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return -1, false, ctxErr
		}
		return -1, false, fmt.Errorf("run picker: %w", err)
	}

	m, isModel := finalModel.(*Model)
	if !isModel {
		return -1, false, fmt.Errorf("unexpected picker model type %T", finalModel)
	}
	index, ok = m.Selected()
	return index, ok, nil
}
