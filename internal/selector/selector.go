package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kickstart-dev/kickstart/internal/logging"
)

// Selector runs interactive pickers against a terminal. The zero value uses
// os.Stdin, os.Stdout and os.Exit.
type Selector struct {
	// In and Out can be set for testing; default to os.Stdin/os.Stdout.
	In  io.Reader
	Out io.Writer
	// Exit is called with ExitInterrupted after the terminal has been
	// restored when the user presses Ctrl+C. Defaults to os.Exit.
	Exit func(code int)
}

func (s *Selector) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s *Selector) exit(code int) {
	exit := s.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(code)
}

// SelectSingle shows options as a radio list and blocks until the user
// confirms. It returns the ID of the option under the cursor.
func (s *Selector) SelectSingle(ctx context.Context, title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	final, err := s.run(ctx, newSingleModel(title, options, newStyles(s.out())))
	if errors.Is(err, tea.ErrInterrupted) {
		s.exit(ExitInterrupted)
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}

	m := final.(singleModel)
	if m.outcome == interrupted {
		s.exit(ExitInterrupted)
		return "", ErrInterrupted
	}

	id := m.chosen().ID
	logging.L.Debug("selector resolved", "title", title, "choice", id)
	return id, nil
}

// SelectMultiple shows options as a checkbox list and blocks until the user
// confirms. The chosen options are returned in declaration order; an empty,
// non-nil slice means the user confirmed without choosing anything.
func (s *Selector) SelectMultiple(ctx context.Context, title string, options []Option) ([]Option, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	final, err := s.run(ctx, newMultiModel(title, options, newStyles(s.out())))
	if errors.Is(err, tea.ErrInterrupted) {
		s.exit(ExitInterrupted)
		return nil, ErrInterrupted
	}
	if err != nil {
		return nil, err
	}

	m := final.(multiModel)
	if m.outcome == interrupted {
		s.exit(ExitInterrupted)
		return nil, ErrInterrupted
	}

	chosen := m.chosen()
	logging.L.Debug("selector resolved", "title", title, "chosen", len(chosen))
	return chosen, nil
}

// run owns the terminal for the lifetime of one model. Bubble Tea enters raw
// mode when the input is a terminal and restores it before Run returns, on
// quit, on a panic in the model, and on context cancellation alike. Each
// call builds its own program, so no key read for one selector can reach
// the next.
func (s *Selector) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(s.out())}
	// Without an explicit reader Bubble Tea falls back to /dev/tty when
	// stdin is redirected.
	if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrInterrupted) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("running selector: %w", err)
	}
	return final, nil
}

var std = &Selector{}

// SelectSingle runs a radio list on the process terminal.
func SelectSingle(ctx context.Context, title string, options []Option) (string, error) {
	return std.SelectSingle(ctx, title, options)
}

// SelectMultiple runs a checkbox list on the process terminal.
func SelectMultiple(ctx context.Context, title string, options []Option) ([]Option, error) {
	return std.SelectMultiple(ctx, title, options)
}
