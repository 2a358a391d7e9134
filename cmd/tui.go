package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
	"github.com/rcavaliericopy-max/salomao/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI opens the interactive library browser. Logging is redirected to a
// file so it does not corrupt the terminal output.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	fileLogger, err := shared.NewFileLogger("./tmp/salomao-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	r.SetLogger(fileLogger)

	store, err := r.openStore(cmd)
	if err != nil {
		return err
	}

	model := ui.NewModel(store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
