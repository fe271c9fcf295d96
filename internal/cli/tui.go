package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heybuddy/internal/config"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/lock"
	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) lockDir(ctx *Context) string {
	if ctx.Config != nil {
		return ctx.Config.ConfigDir()
	}
	return config.ExpandPath(constants.DefaultConfigDir)
}

func (c *TuiCmd) Run(ctx *Context) error {
	lk, err := lock.Acquire(c.lockDir(ctx))
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w: close the other session first", err)
		}
		return err
	}
	defer func() {
		if err := lk.Release(); err != nil {
			logger.Warn("Failed to release lock", "path", lk.Path(), "error", err)
		}
	}()

	writeErrors := make(chan ledger.WriteError, 8)
	onWriteError := func(we ledger.WriteError) {
		select {
		case writeErrors <- we:
		default:
		}
	}

	l, report, err := ctx.OpenLedger(context.Background(), ledger.WithWriteErrorHandler(onWriteError))
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(l, tui.Config{
		Now:         ctx.Now,
		WriteErrors: writeErrors,
		Fallbacks:   len(report.Fallbacks),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()
	closeErr := ctx.CloseLedger(l)
	if runErr != nil {
		return fmt.Errorf("tui failed: %w", runErr)
	}
	return closeErr
}
