package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/heybuddy/internal/config"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/internal/utils"
)

// closeTimeout bounds how long a command waits for queued writes on exit
const closeTimeout = 10 * time.Second

type Context struct {
	Store  storage.Provider
	Config *config.Config

	// Out and In default to the process streams; tests replace them
	Out io.Writer
	In  io.Reader
	// Now overrides the wall clock
	Now func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) print(s string) {
	fmt.Fprint(c.out(), s)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) writeTimeout() time.Duration {
	if c.Config == nil || c.Config.WriteTimeout <= 0 {
		return constants.DefaultWriteTimeout
	}
	return c.Config.WriteTimeout
}

// settings loads the stored preferences with defaults applied.
func (c *Context) settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// OpenLedger loads the store and returns a ledger populated from it, using
// the stored timezone and trend order. Extra options are applied last.
func (c *Context) OpenLedger(ctx context.Context, opts ...ledger.Option) (*ledger.Ledger, ledger.LoadReport, error) {
	if err := c.Store.Load(); err != nil {
		return nil, ledger.LoadReport{}, err
	}
	settings, err := c.settings()
	if err != nil {
		return nil, ledger.LoadReport{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, ledger.LoadReport{}, err
	}

	base := []ledger.Option{
		ledger.WithLocation(loc),
		ledger.WithTrendOrder(settings.TrendOrder),
		ledger.WithWriteTimeout(c.writeTimeout()),
	}
	if c.Now != nil {
		base = append(base, ledger.WithClock(c.Now))
	}

	l := ledger.New(c.Store, append(base, opts...)...)
	report := l.Load(ctx)
	return l, report, nil
}

// CloseLedger drains queued writes and reports any that failed.
func (c *Context) CloseLedger(l *ledger.Ledger) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := l.Close(ctx)
	if n := l.FailedWrites(); n > 0 {
		err = errors.Join(err, fmt.Errorf("%d write(s) did not reach storage, see the log for details", n))
	}
	return err
}

// withLedger runs fn against a freshly loaded ledger and closes it afterwards.
func (c *Context) withLedger(fn func(ctx context.Context, l *ledger.Ledger) error) error {
	ctx := context.Background()
	l, _, err := c.OpenLedger(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, l)
	if err := c.CloseLedger(l); err != nil {
		logger.Error("Failed to close ledger", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// wait blocks until commit is persisted.
func (c *Context) wait(ctx context.Context, commit *ledger.Commit) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout()+time.Second)
	defer cancel()
	if err := commit.Wait(ctx); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// resolveDay turns "", "today" or "yesterday" into a day string and checks
// anything else is a valid YYYY-MM-DD date.
func resolveDay(l *ledger.Ledger, s string) (string, error) {
	switch s {
	case "", "today":
		return l.Today(), nil
	case "yesterday":
		return utils.AddDays(l.Today(), -1)
	}
	if _, err := utils.ParseDay(s); err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'yesterday'", s)
	}
	return s, nil
}
