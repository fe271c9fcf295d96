package cli

import (
	"context"

	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/stats"
)

type CheckinCmd struct{}

func (c *CheckinCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(bg context.Context, l *ledger.Ledger) error {
		res := l.CheckIn(ctx.now())
		if err := ctx.wait(bg, res.Commit); err != nil {
			return err
		}

		if !res.Changed {
			ctx.printf("Already checked in today. 🔥 %d day streak\n", res.Streak)
			return nil
		}
		ctx.printf("✓ Checked in! %s\n", stats.StreakMessage(res.Streak))
		ctx.printf("  %s\n", stats.StreakDescription(res.Streak))
		return nil
	})
}
